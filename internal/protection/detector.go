// Package protection recognizes bot-challenge pages served with a success status.
//
// A challenge page parses fine but carries none of the quotation markup, so it
// must be treated as a failed fetch rather than an empty extraction.
package protection

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// SignalType identifies the type of protection detected.
type SignalType string

const (
	SignalNone         SignalType = ""
	SignalCloudflare   SignalType = "cloudflare"
	SignalEmptyContent SignalType = "empty_content"
)

// ErrChallenge matches every *ChallengeError via errors.Is.
var ErrChallenge = errors.New("bot challenge detected")

// ChallengeError reports a detected challenge page.
type ChallengeError struct {
	Signal      SignalType
	Description string
}

func (e *ChallengeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrChallenge.Error(), e.Description)
}

// Is reports ErrChallenge as a match.
func (e *ChallengeError) Is(target error) bool {
	return target == ErrChallenge
}

// DetectionResult contains the result of protection detection.
type DetectionResult struct {
	Detected    bool
	Signal      SignalType
	Description string
}

// Err converts a positive detection into a *ChallengeError, or nil.
func (r DetectionResult) Err() error {
	if !r.Detected {
		return nil
	}
	return &ChallengeError{Signal: r.Signal, Description: r.Description}
}

// Only markers of the interstitial itself are listed. Generic phrases like
// "Forbidden", captcha widgets in comment forms, and the bot-detection script
// Cloudflare injects into regular pages (/cdn-cgi/challenge-platform/scripts/jsd)
// would cause false positives.
var cloudflarePatterns = []string{
	"cf-browser-verification",
	"cf_chl_opt",
	"_cf_chl",
	"<title>just a moment...</title>",
	"attention required! | cloudflare",
}

// Detector analyzes successful HTTP responses for challenge signals.
type Detector struct{}

// NewDetector creates a new protection detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromResponse checks headers first, then the body.
func (d *Detector) DetectFromResponse(headers http.Header, body []byte) DetectionResult {
	if result := d.checkHeaders(headers); result.Detected {
		return result
	}
	return d.checkBodyContent(body)
}

func (d *Detector) checkHeaders(headers http.Header) DetectionResult {
	if headers == nil {
		return DetectionResult{}
	}
	if strings.EqualFold(headers.Get("cf-mitigated"), "challenge") {
		return DetectionResult{
			Detected:    true,
			Signal:      SignalCloudflare,
			Description: "Cloudflare challenge header present",
		}
	}
	return DetectionResult{}
}

func (d *Detector) checkBodyContent(body []byte) DetectionResult {
	if len(strings.TrimSpace(string(body))) == 0 {
		return DetectionResult{
			Detected:    true,
			Signal:      SignalEmptyContent,
			Description: "empty response body",
		}
	}

	contentLower := strings.ToLower(string(body))
	for _, pattern := range cloudflarePatterns {
		if strings.Contains(contentLower, pattern) {
			return DetectionResult{
				Detected:    true,
				Signal:      SignalCloudflare,
				Description: "Cloudflare challenge page (" + pattern + ")",
			}
		}
	}

	return DetectionResult{}
}
