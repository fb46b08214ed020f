// Package normalize converts raw text scraped from the source page into typed values.
//
// Both converters are total: any input yields either a value or ok=false,
// never an error or a panic.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// JakartaTZ is the fixed UTC+7 zone quote dates are anchored to.
var JakartaTZ = time.FixedZone("WIB", 7*60*60)

var (
	rupiahRegex = regexp.MustCompile(`(?i)Rp\.?\s*([0-9.,]+)`)
	dateRegex   = regexp.MustCompile(`(?i)(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})`)
)

// indonesianMonths maps lower-cased Indonesian month names to their number.
var indonesianMonths = map[string]time.Month{
	"januari":   time.January,
	"februari":  time.February,
	"maret":     time.March,
	"april":     time.April,
	"mei":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"agustus":   time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"desember":  time.December,
}

// ToAmount parses a Rupiah price such as "Rp 1.234.567" into whole Rupiah.
//
// When the text carries an "Rp" marker the number following it is used,
// otherwise the whole text is considered. Dots and commas are treated as
// grouping separators and dropped; what remains must be ASCII digits only.
func ToAmount(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}

	candidate := text
	if m := rupiahRegex.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	}
	candidate = strings.NewReplacer(".", "", ",", "").Replace(candidate)

	if !isASCIIDigits(candidate) {
		return 0, false
	}
	n, err := strconv.ParseInt(candidate, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToDate finds the first "<day> <Indonesian month> <year>" in text, e.g.
// "Senin, 12 Mei 2025", and returns midnight of that day in JakartaTZ.
// Unknown month names and impossible calendar dates yield ok=false.
func ToDate(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	m := dateRegex.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	month, ok := indonesianMonths[strings.ToLower(m[2])]
	if !ok || year < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, JakartaTZ)
	// time.Date normalizes overflow (31 Februari becomes 3 Maret); reject instead.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
