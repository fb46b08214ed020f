// Package shutdown signals when the server has gone quiet long enough to stop.
package shutdown

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	minCheckInterval = 5 * time.Second
	maxCheckInterval = 30 * time.Second
)

// BusyFunc reports whether work outside any request is still running,
// such as a scrape whose callers have all given up.
type BusyFunc func() bool

// IdleMonitorConfig holds configuration for the idle monitor.
type IdleMonitorConfig struct {
	Timeout      time.Duration // 0 disables the monitor
	Logger       *slog.Logger
	ExcludePaths []string // prefixes that don't count as activity, e.g. probes
	Busy         BusyFunc
	// CheckInterval overrides the derived polling interval.
	CheckInterval time.Duration
}

// IdleMonitor tracks request activity and closes ShutdownChan once the
// server has had no requests and no background work for Timeout.
type IdleMonitor struct {
	timeout       time.Duration
	checkInterval time.Duration
	logger        *slog.Logger
	excludePaths  []string
	busy          BusyFunc

	activeRequests atomic.Int64
	mu             sync.RWMutex
	lastActivity   time.Time

	shutdownChan chan struct{}
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// NewIdleMonitor creates a new idle monitor.
func NewIdleMonitor(cfg IdleMonitorConfig) *IdleMonitor {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	interval := cfg.CheckInterval
	if interval <= 0 {
		interval = min(max(cfg.Timeout/6, minCheckInterval), maxCheckInterval)
	}
	return &IdleMonitor{
		timeout:       cfg.Timeout,
		checkInterval: interval,
		logger:        cfg.Logger,
		excludePaths:  cfg.ExcludePaths,
		busy:          cfg.Busy,
		lastActivity:  time.Now(),
		shutdownChan:  make(chan struct{}),
		stopChan:      make(chan struct{}),
	}
}

// Enabled reports whether the monitor will ever signal.
func (m *IdleMonitor) Enabled() bool {
	return m.timeout > 0
}

// Start begins monitoring in the background.
func (m *IdleMonitor) Start() {
	if !m.Enabled() {
		m.logger.Debug("idle monitoring disabled (timeout=0)")
		return
	}
	m.logger.Info("idle monitoring started", "timeout", m.timeout, "exclude_paths", m.excludePaths)
	go m.run()
}

// Stop stops the monitor. It is safe to call more than once.
func (m *IdleMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// ShutdownChan is closed when the idle timeout is reached.
func (m *IdleMonitor) ShutdownChan() <-chan struct{} {
	return m.shutdownChan
}

// Middleware records request activity for every path not excluded.
func (m *IdleMonitor) Middleware(next http.Handler) http.Handler {
	if !m.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.excluded(r.URL.Path) {
			m.touch(1)
			defer m.touch(-1)
		}
		next.ServeHTTP(w, r)
	})
}

func (m *IdleMonitor) excluded(path string) bool {
	for _, prefix := range m.excludePaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (m *IdleMonitor) touch(delta int64) {
	m.activeRequests.Add(delta)
	m.mu.Lock()
	m.lastActivity = time.Now()
	m.mu.Unlock()
}

func (m *IdleMonitor) run() {
	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			if m.check() {
				close(m.shutdownChan)
				return
			}
		}
	}
}

// check returns true once the idle timeout has elapsed.
func (m *IdleMonitor) check() bool {
	active := m.activeRequests.Load()
	busy := m.busy != nil && m.busy()

	// Ongoing work restarts the idle window.
	if active > 0 || busy {
		m.mu.Lock()
		m.lastActivity = time.Now()
		m.mu.Unlock()
		m.logger.Debug("idle check", "active_requests", active, "background_busy", busy)
		return false
	}

	m.mu.RLock()
	idle := time.Since(m.lastActivity)
	m.mu.RUnlock()

	if idle < m.timeout {
		m.logger.Debug("idle check", "idle_time", idle, "timeout", m.timeout)
		return false
	}

	m.logger.Info("idle timeout reached, signaling graceful shutdown",
		"idle_time", idle,
		"timeout", m.timeout,
	)
	return true
}
