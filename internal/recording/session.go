package recording

import (
	"context"
	"sync"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	cn "github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/pkg"
)

// StatusChecker answers whether the installation may use licensed features.
type StatusChecker interface {
	CheckStatus(ctx context.Context) model.CheckResult
}

// Event is one captured input event.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// Session buffers events between Start and Stop.
type Session struct {
	mu        sync.Mutex
	checker   StatusChecker
	logger    log.Logger
	maxEvents int
	recording bool
	startedAt time.Time
	events    []Event
}

// NewSession builds an idle session. maxEvents <= 0 uses the package default.
func NewSession(checker StatusChecker, maxEvents int, logger log.Logger) *Session {
	if logger == nil {
		logger = zap.InitializeLogger()
	}

	if maxEvents <= 0 {
		maxEvents = cn.MaxRecordedEvents
	}

	return &Session{checker: checker, logger: logger, maxEvents: maxEvents}
}

// Start begins a recording. It is refused when the license check fails or a
// recording is already running.
func (s *Session) Start(ctx context.Context) error {
	res := s.checker.CheckStatus(ctx)
	if !res.Valid {
		s.logger.Warnf("Recording refused: license check failed (%s)", res.Reason)
		return pkg.ValidateBusinessError(cn.ErrLicenseInvalid, "Recording", res.Reason)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recording {
		return pkg.ValidateBusinessError(cn.ErrAlreadyRecording, "Recording")
	}

	s.recording = true
	s.startedAt = time.Now()
	s.events = s.events[:0]

	s.logger.Infof("Recording started")

	return nil
}

// Stop ends the recording and returns the number of captured events.
func (s *Session) Stop() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		return 0, pkg.ValidateBusinessError(cn.ErrNotRecording, "Recording")
	}

	s.recording = false

	s.logger.Infof("Recording stopped after %s with %d events", time.Since(s.startedAt).Round(time.Millisecond), len(s.events))

	return len(s.events), nil
}

// Reset drops the buffered events. A running recording keeps running.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
}

// Append adds events to the running recording. Either all events fit or none are kept.
func (s *Session) Append(events ...Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		return pkg.ValidateBusinessError(cn.ErrNotRecording, "Recording")
	}

	if len(s.events)+len(events) > s.maxEvents {
		return pkg.ValidateBusinessError(cn.ErrRecordingBufferIsFull, "Recording")
	}

	for _, e := range events {
		if e.Timestamp.IsZero() {
			e.Timestamp = time.Now().UTC()
		}

		s.events = append(s.events, e)
	}

	return nil
}

// Recording reports whether a recording is running.
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recording
}

// Events returns a copy of the buffered events.
func (s *Session) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)

	return out
}
