package stream

import (
	"context"
	"sync"
	"time"

	"codeberg.org/wayfare/server/internal/errors"
	"codeberg.org/wayfare/server/internal/logger"
	"codeberg.org/wayfare/server/internal/orchestrator"
)

// GenerateFunc runs one orchestrator invocation, reporting lifecycle
// transitions through notify
type GenerateFunc func(ctx context.Context, notify orchestrator.ProgressFunc) orchestrator.Result

// Stream wraps one orchestrator invocation in a cancellable event channel
// with heartbeat and a hard wall-clock timeout. A single goroutine owns
// all writes to the event channel, so ordering is the emission order and
// the terminal event is emitted exactly once. Closing is idempotent.
//
// A Stream is single-use: call either Run or Reject, once.
type Stream struct {
	events    chan Event
	closed    chan struct{}
	expired   chan struct{}
	closeOnce sync.Once
	heartbeat time.Duration
	timeout   time.Duration
}

func New(heartbeatInterval, hardTimeout time.Duration) *Stream {
	return &Stream{
		events:    make(chan Event, 16),
		closed:    make(chan struct{}),
		expired:   make(chan struct{}),
		heartbeat: heartbeatInterval,
		timeout:   hardTimeout,
	}
}

// Events is the ordered event feed; it is closed after the terminal event
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Close transitions the stream to its terminal state. Closing twice is a
// no-op, never an error.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
}

// Reject short-circuits the protocol before any orchestration starts:
// start, then the error, then close. Used for quota gate rejections at
// the protocol boundary.
func (s *Stream) Reject(code, message string, usage any) {
	defer close(s.events)
	defer s.Close()

	s.send(newEvent(EventStart, nil))
	s.send(newEvent(EventError, ErrorPayload{
		Code:    code,
		Message: message,
		Usage:   usage,
	}))
}

// Run drives one generation to a terminal event. ctx is the caller's
// connection context: when it is cancelled, heartbeats stop and the stream
// releases its resources, but the in-flight orchestrator invocation is
// left to finish on its own bounded context and its result is discarded.
func (s *Stream) Run(ctx context.Context, generate GenerateFunc) {
	defer close(s.events)
	defer s.Close()

	// the hard wall clock also covers stuck downstream writes, so it is
	// tracked by a watchdog rather than a case in the pump loop
	go func() {
		select {
		case <-time.After(s.timeout):
			close(s.expired)
		case <-s.closed:
		}
	}()

	s.send(newEvent(EventStart, nil))

	progressCh := make(chan orchestrator.Phase, 16)
	resultCh := make(chan runOutcome, 1)

	// the generation is bounded by the stream's own wall clock, not by the
	// caller's connection: provider calls already in flight are not torn
	// down on disconnect. The cancel belongs to the generation goroutine,
	// not the pump, so a disconnecting caller cannot trigger it early.
	genCtx, genCancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)

	go func() {
		defer genCancel()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("generation panicked", "panic", r)
				resultCh <- runOutcome{panicked: true}
			}
		}()

		result := generate(genCtx, func(phase orchestrator.Phase) {
			// never block the orchestrator on a slow stream consumer
			select {
			case progressCh <- phase:
			default:
			}
		})

		resultCh <- runOutcome{result: result}
	}()

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// caller disconnected: stop heartbeats, discard the result
			return

		case <-s.closed:
			return

		case <-s.expired:
			// strictly longer than phase1+phase2 combined, so this only
			// fires on true protocol-layer hangs, not slow generation
			s.trySend(newEvent(EventError, ErrorPayload{
				Code:    errors.CodeTimeout,
				Message: "generation stream timed out",
			}))
			return

		case <-ticker.C:
			s.send(newEvent(EventHeartbeat, nil))

		case phase := <-progressCh:
			s.sendPhase(phase)

		case outcome := <-resultCh:
			// deliver any lifecycle events that raced the result
			s.drainProgress(progressCh)
			s.sendTerminal(outcome)
			return
		}
	}
}

// outcome of the generation goroutine
type runOutcome struct {
	result   orchestrator.Result
	panicked bool
}

// maps an orchestrator lifecycle transition onto the event protocol
func (s *Stream) sendPhase(phase orchestrator.Phase) {
	switch phase {
	case orchestrator.PhaseStarted:
		s.send(newEvent(EventProgress, ProgressPayload{Status: "orchestration_started"}))
	case orchestrator.Phase1Dispatched:
		s.send(newEvent(EventPhase1, ProgressPayload{Status: "providers_dispatched"}))
	case orchestrator.Phase1Completed:
		s.send(newEvent(EventProgress, ProgressPayload{Status: "phase1_completed"}))
	case orchestrator.Phase2Dispatched:
		s.send(newEvent(EventPhase2, ProgressPayload{Status: "supervisor_dispatched"}))
	case orchestrator.Phase2Completed:
		s.send(newEvent(EventProgress, ProgressPayload{Status: "phase2_completed"}))
	case orchestrator.PhaseAssembling:
		s.send(newEvent(EventProgress, ProgressPayload{Status: "assembling"}))
	}
}

func (s *Stream) drainProgress(progressCh <-chan orchestrator.Phase) {
	for {
		select {
		case phase := <-progressCh:
			s.sendPhase(phase)
		default:
			return
		}
	}
}

func (s *Stream) sendTerminal(outcome runOutcome) {
	if outcome.panicked {
		s.send(newEvent(EventError, ErrorPayload{
			Code:    errors.CodeInternalError,
			Message: "an unexpected error occurred",
		}))
		return
	}

	if !outcome.result.Success {
		s.send(newEvent(EventError, ErrorPayload{
			Code:    errors.CodeGenerationFailed,
			Message: "itinerary generation failed",
		}))
		return
	}

	s.send(newEvent(EventComplete, outcome.result))
}

// delivers an event unless the stream is closed or its wall clock expired
func (s *Stream) send(event Event) {
	select {
	case s.events <- event:
	case <-s.closed:
	case <-s.expired:
	}
}

// best-effort delivery that never blocks; used once the wall clock
// expired, when the consumer may be the stuck party
func (s *Stream) trySend(event Event) {
	select {
	case s.events <- event:
	default:
	}
}
