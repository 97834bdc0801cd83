package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"laporan-harian/api/internal/report"
)

const (
	// ErrorMessage is shown for every generation failure except configuration.
	ErrorMessage = "Maaf, terjadi kesalahan saat menghubungi AI. Pastikan kunci API valid atau coba lagi nanti."
	// ConfigErrorMessage is shown when no API key is configured.
	ConfigErrorMessage = "Kunci API Gemini belum diatur. Minta administrator mengisi GEMINI_API_KEY, lalu coba lagi."
	// ReviewNotice follows every successful report.
	ReviewNotice = "Mohon periksa kembali konten sebelum diserahkan. AI dapat membuat kesalahan."
)

var (
	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("a report is already being generated")
	// ErrNothingToRetry is returned by Retry outside the ERROR state.
	ErrNothingToRetry = errors.New("no failed report to retry")
	// ErrStale is returned when a generation completes after a reset.
	ErrStale = errors.New("report discarded after reset")
)

// Reporter is the core contract: notes in, sanitized report or failure out.
type Reporter interface {
	Write(ctx context.Context, in report.ReportInput) (report.ReportData, error)
}

// State is a snapshot of one session.
type State struct {
	Status  report.GenerationStatus `json:"status"`
	Input   report.ReportInput      `json:"input"`
	Result  *report.ReportData      `json:"result,omitempty"`
	Message string                  `json:"message,omitempty"`
	Kind    report.Kind             `json:"kind,omitempty"`
}

// Session owns the presentation state of one user. All changes go through
// transition; at most one generation is in flight.
type Session struct {
	rep      Reporter
	inflight *semaphore.Weighted

	mu       sync.Mutex
	state    State
	epoch    uint64
	onChange func(State)
}

func New(rep Reporter) *Session {
	return &Session{
		rep:      rep,
		inflight: semaphore.NewWeighted(1),
		state:    State{Status: report.StatusIdle},
	}
}

// OnChange registers fn to receive every new state. fn runs with the session
// unlocked and must not block for long.
func (s *Session) OnChange(fn func(State)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit validates in, moves to LOADING, runs one generation and settles in
// SUCCESS or ERROR. Invalid input leaves the state untouched.
func (s *Session) Submit(ctx context.Context, in report.ReportInput) (State, error) {
	if err := in.Validate(); err != nil {
		return s.State(), err
	}
	return s.run(ctx, in)
}

// Retry resubmits the input of the last failed generation.
func (s *Session) Retry(ctx context.Context) (State, error) {
	st := s.State()
	if st.Status != report.StatusError {
		return st, ErrNothingToRetry
	}
	return s.run(ctx, st.Input)
}

// Reset returns to IDLE from any state. A generation still in flight is
// discarded when it completes.
func (s *Session) Reset() State {
	st, _, _ := s.transition(0, State{Status: report.StatusIdle})
	return st
}

func (s *Session) run(ctx context.Context, in report.ReportInput) (State, error) {
	if !s.inflight.TryAcquire(1) {
		return s.State(), ErrBusy
	}
	defer s.inflight.Release(1)

	st, epoch, err := s.transition(0, State{Status: report.StatusLoading, Input: in})
	if err != nil {
		return st, err
	}

	data, genErr := s.rep.Write(ctx, in)

	next := State{Status: report.StatusSuccess, Input: in, Result: &data}
	if genErr != nil {
		kind := report.KindOf(genErr)
		next = State{Status: report.StatusError, Input: in, Message: MessageFor(kind), Kind: kind}
	}
	st, _, err = s.transition(epoch, next)
	if err != nil {
		return st, err
	}
	return st, genErr
}

// transition applies next if the edge is allowed. A non-zero epoch must match
// the current one, so completions from before a reset are dropped. It returns
// the epoch of the new state.
func (s *Session) transition(epoch uint64, next State) (State, uint64, error) {
	s.mu.Lock()
	if epoch != 0 && epoch != s.epoch {
		st, cur := s.state, s.epoch
		s.mu.Unlock()
		return st, cur, ErrStale
	}
	if !allowed(s.state.Status, next.Status) {
		st, cur := s.state, s.epoch
		s.mu.Unlock()
		return st, cur, fmt.Errorf("session: %s -> %s not allowed", st.Status, next.Status)
	}
	s.epoch++
	s.state = next
	cur, fn := s.epoch, s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(next)
	}
	return next, cur, nil
}

func allowed(from, to report.GenerationStatus) bool {
	switch to {
	case report.StatusIdle:
		return true
	case report.StatusLoading:
		return from == report.StatusIdle || from == report.StatusSuccess || from == report.StatusError
	case report.StatusSuccess, report.StatusError:
		return from == report.StatusLoading
	}
	return false
}

// MessageFor returns the fixed user-facing message for a failure kind.
func MessageFor(kind report.Kind) string {
	if kind == report.KindConfiguration {
		return ConfigErrorMessage
	}
	return ErrorMessage
}
