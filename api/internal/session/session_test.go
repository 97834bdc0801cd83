package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laporan-harian/api/internal/report"
)

type fakeReporter struct {
	mu      sync.Mutex
	calls   int
	data    report.ReportData
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeReporter) Write(ctx context.Context, in report.ReportInput) (report.ReportData, error) {
	f.mu.Lock()
	f.calls++
	data, err := f.data, f.err
	started, release := f.started, f.release
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return data, err
}

var input = report.ReportInput{Activity: "fix bug", Learning: "learned async", Obstacle: "slow network"}

func TestSubmit_Success(t *testing.T) {
	rep := &fakeReporter{data: report.ReportData{ActivityExpanded: "a", LearningExpanded: "b", ObstacleExpanded: "c"}}
	s := New(rep)

	var seen []report.GenerationStatus
	s.OnChange(func(st State) { seen = append(seen, st.Status) })

	st, err := s.Submit(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, st.Status)
	require.NotNil(t, st.Result)
	assert.Equal(t, "a", st.Result.ActivityExpanded)
	assert.Equal(t, input, st.Input)
	assert.Equal(t, []report.GenerationStatus{report.StatusLoading, report.StatusSuccess}, seen)
	assert.Equal(t, st, s.State())
}

func TestSubmit_InvalidInputKeepsState(t *testing.T) {
	rep := &fakeReporter{}
	s := New(rep)

	st, err := s.Submit(context.Background(), report.ReportInput{Activity: "x", Learning: " ", Obstacle: "y"})

	assert.ErrorIs(t, err, report.ErrInvalidInput)
	assert.Equal(t, report.StatusIdle, st.Status)
	assert.Zero(t, rep.calls)
}

func TestSubmit_ErrorUsesFixedMessage(t *testing.T) {
	rep := &fakeReporter{err: report.NewError(report.KindMalformedResponse, errors.New("bad JSON: raw service text"))}
	s := New(rep)

	st, err := s.Submit(context.Background(), input)

	assert.ErrorIs(t, err, report.ErrMalformedResponse)
	assert.Equal(t, report.StatusError, st.Status)
	assert.Equal(t, ErrorMessage, st.Message)
	assert.Equal(t, report.KindMalformedResponse, st.Kind)
	assert.NotContains(t, st.Message, "raw service text")
	assert.Nil(t, st.Result)
}

func TestSubmit_ConfigurationMessage(t *testing.T) {
	rep := &fakeReporter{err: report.NewError(report.KindConfiguration, errors.New("missing API key"))}
	s := New(rep)

	st, _ := s.Submit(context.Background(), input)

	assert.Equal(t, report.StatusError, st.Status)
	assert.Equal(t, ConfigErrorMessage, st.Message)
}

func TestRetry(t *testing.T) {
	rep := &fakeReporter{err: report.NewError(report.KindTransport, errors.New("quota"))}
	s := New(rep)

	_, err := s.Retry(context.Background())
	assert.ErrorIs(t, err, ErrNothingToRetry)

	_, _ = s.Submit(context.Background(), input)
	rep.mu.Lock()
	rep.err = nil
	rep.data = report.ReportData{ActivityExpanded: "ok"}
	rep.mu.Unlock()

	st, err := s.Retry(context.Background())

	require.NoError(t, err)
	assert.Equal(t, report.StatusSuccess, st.Status)
	assert.Equal(t, input, st.Input)
	assert.Equal(t, 2, rep.calls)

	_, err = s.Retry(context.Background())
	assert.ErrorIs(t, err, ErrNothingToRetry)
}

func TestSubmit_OneInFlight(t *testing.T) {
	rep := &fakeReporter{started: make(chan struct{}), release: make(chan struct{})}
	s := New(rep)

	done := make(chan State)
	go func() {
		st, _ := s.Submit(context.Background(), input)
		done <- st
	}()
	<-rep.started

	st, err := s.Submit(context.Background(), input)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, report.StatusLoading, st.Status)

	close(rep.release)
	assert.Equal(t, report.StatusSuccess, (<-done).Status)
	assert.Equal(t, 1, rep.calls)
}

func TestReset_DiscardsInFlightResult(t *testing.T) {
	rep := &fakeReporter{started: make(chan struct{}), release: make(chan struct{})}
	s := New(rep)

	errs := make(chan error)
	go func() {
		_, err := s.Submit(context.Background(), input)
		errs <- err
	}()
	<-rep.started

	st := s.Reset()
	assert.Equal(t, report.StatusIdle, st.Status)

	close(rep.release)
	assert.ErrorIs(t, <-errs, ErrStale)
	assert.Equal(t, State{Status: report.StatusIdle}, s.State())
}

func TestReset_FromAnyState(t *testing.T) {
	s := New(&fakeReporter{data: report.ReportData{ActivityExpanded: "a"}})
	_, _ = s.Submit(context.Background(), input)
	require.Equal(t, report.StatusSuccess, s.State().Status)

	assert.Equal(t, State{Status: report.StatusIdle}, s.Reset())
	assert.Equal(t, State{Status: report.StatusIdle}, s.Reset())
}

func TestAllowed(t *testing.T) {
	statuses := []report.GenerationStatus{report.StatusIdle, report.StatusLoading, report.StatusSuccess, report.StatusError}
	want := map[[2]report.GenerationStatus]bool{
		{report.StatusIdle, report.StatusLoading}:    true,
		{report.StatusSuccess, report.StatusLoading}: true,
		{report.StatusError, report.StatusLoading}:   true,
		{report.StatusLoading, report.StatusSuccess}: true,
		{report.StatusLoading, report.StatusError}:   true,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			exp := want[[2]report.GenerationStatus{from, to}] || to == report.StatusIdle
			assert.Equal(t, exp, allowed(from, to), "%s -> %s", from, to)
		}
	}
}
