package report

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Generator is the generative text capability: one call with a system
// instruction, a prompt and a response schema, returning the raw reply text.
type Generator interface {
	Name() string
	HasCredential() bool
	Generate(ctx context.Context, req Request) (string, error)
}

// Writer runs build → generate → sanitize for one report.
type Writer struct {
	gen Generator
	log logrus.FieldLogger
}

func NewWriter(gen Generator, log logrus.FieldLogger) *Writer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Writer{gen: gen, log: log.WithField("component", "report")}
}

// Ready reports whether the generator holds a credential.
func (w *Writer) Ready() bool { return w.gen.HasCredential() }

// Write performs exactly one generation call. Every failure is a *Error.
func (w *Writer) Write(ctx context.Context, in ReportInput) (ReportData, error) {
	start := time.Now()
	log := w.log.WithFields(logrus.Fields{
		"request_id":     uuid.NewString(),
		"engine":         w.gen.Name(),
		"prompt_version": PromptVersion,
	})

	data, err := w.write(ctx, in)
	log = log.WithField("elapsed_ms", time.Since(start).Milliseconds())
	if err != nil {
		log.WithError(err).WithField("kind", KindOf(err)).Error("report generation failed")
		return ReportData{}, err
	}
	log.Info("report generated")
	return data, nil
}

func (w *Writer) write(ctx context.Context, in ReportInput) (ReportData, error) {
	if !w.gen.HasCredential() {
		return ReportData{}, NewError(KindConfiguration, errors.New("missing API key"))
	}
	raw, err := w.gen.Generate(ctx, BuildRequest(in))
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return ReportData{}, err
		}
		return ReportData{}, NewError(KindTransport, err)
	}
	return Sanitize(raw)
}
