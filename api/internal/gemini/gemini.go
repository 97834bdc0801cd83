package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"laporan-harian/api/internal/report"
)

const DefaultModel = "gemini-2.5-flash"

// Engine calls Gemini once per report with a JSON response schema.
type Engine struct {
	APIKey string
	Model  string

	temperature *float32
	clientOpts  []option.ClientOption
}

type Option func(*Engine)

// WithTemperature sets the sampling temperature; the model default is used otherwise.
func WithTemperature(t float32) Option {
	return func(e *Engine) { e.temperature = &t }
}

// WithClientOptions appends options to every genai.NewClient call.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(e *Engine) { e.clientOpts = append(e.clientOpts, opts...) }
}

// New never fails: an empty key gives a degraded engine whose calls return
// a configuration error.
func New(apiKey, model string, opts ...Option) *Engine {
	e := &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
	if e.Model == "" {
		e.Model = DefaultModel
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Name() string        { return "gemini" }
func (e *Engine) GetModel() string    { return e.Model }
func (e *Engine) HasCredential() bool { return e.APIKey != "" }

// Generate issues a single GenerateContent call and returns the reply text,
// which may be empty. The key is checked before any client is created.
func (e *Engine) Generate(ctx context.Context, req report.Request) (string, error) {
	if e.APIKey == "" {
		return "", report.NewError(report.KindConfiguration, errors.New("GEMINI_API_KEY is empty"))
	}

	opts := append([]option.ClientOption{option.WithAPIKey(e.APIKey)}, e.clientOpts...)
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", report.NewError(report.KindTransport, fmt.Errorf("gemini report: new client: %w", err))
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", report.NewError(report.KindTransport, errors.New("gemini: model is nil"))
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      e.temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.SystemInstruction)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", report.NewError(report.KindTransport, fmt.Errorf("gemini report: %s: %w", Reason(err), err))
	}
	return firstText(resp), nil
}

// Reason maps a transport failure to a coarse label for logs:
// auth, quota, bad_request, service, timeout, canceled, http_<code> or network.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized, gerr.Code == http.StatusForbidden:
			return "auth"
		case gerr.Code == http.StatusTooManyRequests:
			return "quota"
		case gerr.Code == http.StatusBadRequest:
			// an invalid key comes back as 400 API_KEY_INVALID
			if strings.Contains(strings.ToLower(gerr.Message), "api key") {
				return "auth"
			}
			return "bad_request"
		case gerr.Code >= 500:
			return "service"
		}
		return fmt.Sprintf("http_%d", gerr.Code)
	}
	return "network"
}

// firstText joins the text parts of the first candidate that has content.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}
