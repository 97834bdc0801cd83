package handle

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"laporan-harian/api/internal/report"
)

// Reporter is what the handlers need from the generation pipeline.
type Reporter interface {
	Write(ctx context.Context, in report.ReportInput) (report.ReportData, error)
	Ready() bool
}

type Handle struct {
	rep     Reporter
	timeout time.Duration
	log     logrus.FieldLogger
}

func New(rep Reporter, timeout time.Duration, log logrus.FieldLogger) *Handle {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handle{rep: rep, timeout: timeout, log: log.WithField("component", "http")}
}

// Routes registers every endpoint on a fresh mux.
func (h *Handle) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/v1/report", h.Report)
	return mux
}

// deadline takes X-Request-Timeout or ?timeoutSec= (seconds), else the default.
func (h *Handle) deadline(r *http.Request) time.Duration {
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return h.timeout
}

type errorResponse struct {
	Error string      `json:"error"`
	Kind  report.Kind `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
