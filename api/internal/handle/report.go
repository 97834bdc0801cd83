package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"laporan-harian/api/internal/report"
	"laporan-harian/api/internal/session"
)

const maxBodyBytes = 64 << 10

type reportResponse struct {
	report.ReportData
	Sections      []report.Section `json:"sections"`
	PromptVersion string           `json:"prompt_version"`
	Notice        string           `json:"notice"`
}

// Report handles POST /v1/report. Failures carry a fixed message and the
// failure kind, never the service's own error text.
func (h *Handle) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "POST only"})
		return
	}
	var in report.ReportInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad json: " + err.Error()})
		return
	}
	if err := in.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "activity, learning dan obstacle wajib diisi"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deadline(r))
	defer cancel()

	data, err := h.rep.Write(ctx, in)
	if err != nil {
		kind := report.KindOf(err)
		code := http.StatusBadGateway
		if kind == report.KindConfiguration {
			code = http.StatusServiceUnavailable
		}
		h.log.WithError(err).WithField("kind", kind).Warn("report request failed")
		writeJSON(w, code, errorResponse{Error: session.MessageFor(kind), Kind: kind})
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		ReportData:    data,
		Sections:      data.Sections(),
		PromptVersion: report.PromptVersion,
		Notice:        session.ReviewNotice,
	})
}

// Health answers 503 while no API key is configured.
func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !h.rep.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("degraded: missing GEMINI_API_KEY"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
