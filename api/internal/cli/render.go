package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"laporan-harian/api/internal/report"
	"laporan-harian/api/internal/session"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"

	cardWidth = 80
)

var (
	colorActivity = lipgloss.Color("#3b82f6")
	colorLearning = lipgloss.Color("#10b981")
	colorObstacle = lipgloss.Color("#f59e0b")
	colorDim      = lipgloss.Color("#928374")

	styleDim = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

func sectionColor(key string) lipgloss.Color {
	switch key {
	case report.FieldLearning:
		return colorLearning
	case report.FieldObstacle:
		return colorObstacle
	default:
		return colorActivity
	}
}

// card renders one section inside a rounded border in its accent colour.
func card(s report.Section) string {
	c := sectionColor(s.Key)
	title := lipgloss.NewStyle().Foreground(c).Bold(true).Render(s.Title)
	words := styleDim.Render(fmt.Sprintf("%d kata", s.Words))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1).
		Width(cardWidth).
		Render(title + "  " + words + "\n\n" + s.Content)
}

// output mirrors the HTTP response body.
type output struct {
	report.ReportData `yaml:",inline"`
	Sections          []report.Section `json:"sections" yaml:"sections"`
	PromptVersion     string           `json:"prompt_version" yaml:"prompt_version"`
}

func writeReport(w io.Writer, format string, data report.ReportData) error {
	switch strings.ToLower(format) {
	case "", formatText:
		var parts []string
		for _, s := range data.Sections() {
			parts = append(parts, card(s))
		}
		parts = append(parts, styleDim.Render(session.ReviewNotice))
		_, err := fmt.Fprintln(w, strings.Join(parts, "\n"))
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output{ReportData: data, Sections: data.Sections(), PromptVersion: report.PromptVersion})
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(output{ReportData: data, Sections: data.Sections(), PromptVersion: report.PromptVersion}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (text, json, yaml)", format)
	}
}

func validFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", formatText, formatJSON, formatYAML:
		return true
	}
	return false
}
