package report

import (
	"strings"
	"unicode"
)

// ReportInput holds the three short notes typed by the user.
type ReportInput struct {
	Activity string `json:"activity" yaml:"activity"`
	Learning string `json:"learning" yaml:"learning"`
	Obstacle string `json:"obstacle" yaml:"obstacle"`
}

// Validate reports ErrInvalidInput when any note is blank after trimming.
// BuildRequest never calls it; presentation layers do before submitting.
func (in ReportInput) Validate() error {
	if strings.TrimSpace(in.Activity) == "" ||
		strings.TrimSpace(in.Learning) == "" ||
		strings.TrimSpace(in.Obstacle) == "" {
		return ErrInvalidInput
	}
	return nil
}

// ReportData is the sanitized reply: one formal paragraph per note.
type ReportData struct {
	ActivityExpanded string `json:"activityExpanded" yaml:"activityExpanded"`
	LearningExpanded string `json:"learningExpanded" yaml:"learningExpanded"`
	ObstacleExpanded string `json:"obstacleExpanded" yaml:"obstacleExpanded"`
}

// Section is one titled paragraph of a report, ready for display.
type Section struct {
	Key     string `json:"key" yaml:"key"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Words   int    `json:"words" yaml:"words"`
}

// Sections returns the report in display order: activity, learning, obstacle.
func (d ReportData) Sections() []Section {
	return []Section{
		{Key: FieldActivity, Title: "Uraian Aktivitas", Content: d.ActivityExpanded, Words: WordCount(d.ActivityExpanded)},
		{Key: FieldLearning, Title: "Pembelajaran yang Diperoleh", Content: d.LearningExpanded, Words: WordCount(d.LearningExpanded)},
		{Key: FieldObstacle, Title: "Kendala yang Dialami", Content: d.ObstacleExpanded, Words: WordCount(d.ObstacleExpanded)},
	}
}

// PlainText joins the sections as "Title\nContent" blocks separated by a blank line.
func (d ReportData) PlainText() string {
	var b strings.Builder
	for i, s := range d.Sections() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Title)
		b.WriteString("\n")
		b.WriteString(s.Content)
	}
	return b.String()
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.FieldsFunc(s, unicode.IsSpace))
}

// GenerationStatus drives which view a presentation layer renders.
type GenerationStatus string

const (
	StatusIdle    GenerationStatus = "IDLE"
	StatusLoading GenerationStatus = "LOADING"
	StatusSuccess GenerationStatus = "SUCCESS"
	StatusError   GenerationStatus = "ERROR"
)
