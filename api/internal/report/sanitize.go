package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"laporan-harian/api/internal/util"
)

// tagPattern matches "<", an optional "/", one or more non-">" characters and
// then ">" or the end of the text. It is lexical, not an HTML parser: a lone
// "<" followed by text without any ">" is removed up to the end.
var tagPattern = regexp.MustCompile(`</?[^>]+(?:>|$)`)

const responseSchemaURL = "report.schema.json"

var responseValidator = mustCompileResponseSchema()

// ResponseJSONSchema returns ResponseSchema as a JSON Schema document.
func ResponseJSONSchema() map[string]any {
	return util.SchemaDocument(ResponseSchema())
}

func mustCompileResponseSchema() *jsonschema.Schema {
	raw, err := json.Marshal(ResponseJSONSchema())
	if err != nil {
		panic(fmt.Sprintf("marshal %s: %v", responseSchemaURL, err))
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", responseSchemaURL, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(responseSchemaURL, doc); err != nil {
		panic(fmt.Sprintf("add %s: %v", responseSchemaURL, err))
	}
	sch, err := c.Compile(responseSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile %s: %v", responseSchemaURL, err))
	}
	return sch
}

// StripTags removes every tag-like run from s and leaves the text around it intact.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Sanitize turns the raw model reply into ReportData. It returns
// EmptyResponse for a blank reply and MalformedResponse when the reply is not
// an object with the three string fields. It never returns partial data.
func Sanitize(raw string) (ReportData, error) {
	if strings.TrimSpace(raw) == "" {
		return ReportData{}, NewError(KindEmptyResponse, errors.New("no response received from model"))
	}
	txt := util.StripCodeFences(raw)

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(txt))
	if err != nil {
		return ReportData{}, NewError(KindMalformedResponse, fmt.Errorf("bad JSON: %w", err))
	}
	if err := responseValidator.Validate(inst); err != nil {
		return ReportData{}, NewError(KindMalformedResponse, fmt.Errorf("schema mismatch: %w", err))
	}

	var d ReportData
	if err := json.Unmarshal([]byte(txt), &d); err != nil {
		return ReportData{}, NewError(KindMalformedResponse, fmt.Errorf("bad JSON: %w", err))
	}

	d.ActivityExpanded = StripTags(d.ActivityExpanded)
	d.LearningExpanded = StripTags(d.LearningExpanded)
	d.ObstacleExpanded = StripTags(d.ObstacleExpanded)
	return d, nil
}
