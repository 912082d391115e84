package usecase

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/shadtorh/jobconnect/internal/model"
	"github.com/tidwall/gjson"
)

// maxRawExcerpt bounds how much of a bad provider response is carried in an
// AnalysisFormatError for diagnostics.
const maxRawExcerpt = 500

var ratingFields = []string{
	"rating.technicalSkills",
	"rating.communication",
	"rating.problemSolving",
	"rating.experience",
}

var textFields = []string{
	"summary",
	"recommendation",
	"recommendationMsg",
}

// parseFeedback validates the raw provider response against the feedback
// contract and decodes it. Any deviation — unparsable JSON, missing field,
// non-numeric rating — is an *model.AnalysisFormatError. No defaults are
// substituted: a fabricated evaluation is worse than a visible failure.
func parseFeedback(raw string) (*model.FeedbackResult, error) {
	if !gjson.Valid(raw) {
		return nil, &model.AnalysisFormatError{
			Reason: "response is not valid JSON",
			Raw:    truncateRaw(raw),
		}
	}

	root := gjson.Parse(raw)
	if !root.IsObject() {
		return nil, &model.AnalysisFormatError{
			Reason: "response is not a JSON object",
			Raw:    truncateRaw(raw),
		}
	}

	for _, field := range ratingFields {
		v := root.Get(field)
		if !v.Exists() {
			return nil, &model.AnalysisFormatError{
				Reason: fmt.Sprintf("missing required field %q", field),
				Raw:    truncateRaw(raw),
			}
		}
		if v.Type != gjson.Number {
			return nil, &model.AnalysisFormatError{
				Reason: fmt.Sprintf("field %q is not a number", field),
				Raw:    truncateRaw(raw),
			}
		}
	}

	for _, field := range textFields {
		v := root.Get(field)
		if !v.Exists() || v.Type != gjson.String || v.String() == "" {
			return nil, &model.AnalysisFormatError{
				Reason: fmt.Sprintf("missing required field %q", field),
				Raw:    truncateRaw(raw),
			}
		}
	}

	var fb model.FeedbackResult
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		return nil, &model.AnalysisFormatError{
			Reason: fmt.Sprintf("decode feedback: %v", err),
			Raw:    truncateRaw(raw),
		}
	}
	return &fb, nil
}

// truncateRaw cuts the excerpt at maxRawExcerpt bytes, backing off so a
// multi-byte rune is never split.
func truncateRaw(raw string) string {
	if len(raw) <= maxRawExcerpt {
		return raw
	}
	cut := maxRawExcerpt
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return raw[:cut]
}
