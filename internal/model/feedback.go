package model

import "math"

// Recommendation labels the model is instructed to choose from.
const (
	RecommendationHigh         = "Highly Recommended"
	RecommendationRecommended  = "Recommended"
	RecommendationReservations = "Consider with Reservations"
	RecommendationNo           = "Not Recommended"
)

// Rating holds the four category sub-scores, each in [1,10] per the prompt
// contract.
type Rating struct {
	TechnicalSkills float64 `json:"technicalSkills"`
	Communication   float64 `json:"communication"`
	ProblemSolving  float64 `json:"problemSolving"`
	Experience      float64 `json:"experience"`
}

// Overall is the arithmetic mean of the four ratings rounded to one decimal.
func (r Rating) Overall() float64 {
	mean := (r.TechnicalSkills + r.Communication + r.ProblemSolving + r.Experience) / 4
	return math.Round(mean*10) / 10
}

// FeedbackResult is the structured output the completion provider is
// contracted to return. All fields are mandatory; absence of any is an
// AnalysisFormatError.
type FeedbackResult struct {
	Rating            Rating `json:"rating"`
	Summary           string `json:"summary"`
	Recommendation    string `json:"recommendation"`
	RecommendationMsg string `json:"recommendationMsg"`
}
