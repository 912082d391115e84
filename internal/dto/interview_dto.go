package dto

import (
	"time"

	"github.com/shadtorh/jobconnect/internal/model"
)

// UtteranceDTO is one raw transcript entry as submitted by the client.
// Speaker is validated and normalized at the handler boundary.
type UtteranceDTO struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	Time    string `json:"time,omitempty"`
}

type AnalyzeInterviewRequest struct {
	Transcript    []UtteranceDTO `json:"transcript"`
	JobID         uint           `json:"job_id"`
	ApplicationID *uint          `json:"application_id,omitempty"`
	CallID        string         `json:"call_id,omitempty"`
}

// FeedbackDTO is the feedback block of the 201 response: the validated
// provider output plus the derived overall score.
type FeedbackDTO struct {
	Rating            model.Rating `json:"rating"`
	Summary           string       `json:"summary"`
	Recommendation    string       `json:"recommendation"`
	RecommendationMsg string       `json:"recommendationMsg"`
	OverallScore      float64      `json:"overallScore"`
}

// AnalyzeInterviewResponse is the 201 body of a successful analysis.
type AnalyzeInterviewResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	InterviewID uint        `json:"interviewId"`
	Feedback    FeedbackDTO `json:"feedback"`
}

type InterviewDTO struct {
	ID                   uint      `json:"id"`
	JobID                uint      `json:"job_id"`
	ApplicationID        *uint     `json:"application_id,omitempty"`
	JobTitle             string    `json:"job_title,omitempty"`
	CompanyName          string    `json:"company_name,omitempty"`
	Summary              string    `json:"feedback_summary"`
	Recommendation       string    `json:"feedback_recommendation"`
	RecommendationMsg    string    `json:"feedback_recommendation_msg"`
	RatingTechnical      float64   `json:"rating_technical"`
	RatingCommunication  float64   `json:"rating_communication"`
	RatingProblemSolving float64   `json:"rating_problem_solving"`
	RatingExperience     float64   `json:"rating_experience"`
	OverallScore         float64   `json:"score"`
	CompletedAt          time.Time `json:"completed_at"`
}
