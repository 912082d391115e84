package model

import "time"

// Interview is the persisted result of one transcript analysis. Created
// exactly once per analysis call and never mutated afterwards; there is no
// update path. Owned by the user who took the interview, referenced by the
// job and optionally the application.
type Interview struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	JobID         uint   `gorm:"not null;index" json:"job_id"`
	ApplicationID *uint  `json:"application_id,omitempty"`
	Transcript    string `gorm:"type:jsonb" json:"transcript"`

	Summary              string  `gorm:"type:text" json:"feedback_summary"`
	Recommendation       string  `gorm:"type:text" json:"feedback_recommendation"`
	RecommendationMsg    string  `gorm:"type:text" json:"feedback_recommendation_msg"`
	RatingTechnical      float64 `gorm:"type:decimal(3,1)" json:"rating_technical"`
	RatingCommunication  float64 `gorm:"type:decimal(3,1)" json:"rating_communication"`
	RatingProblemSolving float64 `gorm:"type:decimal(3,1)" json:"rating_problem_solving"`
	RatingExperience     float64 `gorm:"type:decimal(3,1)" json:"rating_experience"`
	OverallScore         float64 `gorm:"type:decimal(3,1)" json:"score"`

	// CallID correlates the record with the external voice call that produced
	// the transcript. A server-side correlation id is generated when the
	// capture client supplies none.
	CallID string `gorm:"type:text" json:"call_id,omitempty"`

	// CompletedAt is assigned server-side at insert time so "most recent
	// interview" orderings are trustworthy.
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *Interview) TableName() string {
	return "interviews"
}

// InterviewWithJob is the list-view row: one interview joined with its job's
// title and company. Fetched in a single query; the job columns are empty
// when the job has been deleted.
type InterviewWithJob struct {
	Interview
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}
