package model

import "time"

type Job struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RecruiterID      uint      `gorm:"not null" json:"recruiter_id"`
	Title            string    `gorm:"type:text;not null" json:"title"`
	CompanyName      string    `gorm:"type:text;not null" json:"company_name"`
	Location         string    `gorm:"type:text" json:"location"`
	Category         string    `gorm:"type:text" json:"category"`
	JobType          string    `gorm:"type:varchar(50)" json:"job_type"`
	ExperienceLevel  string    `gorm:"type:varchar(50)" json:"experience_level"`
	SalaryMin        int       `json:"salary_min"`
	SalaryMax        int       `json:"salary_max"`
	Description      string    `gorm:"type:text" json:"description"`
	Status           string    `gorm:"type:varchar(50);default:'active'" json:"status"` // active, close, draft
	Responsibilities string    `gorm:"type:text" json:"responsibilities"`
	RequiredSkills   string    `gorm:"type:text" json:"required_skills"`
	PostedDate       time.Time `json:"posted_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

// Placeholder context used when the job row is gone. Analysis of an interview
// must still succeed after the job it was conducted for has been deleted.
const (
	DefaultJobTitle       = "the position"
	DefaultJobDescription = "standard duties"
	DefaultCompanyName    = "the company"
)

// JobContext is the read-only snapshot of a job consumed by the prompt
// builder. It is embedded in the prompt at analysis time, not stored, so
// later edits to the job never rewrite past analyses.
type JobContext struct {
	Title       string
	Description string
	CompanyName string
}

// DefaultJobContext returns the placeholder context for a missing job.
func DefaultJobContext() JobContext {
	return JobContext{
		Title:       DefaultJobTitle,
		Description: DefaultJobDescription,
		CompanyName: DefaultCompanyName,
	}
}

func (j *Job) Context() JobContext {
	return JobContext{
		Title:       j.Title,
		Description: j.Description,
		CompanyName: j.CompanyName,
	}
}
