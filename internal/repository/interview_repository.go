package repository

import (
	"time"

	"github.com/shadtorh/jobconnect/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

// CreateInterview inserts one interview record. CompletedAt is stamped here,
// never taken from the caller. The insert is a single statement: it either
// fully succeeds or nothing is written.
func (r *InterviewRepository) CreateInterview(iv *model.Interview) error {
	iv.CompletedAt = time.Now().UTC()
	return r.db.Create(iv).Error
}

func (r *InterviewRepository) FindInterviewByID(id, userID uint) (*model.Interview, error) {
	var iv model.Interview
	err := r.db.First(&iv, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// GetUserInterviews returns the user's interviews newest first, with job
// title and company resolved in the same query. Interviews whose job was
// deleted still come back, with empty job columns.
func (r *InterviewRepository) GetUserInterviews(userID uint) ([]model.InterviewWithJob, error) {
	var interviews []model.InterviewWithJob
	err := r.db.
		Model(&model.Interview{}).
		Select("interviews.*, jobs.title AS job_title, jobs.company_name AS company_name").
		Joins("LEFT JOIN jobs ON jobs.id = interviews.job_id").
		Where("interviews.user_id = ?", userID).
		Order("interviews.completed_at DESC").
		Scan(&interviews).Error
	return interviews, err
}
