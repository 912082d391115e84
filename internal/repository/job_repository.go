package repository

import (
	"github.com/shadtorh/jobconnect/internal/model"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) FindJobByID(id uint) (*model.Job, error) {
	var j model.Job
	err := r.db.First(&j, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}
