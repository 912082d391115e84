package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shadtorh/jobconnect/internal/dto"
	"github.com/shadtorh/jobconnect/internal/model"
	"github.com/shadtorh/jobconnect/internal/service"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type JobRepositoryInterface interface {
	FindJobByID(id uint) (*model.Job, error)
}

type InterviewRepositoryInterface interface {
	CreateInterview(iv *model.Interview) error
	FindInterviewByID(id, userID uint) (*model.Interview, error)
	GetUserInterviews(userID uint) ([]model.InterviewWithJob, error)
}

type InterviewUsecase struct {
	interviewRepo InterviewRepositoryInterface
	jobRepo       JobRepositoryInterface
	provider      service.CompletionProvider
}

func NewInterviewUsecase(interviewRepo InterviewRepositoryInterface, jobRepo JobRepositoryInterface, provider service.CompletionProvider) *InterviewUsecase {
	return &InterviewUsecase{interviewRepo: interviewRepo, jobRepo: jobRepo, provider: provider}
}

// AnalyzeInput is the boundary-validated request for one analysis.
type AnalyzeInput struct {
	UserID        uint
	CandidateName string
	JobID         uint
	ApplicationID *uint
	CallID        string
	Transcript    model.Transcript
}

// AnalysisResult is returned to the handler after a successful save.
type AnalysisResult struct {
	InterviewID uint
	Feedback    dto.FeedbackDTO
	CompletedAt time.Time
}

// AnalyzeAndSave runs the full pipeline: load job context, format the
// conversation, prompt the provider, validate the response, derive the
// overall score, and persist one interview record. The request has exactly
// two terminal states: saved (record exists) or rejected (nothing written).
func (uc *InterviewUsecase) AnalyzeAndSave(ctx context.Context, in AnalyzeInput) (*AnalysisResult, error) {
	if len(in.Transcript) == 0 {
		return nil, &model.ValidationError{Field: "transcript", Msg: "missing or empty"}
	}
	if in.JobID == 0 {
		return nil, &model.ValidationError{Field: "job_id", Msg: "missing"}
	}

	jobCtx, err := uc.jobContext(in.JobID)
	if err != nil {
		return nil, err
	}

	candidate := in.CandidateName
	if candidate == "" {
		candidate = "The candidate"
	}

	prompt := buildAnalysisPrompt(jobCtx, candidate, in.Transcript.Conversation())

	raw, err := uc.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	fb, err := parseFeedback(raw)
	if err != nil {
		return nil, err
	}

	overall := fb.Rating.Overall()

	transcriptJSON, err := json.Marshal(in.Transcript)
	if err != nil {
		return nil, &model.ValidationError{Field: "transcript", Msg: "not serializable"}
	}

	callID := in.CallID
	if callID == "" {
		callID = uuid.NewString()
	}

	iv := &model.Interview{
		UserID:               in.UserID,
		JobID:                in.JobID,
		ApplicationID:        in.ApplicationID,
		Transcript:           string(transcriptJSON),
		Summary:              fb.Summary,
		Recommendation:       fb.Recommendation,
		RecommendationMsg:    fb.RecommendationMsg,
		RatingTechnical:      fb.Rating.TechnicalSkills,
		RatingCommunication:  fb.Rating.Communication,
		RatingProblemSolving: fb.Rating.ProblemSolving,
		RatingExperience:     fb.Rating.Experience,
		OverallScore:         overall,
		CallID:               callID,
	}
	if err := uc.interviewRepo.CreateInterview(iv); err != nil {
		return nil, &model.PersistenceError{Op: "insert interview", Err: err}
	}

	return &AnalysisResult{
		InterviewID: iv.ID,
		Feedback: dto.FeedbackDTO{
			Rating:            fb.Rating,
			Summary:           fb.Summary,
			Recommendation:    fb.Recommendation,
			RecommendationMsg: fb.RecommendationMsg,
			OverallScore:      overall,
		},
		CompletedAt: iv.CompletedAt,
	}, nil
}

// jobContext loads the read-only job snapshot for the prompt. A deleted job
// yields placeholder context instead of failing; the interview already
// happened and its analysis must still be possible.
func (uc *InterviewUsecase) jobContext(jobID uint) (model.JobContext, error) {
	job, err := uc.jobRepo.FindJobByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("job %d not found, analyzing with placeholder context", jobID)
			return model.DefaultJobContext(), nil
		}
		return model.JobContext{}, &model.PersistenceError{Op: "load job", Err: err}
	}
	return job.Context(), nil
}

// GenerateQuestions returns five AI-generated questions for the job. Unlike
// analysis, this flow falls back to a static question set when the provider
// fails or returns garbage.
func (uc *InterviewUsecase) GenerateQuestions(ctx context.Context, jobID uint) ([]string, error) {
	job, err := uc.jobRepo.FindJobByID(jobID)
	if err != nil {
		return nil, err
	}
	jobCtx := job.Context()

	raw, err := uc.provider.Complete(ctx, buildQuestionsPrompt(jobCtx))
	if err != nil {
		log.Printf("question generation failed, using fallback: %v", err)
		return fallbackQuestions(jobCtx), nil
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		log.Printf("question response is not a JSON array, using fallback")
		return fallbackQuestions(jobCtx), nil
	}
	var questions []string
	for _, q := range parsed.Array() {
		if q.Type == gjson.String && q.String() != "" {
			questions = append(questions, q.String())
		}
	}
	if len(questions) == 0 {
		return fallbackQuestions(jobCtx), nil
	}
	return questions, nil
}

func (uc *InterviewUsecase) GetInterview(id, userID uint) (*dto.InterviewDTO, error) {
	iv, err := uc.interviewRepo.FindInterviewByID(id, userID)
	if err != nil {
		return nil, err
	}
	d := toInterviewDTO(iv)
	// Past interviews stay viewable after their job is deleted; title and
	// company are simply absent then.
	if job, err := uc.jobRepo.FindJobByID(iv.JobID); err == nil {
		d.JobTitle = job.Title
		d.CompanyName = job.CompanyName
	}
	return &d, nil
}

// ListInterviews returns the user's interviews newest first. The job title
// and company come from the repository's joined query, one round trip
// regardless of list length.
func (uc *InterviewUsecase) ListInterviews(userID uint) ([]dto.InterviewDTO, error) {
	interviews, err := uc.interviewRepo.GetUserInterviews(userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.InterviewDTO, 0, len(interviews))
	for i := range interviews {
		d := toInterviewDTO(&interviews[i].Interview)
		d.JobTitle = interviews[i].JobTitle
		d.CompanyName = interviews[i].CompanyName
		dtos = append(dtos, d)
	}
	return dtos, nil
}

func (uc *InterviewUsecase) JobDetails(jobID uint) (*model.Job, error) {
	return uc.jobRepo.FindJobByID(jobID)
}

func toInterviewDTO(iv *model.Interview) dto.InterviewDTO {
	return dto.InterviewDTO{
		ID:                   iv.ID,
		JobID:                iv.JobID,
		ApplicationID:        iv.ApplicationID,
		Summary:              iv.Summary,
		Recommendation:       iv.Recommendation,
		RecommendationMsg:    iv.RecommendationMsg,
		RatingTechnical:      iv.RatingTechnical,
		RatingCommunication:  iv.RatingCommunication,
		RatingProblemSolving: iv.RatingProblemSolving,
		RatingExperience:     iv.RatingExperience,
		OverallScore:         iv.OverallScore,
		CompletedAt:          iv.CompletedAt,
	}
}
