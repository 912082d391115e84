package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shadtorh/jobconnect/internal/model"
	"gorm.io/gorm"
)

type mockProvider struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (m *mockProvider) Complete(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockProvider) Name() string { return "mock" }

type mockJobRepo struct {
	job   *model.Job
	err   error
	calls int
}

func (m *mockJobRepo) FindJobByID(uint) (*model.Job, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.job, nil
}

type mockInterviewRepo struct {
	created   []model.Interview
	createErr error
}

func (m *mockInterviewRepo) CreateInterview(iv *model.Interview) error {
	if m.createErr != nil {
		return m.createErr
	}
	iv.ID = uint(len(m.created) + 1)
	iv.CompletedAt = time.Now().UTC()
	m.created = append(m.created, *iv)
	return nil
}

func (m *mockInterviewRepo) FindInterviewByID(id, userID uint) (*model.Interview, error) {
	for i := range m.created {
		if m.created[i].ID == id && m.created[i].UserID == userID {
			return &m.created[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInterviewRepo) GetUserInterviews(userID uint) ([]model.InterviewWithJob, error) {
	var out []model.InterviewWithJob
	for _, iv := range m.created {
		if iv.UserID == userID {
			out = append(out, model.InterviewWithJob{
				Interview:   iv,
				JobTitle:    "Backend Engineer",
				CompanyName: "Acme",
			})
		}
	}
	return out, nil
}

func testJob() *model.Job {
	return &model.Job{
		ID:          42,
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Description: "Build APIs",
	}
}

func testTranscript() model.Transcript {
	return model.Transcript{
		{Speaker: model.SpeakerAgent, Text: "Hi"},
		{Speaker: model.SpeakerCandidate, Text: "Hello"},
	}
}

func validInput() AnalyzeInput {
	return AnalyzeInput{
		UserID:        7,
		CandidateName: "Jordan",
		JobID:         42,
		Transcript:    testTranscript(),
	}
}

func TestAnalyzeAndSave_EmptyTranscript_NoProviderCall(t *testing.T) {
	provider := &mockProvider{response: validFeedbackJSON}
	repo := &mockInterviewRepo{}
	uc := NewInterviewUsecase(repo, &mockJobRepo{job: testJob()}, provider)

	in := validInput()
	in.Transcript = nil
	_, err := uc.AnalyzeAndSave(context.Background(), in)

	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
	if len(repo.created) != 0 {
		t.Errorf("records = %d, want 0", len(repo.created))
	}
}

func TestAnalyzeAndSave_MissingJobID(t *testing.T) {
	provider := &mockProvider{response: validFeedbackJSON}
	uc := NewInterviewUsecase(&mockInterviewRepo{}, &mockJobRepo{job: testJob()}, provider)

	in := validInput()
	in.JobID = 0
	_, err := uc.AnalyzeAndSave(context.Background(), in)

	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
}

func TestAnalyzeAndSave_DeletedJob_UsesPlaceholderContext(t *testing.T) {
	provider := &mockProvider{response: validFeedbackJSON}
	repo := &mockInterviewRepo{}
	uc := NewInterviewUsecase(repo, &mockJobRepo{err: gorm.ErrRecordNotFound}, provider)

	_, err := uc.AnalyzeAndSave(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
	prompt := provider.prompts[0]
	if !strings.Contains(prompt, "the position") || !strings.Contains(prompt, "the company") {
		t.Error("prompt missing placeholder context for deleted job")
	}
	if len(repo.created) != 1 {
		t.Errorf("records = %d, want 1", len(repo.created))
	}
}

func TestAnalyzeAndSave_ProviderFailure_NothingWritten(t *testing.T) {
	provider := &mockProvider{err: &model.AiServiceError{Provider: "mock", Err: errors.New("quota exceeded")}}
	repo := &mockInterviewRepo{}
	uc := NewInterviewUsecase(repo, &mockJobRepo{job: testJob()}, provider)

	// Two identical failing requests leave the record count unchanged.
	for i := 0; i < 2; i++ {
		_, err := uc.AnalyzeAndSave(context.Background(), validInput())
		var aiErr *model.AiServiceError
		if !errors.As(err, &aiErr) {
			t.Fatalf("err = %v, want AiServiceError", err)
		}
	}
	if len(repo.created) != 0 {
		t.Errorf("records = %d, want 0", len(repo.created))
	}
}

func TestAnalyzeAndSave_UnparsableResponse_NothingWritten(t *testing.T) {
	provider := &mockProvider{response: "not json at all"}
	repo := &mockInterviewRepo{}
	uc := NewInterviewUsecase(repo, &mockJobRepo{job: testJob()}, provider)

	_, err := uc.AnalyzeAndSave(context.Background(), validInput())
	var fmtErr *model.AnalysisFormatError
	if !errors.As(err, &fmtErr) {
		t.Fatalf("err = %v, want AnalysisFormatError", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("records = %d, want 0", len(repo.created))
	}
}

func TestAnalyzeAndSave_Success(t *testing.T) {
	response := `{
		"rating": {"technicalSkills": 7, "communication": 8, "problemSolving": 6, "experience": 9},
		"summary": "Good interview.",
		"recommendation": "Recommended",
		"recommendationMsg": "Jordan communicated clearly."
	}`
	provider := &mockProvider{response: response}
	repo := &mockInterviewRepo{}
	uc := NewInterviewUsecase(repo, &mockJobRepo{job: testJob()}, provider)

	result, err := uc.AnalyzeAndSave(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Feedback.OverallScore != 7.5 {
		t.Errorf("OverallScore = %v, want 7.5", result.Feedback.OverallScore)
	}
	if result.InterviewID == 0 {
		t.Error("expected a generated interview id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("records = %d, want 1", len(repo.created))
	}

	iv := repo.created[0]
	if iv.UserID != 7 || iv.JobID != 42 {
		t.Errorf("identity fields = user %d job %d", iv.UserID, iv.JobID)
	}
	if iv.OverallScore != 7.5 {
		t.Errorf("stored OverallScore = %v, want 7.5", iv.OverallScore)
	}
	if iv.RatingTechnical != 7 || iv.RatingCommunication != 8 || iv.RatingProblemSolving != 6 || iv.RatingExperience != 9 {
		t.Errorf("stored ratings = %+v", iv)
	}
	if iv.Recommendation != "Recommended" {
		t.Errorf("Recommendation = %q", iv.Recommendation)
	}
	if iv.CompletedAt.IsZero() {
		t.Error("CompletedAt must be assigned at insert time")
	}
	if iv.CallID == "" {
		t.Error("expected a generated correlation id when none supplied")
	}
	if !strings.Contains(iv.Transcript, `"Agent"`) || !strings.Contains(iv.Transcript, "Hello") {
		t.Errorf("serialized transcript = %q", iv.Transcript)
	}
}

func TestAnalyzeAndSave_KeepsClientCallID(t *testing.T) {
	provider := &mockProvider{response: validFeedbackJSON}
	repo := &mockInterviewRepo{}
	uc := NewInterviewUsecase(repo, &mockJobRepo{job: testJob()}, provider)

	in := validInput()
	in.CallID = "call-abc-123"
	if _, err := uc.AnalyzeAndSave(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created[0].CallID != "call-abc-123" {
		t.Errorf("CallID = %q, want call-abc-123", repo.created[0].CallID)
	}
}

func TestAnalyzeAndSave_InsertFailure(t *testing.T) {
	provider := &mockProvider{response: validFeedbackJSON}
	repo := &mockInterviewRepo{createErr: errors.New("connection lost")}
	uc := NewInterviewUsecase(repo, &mockJobRepo{job: testJob()}, provider)

	_, err := uc.AnalyzeAndSave(context.Background(), validInput())
	var pErr *model.PersistenceError
	if !errors.As(err, &pErr) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("records = %d, want 0", len(repo.created))
	}
}

func TestGenerateQuestions_ParsesProviderResponse(t *testing.T) {
	provider := &mockProvider{response: `["Q1?", "Q2?", "Q3?", "Q4?", "Q5?"]`}
	uc := NewInterviewUsecase(&mockInterviewRepo{}, &mockJobRepo{job: testJob()}, provider)

	questions, err := uc.GenerateQuestions(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 || questions[0] != "Q1?" {
		t.Errorf("questions = %v", questions)
	}
}

func TestGenerateQuestions_FallbackOnProviderFailure(t *testing.T) {
	provider := &mockProvider{err: &model.AiServiceError{Provider: "mock", Err: errors.New("down")}}
	uc := NewInterviewUsecase(&mockInterviewRepo{}, &mockJobRepo{job: testJob()}, provider)

	questions, err := uc.GenerateQuestions(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("len = %d, want 5 fallback questions", len(questions))
	}
	if !strings.Contains(questions[0], "Backend Engineer") {
		t.Errorf("questions[0] = %q, want job title mentioned", questions[0])
	}
}

func TestGenerateQuestions_FallbackOnGarbageResponse(t *testing.T) {
	provider := &mockProvider{response: "no questions today"}
	uc := NewInterviewUsecase(&mockInterviewRepo{}, &mockJobRepo{job: testJob()}, provider)

	questions, err := uc.GenerateQuestions(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 {
		t.Errorf("len = %d, want 5 fallback questions", len(questions))
	}
}

func TestGenerateQuestions_JobNotFound(t *testing.T) {
	provider := &mockProvider{response: `["Q1?"]`}
	uc := NewInterviewUsecase(&mockInterviewRepo{}, &mockJobRepo{err: gorm.ErrRecordNotFound}, provider)

	_, err := uc.GenerateQuestions(context.Background(), 99)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
}

func TestListInterviews_ScopedToUser(t *testing.T) {
	provider := &mockProvider{response: validFeedbackJSON}
	repo := &mockInterviewRepo{}
	uc := NewInterviewUsecase(repo, &mockJobRepo{job: testJob()}, provider)

	if _, err := uc.AnalyzeAndSave(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := validInput()
	other.UserID = 8
	if _, err := uc.AnalyzeAndSave(context.Background(), other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mine, err := uc.ListInterviews(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("len = %d, want 1", len(mine))
	}
	if mine[0].JobTitle != "Backend Engineer" || mine[0].CompanyName != "Acme" {
		t.Errorf("job decoration = %q / %q", mine[0].JobTitle, mine[0].CompanyName)
	}
}

func TestListInterviews_NoPerRowJobLookup(t *testing.T) {
	provider := &mockProvider{response: validFeedbackJSON}
	repo := &mockInterviewRepo{}
	jobRepo := &mockJobRepo{job: testJob()}
	uc := NewInterviewUsecase(repo, jobRepo, provider)

	for i := 0; i < 3; i++ {
		if _, err := uc.AnalyzeAndSave(context.Background(), validInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// The joined repository query already carries job title and company;
	// listing must not fetch jobs row by row.
	jobRepo.calls = 0
	mine, err := uc.ListInterviews(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("len = %d, want 3", len(mine))
	}
	if jobRepo.calls != 0 {
		t.Errorf("job lookups during list = %d, want 0", jobRepo.calls)
	}
}
