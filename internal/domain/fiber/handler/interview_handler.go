package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shadtorh/jobconnect/internal/dto"
	"github.com/shadtorh/jobconnect/internal/middleware"
	"github.com/shadtorh/jobconnect/internal/model"
	"github.com/shadtorh/jobconnect/internal/usecase"
	"github.com/shadtorh/jobconnect/internal/util"
	"gorm.io/gorm"
)

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	api := app.Group("/api/interviews")
	api.Get("/job/:jobId/questions", h.Questions)
	api.Get("/job/:jobId", auth, h.JobDetails)
	api.Post("/analyze", auth, middleware.RateLimiter(10, 1*time.Minute), h.Analyze)
	api.Get("/:id", auth, h.GetInterview)
	api.Get("/", auth, h.ListInterviews)
}

// Analyze is the core endpoint: transcript + job id in, saved evaluation
// out. Caller contract violations are rejected with 400 before any provider
// call; AI, format, and persistence failures surface as 500 with nothing
// written.
func (h *InterviewHandler) Analyze(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	var req dto.AnalyzeInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body.",
		}, err)
	}

	transcript, err := parseTranscript(req.Transcript)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Missing or invalid transcript data.",
		}, err)
	}
	if req.JobID == 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Missing job ID.",
		}, nil)
	}

	result, err := h.uc.AnalyzeAndSave(c.UserContext(), usecase.AnalyzeInput{
		UserID:        identity.UserID,
		CandidateName: identity.FirstName,
		JobID:         req.JobID,
		ApplicationID: req.ApplicationID,
		CallID:        req.CallID,
		Transcript:    transcript,
	})
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusForError(err),
			Message: messageForError(err),
		}, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AnalyzeInterviewResponse{
		Success:     true,
		Message:     "Interview analyzed and saved successfully.",
		InterviewID: result.InterviewID,
		Feedback:    result.Feedback,
	})
}

func (h *InterviewHandler) Questions(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Job ID is required.",
		}, err)
	}

	questions, err := h.uc.GenerateQuestions(c.UserContext(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "Job not found",
			}, nil)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Failed to generate interview questions",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Questions generated successfully.",
		Data:    fiber.Map{"questions": questions},
	})
}

func (h *InterviewHandler) JobDetails(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Job ID is required.",
		}, err)
	}

	job, err := h.uc.JobDetails(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "Job not found",
			}, nil)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Failed to get job details",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Job details retrieved successfully.",
		Data:    job,
	})
}

func (h *InterviewHandler) GetInterview(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Interview ID is required.",
		}, err)
	}

	interview, err := h.uc.GetInterview(id, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "Interview not found",
			}, nil)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Failed to get interview",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Interview retrieved successfully.",
		Data:    interview,
	})
}

func (h *InterviewHandler) ListInterviews(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	interviews, err := h.uc.ListInterviews(identity.UserID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Failed to get interviews",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Interviews retrieved successfully.",
		Data:    fiber.Map{"interviews": interviews},
	})
}

// parseTranscript validates the raw transcript once at the boundary so
// downstream components never re-check shape. Order is preserved.
func parseTranscript(raw []dto.UtteranceDTO) (model.Transcript, error) {
	if len(raw) == 0 {
		return nil, &model.ValidationError{Field: "transcript", Msg: "missing or empty"}
	}
	transcript := make(model.Transcript, 0, len(raw))
	for i, u := range raw {
		speaker, ok := model.ParseSpeaker(u.Speaker)
		if !ok {
			return nil, &model.ValidationError{
				Field: "transcript",
				Msg:   "unknown speaker " + strconv.Quote(u.Speaker) + " at entry " + strconv.Itoa(i),
			}
		}
		if strings.TrimSpace(u.Text) == "" {
			return nil, &model.ValidationError{
				Field: "transcript",
				Msg:   "empty text at entry " + strconv.Itoa(i),
			}
		}
		transcript = append(transcript, model.Utterance{
			Speaker: speaker,
			Text:    u.Text,
			Time:    u.Time,
		})
	}
	return transcript, nil
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, &model.ValidationError{Field: name, Msg: "must be a positive integer"}
	}
	return uint(id), nil
}

func statusForError(err error) int {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func messageForError(err error) string {
	var vErr *model.ValidationError
	var aiErr *model.AiServiceError
	var fmtErr *model.AnalysisFormatError
	var pErr *model.PersistenceError
	switch {
	case errors.As(err, &vErr):
		return "Invalid request."
	case errors.As(err, &aiErr):
		return "AI analysis service is unavailable. Please try again."
	case errors.As(err, &fmtErr):
		return "AI analysis returned an unusable response. No fabricated scores are saved."
	case errors.As(err, &pErr):
		return "Evaluation computed but could not be saved. Please retry."
	}
	return "Server error during interview analysis or saving."
}
