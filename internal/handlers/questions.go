package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/services"
)

//go:generate mockgen -source=questions.go -destination=questions_mock.go -package=handlers

// QuestionManager defines the question operations the handlers need.
type QuestionManager interface {
	Create(ctx context.Context, question *models.Question) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) (*models.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error)
	GetByTitle(ctx context.Context, title string) ([]models.Question, error)
	GetByCategory(ctx context.Context, category models.Category) ([]models.Question, error)
	List(ctx context.Context, pageToken, pageSize int) (*models.Page[models.Question], error)
}

// AnswerDTO is one option of a checkbox question
// swagger:model AnswerDTO
type AnswerDTO struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionRequest represents the JSON body for creating or updating a question
// swagger:model QuestionRequest
type QuestionRequest struct {
	// Optional client-chosen id, create only
	ID *uuid.UUID `json:"id,omitempty"`

	// 10 to 50 characters, unique
	// required: true
	Title string `json:"title"`

	// 100 to 500 characters
	// required: true
	Description string `json:"description"`

	// Time allowed, under 90 minutes
	// required: true
	// default: 300
	DurationSeconds int64 `json:"duration_seconds"`

	// One of language, programming, cognitive, personality, situational, role_specific
	// required: true
	// default: programming
	Category string `json:"category"`

	Answers []AnswerDTO `json:"answers"`
}

// QuestionResponse represents a question
// swagger:model QuestionResponse
type QuestionResponse struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Description     string      `json:"description"`
	DurationSeconds int64       `json:"duration_seconds"`
	Category        string      `json:"category"`
	Answers         []AnswerDTO `json:"answers"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// QuestionPageResponse represents one page of questions
// swagger:model QuestionPageResponse
type QuestionPageResponse struct {
	Items      []QuestionResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	PageToken  int                `json:"page_token"`
	PageSize   int                `json:"page_size"`
}

// maxDurationSeconds bounds duration_seconds before it is turned into a time.Duration.
const maxDurationSeconds = int64(models.MaxQuestionDuration / time.Second)

func (req QuestionRequest) toModel() (*models.Question, error) {
	if req.DurationSeconds <= 0 || req.DurationSeconds >= maxDurationSeconds {
		return nil, fmt.Errorf("%w: duration_seconds must be between 1 and %d", services.ErrValidation, maxDurationSeconds-1)
	}

	answers := make(models.Answers, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, models.Answer{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return &models.Question{
		ID:          optionalID(req.ID),
		Title:       req.Title,
		Description: req.Description,
		Duration:    time.Duration(req.DurationSeconds) * time.Second,
		Category:    models.Category(req.Category),
		Answers:     answers,
	}, nil
}

func newQuestionResponse(q *models.Question) QuestionResponse {
	answers := make([]AnswerDTO, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, AnswerDTO{Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return QuestionResponse{
		ID:              q.ID,
		Title:           q.Title,
		Slug:            q.Slug,
		Description:     q.Description,
		DurationSeconds: int64(q.Duration / time.Second),
		Category:        string(q.Category),
		Answers:         answers,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func newQuestionResponses(questions []models.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, newQuestionResponse(&questions[i]))
	}
	return out
}

// NewCreateQuestionHandler returns an HTTP handler that stores a question.
// @Summary Create question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionRequest body handlers.QuestionRequest true "Question"
// @Success 201 {object} handlers.QuestionResponse "Question created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid question"
// @Failure 409 {object} handlers.ErrorResponse "Title already used"
// @Router /questions [post]
func NewCreateQuestionHandler(svc QuestionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuestionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		question, err := req.toModel()
		if err != nil {
			writeError(w, err)
			return
		}

		question, err = svc.Create(r.Context(), question)
		if err != nil {
			writeError(w, err)
			return
		}

		created(w, r, question.ID, newQuestionResponse(question))
	}
}

// NewGetQuestionHandler returns an HTTP handler that fetches a question by id.
// @Summary Get question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param questionID path string true "Question ID"
// @Success 200 {object} handlers.QuestionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 404 {object} handlers.ErrorResponse "Question not found"
// @Router /questions/{questionID} [get]
func NewGetQuestionHandler(svc QuestionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "questionID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		question, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newQuestionResponse(question))
	}
}

// NewListQuestionsHandler returns an HTTP handler that lists questions page by page,
// or filters them by title or category.
// @Summary List questions
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param page_token query int false "1-based page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param title query string false "Exact title"
// @Param category query string false "Category"
// @Success 200 {object} handlers.QuestionPageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid page or category"
// @Router /questions [get]
func NewListQuestionsHandler(svc QuestionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if title := query.Get("title"); title != "" {
			questions, err := svc.GetByTitle(r.Context(), title)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, newQuestionResponses(questions))
			return
		}

		if category := query.Get("category"); category != "" {
			questions, err := svc.GetByCategory(r.Context(), models.Category(category))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, newQuestionResponses(questions))
			return
		}

		pageToken, pageSize, err := pageParams(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		page, err := svc.List(r.Context(), pageToken, pageSize)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, QuestionPageResponse{
			Items:      newQuestionResponses(page.Items),
			TotalItems: page.TotalItems,
			PageToken:  page.PageToken,
			PageSize:   page.PageSize,
		})
	}
}

// NewUpdateQuestionHandler returns an HTTP handler that replaces a question's fields.
// @Summary Update question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionID path string true "Question ID"
// @Param questionRequest body handlers.QuestionRequest true "Question"
// @Success 200 {object} handlers.QuestionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid question"
// @Failure 404 {object} handlers.ErrorResponse "Question not found"
// @Failure 409 {object} handlers.ErrorResponse "Title already used"
// @Router /questions/{questionID} [put]
func NewUpdateQuestionHandler(svc QuestionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "questionID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		var req QuestionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		question, err := req.toModel()
		if err != nil {
			writeError(w, err)
			return
		}
		question.ID = id

		question, err = svc.Update(r.Context(), question)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newQuestionResponse(question))
	}
}

// NewDeleteQuestionHandler returns an HTTP handler that removes a question.
// @Summary Delete question
// @Tags questions
// @Security BearerAuth
// @Param questionID path string true "Question ID"
// @Success 204 "Question deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 404 {object} handlers.ErrorResponse "Question not found"
// @Router /questions/{questionID} [delete]
func NewDeleteQuestionHandler(svc QuestionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "questionID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
