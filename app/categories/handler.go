package categories

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/udacity-trivia/trivia-api/app/api"
	"github.com/udacity-trivia/trivia-api/models"
)

type ListResponse struct {
	Success    bool           `json:"success"`
	Categories []api.Category `json:"categories"`
}

type QuestionsResponse struct {
	Success         bool           `json:"success"`
	Questions       []api.Question `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	CurrentCategory uint           `json:"current_category"`
}

type StatsResponse struct {
	Success           bool    `json:"success"`
	Category          uint    `json:"category"`
	TotalQuestions    int64   `json:"total_questions"`
	AverageDifficulty float64 `json:"average_difficulty"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetStats(ctx context.Context, categoryID uint) (models.CategoryStats, error)
}

type QuestionProvider interface {
	GetByCategory(ctx context.Context, categoryID uint) ([]models.Question, error)
}

type CategoryHandler struct {
	repo      CategoryProvider
	questions QuestionProvider
	log       *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, q QuestionProvider, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		repo:      r,
		questions: q,
		log:       log.Named("categories"),
	}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	api.OKResponse(w, http.StatusOK, ListResponse{
		Success:    true,
		Categories: api.FormatCategories(categories),
	})
}

// HandleGetQuestions lists every question filed under the category in the
// path. Unknown categories produce an empty list, not a 404.
func (h *CategoryHandler) HandleGetQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, err := categoryIDParam(r)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	questions, err := h.questions.GetByCategory(r.Context(), categoryID)
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	api.OKResponse(w, http.StatusOK, QuestionsResponse{
		Success:         true,
		Questions:       api.FormatQuestions(questions),
		TotalQuestions:  len(questions),
		CurrentCategory: categoryID,
	})
}

func (h *CategoryHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	categoryID, err := categoryIDParam(r)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	stats, err := h.repo.GetStats(r.Context(), categoryID)
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	api.OKResponse(w, http.StatusOK, StatsResponse{
		Success:           true,
		Category:          categoryID,
		TotalQuestions:    stats.Total,
		AverageDifficulty: stats.AverageDifficulty.InexactFloat64(),
	})
}

func categoryIDParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "category_id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: category id: %w", api.ErrNotFound, err)
	}
	return uint(id), nil
}
