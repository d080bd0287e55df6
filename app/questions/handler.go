package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/udacity-trivia/trivia-api/app/api"
	"github.com/udacity-trivia/trivia-api/models"
)

// currentCategoryNone is what the list endpoint reports as its current
// category. Existing clients expect the string, not a JSON null.
const currentCategoryNone = "null"

type ListResponse struct {
	Success         bool           `json:"success"`
	Questions       []api.Question `json:"questions"`
	TotalQuestions  int64          `json:"total_questions"`
	Categories      []api.Category `json:"categories"`
	CurrentCategory string         `json:"current_category"`
}

type DeleteResponse struct {
	Success        bool           `json:"success"`
	Deleted        uint           `json:"deleted"`
	Questions      []api.Question `json:"questions"`
	TotalQuestions int64          `json:"total_questions"`
}

type CreateResponse struct {
	Success        bool           `json:"success"`
	Created        uint           `json:"created"`
	Questions      []api.Question `json:"questions"`
	TotalQuestions int64          `json:"total_questions"`
}

type SearchResponse struct {
	Success        bool           `json:"success"`
	Questions      []api.Question `json:"questions"`
	TotalQuestions int            `json:"total_questions"`
}

// CreateRequest fields are pointers so an absent field can be told apart
// from a zero value. Category and difficulty may arrive as strings.
type CreateRequest struct {
	Question   *string      `json:"question"`
	Answer     *string      `json:"answer"`
	Category   *api.FlexInt `json:"category"`
	Difficulty *api.FlexInt `json:"difficulty"`
}

type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type QuestionProvider interface {
	GetAllQuestions(ctx context.Context) ([]models.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	CreateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id uint) error
	SearchQuestions(ctx context.Context, term string) ([]models.Question, error)
}

type CategoryProvider interface {
	GetCategoriesWithQuestions(ctx context.Context) ([]models.Category, error)
}

type QuestionHandler struct {
	repo       QuestionProvider
	categories CategoryProvider
	log        *zap.Logger
}

func NewQuestionHandler(r QuestionProvider, c CategoryProvider, log *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		repo:       r,
		categories: c,
		log:        log.Named("questions"),
	}
}

// HandleGet lists one page of questions. Any empty page is reported as
// not found, including the first page of an empty table.
func (h *QuestionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	page := api.PageFromRequest(r)

	all, err := h.repo.GetAllQuestions(r.Context())
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	current := api.Paginate(api.FormatQuestions(all), page)
	if len(current) == 0 {
		api.Error(w, r, h.log, fmt.Errorf("%w: page %d of %d questions", api.ErrNotFound, page, len(all)))
		return
	}

	total, err := h.repo.CountQuestions(r.Context())
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	categories, err := h.categories.GetCategoriesWithQuestions(r.Context())
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	api.OKResponse(w, http.StatusOK, ListResponse{
		Success:         true,
		Questions:       current,
		TotalQuestions:  total,
		Categories:      api.FormatCategories(categories),
		CurrentCategory: currentCategoryNone,
	})
}

func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "question_id"), 10, 64)
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: question id: %w", api.ErrNotFound, err))
		return
	}

	question, err := h.repo.GetByID(r.Context(), uint(id))
	if err != nil {
		api.Error(w, r, h.log, repoError(err))
		return
	}

	if err := h.repo.DeleteQuestion(r.Context(), question.ID); err != nil {
		api.Error(w, r, h.log, repoError(err))
		return
	}
	h.log.Info("question deleted", zap.Uint("id", question.ID))

	current, total, err := h.currentPage(r)
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	api.OKResponse(w, http.StatusOK, DeleteResponse{
		Success:        true,
		Deleted:        question.ID,
		Questions:      current,
		TotalQuestions: total,
	})
}

func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: decode question: %w", api.ErrBadRequest, err))
		return
	}

	if input.Question == nil || strings.TrimSpace(*input.Question) == "" ||
		input.Answer == nil || strings.TrimSpace(*input.Answer) == "" {
		api.Error(w, r, h.log, fmt.Errorf("%w: missing question or answer", api.ErrUnprocessable))
		return
	}
	if input.Category == nil || input.Difficulty == nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: missing category or difficulty", api.ErrUnprocessable))
		return
	}
	if *input.Category < 0 {
		api.Error(w, r, h.log, fmt.Errorf("%w: negative category %d", api.ErrUnprocessable, *input.Category))
		return
	}

	question := &models.Question{
		Question:   *input.Question,
		Answer:     *input.Answer,
		CategoryID: uint(*input.Category),
		Difficulty: int(*input.Difficulty),
	}

	if err := h.repo.CreateQuestion(r.Context(), question); err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}
	h.log.Info("question created", zap.Uint("id", question.ID), zap.Uint("category", question.CategoryID))

	current, total, err := h.currentPage(r)
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	api.OKResponse(w, http.StatusCreated, CreateResponse{
		Success:        true,
		Created:        question.ID,
		Questions:      current,
		TotalQuestions: total,
	})
}

// HandleSearchPath searches with the term taken from the URL path.
// chi matches against RawPath when it is set, leaving the param escaped.
func (h *QuestionHandler) HandleSearchPath(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "search_term")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(term)
		if err != nil {
			api.Error(w, r, h.log, fmt.Errorf("%w: search term: %w", api.ErrBadRequest, err))
			return
		}
		term = unescaped
	}
	h.search(w, r, term)
}

// HandleSearchBody searches with the term sent as {"searchTerm": "..."}.
func (h *QuestionHandler) HandleSearchBody(w http.ResponseWriter, r *http.Request) {
	var input SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: decode search: %w", api.ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(input.SearchTerm) == "" {
		api.Error(w, r, h.log, fmt.Errorf("%w: empty search term", api.ErrUnprocessable))
		return
	}
	h.search(w, r, input.SearchTerm)
}

func (h *QuestionHandler) search(w http.ResponseWriter, r *http.Request, term string) {
	matches, err := h.repo.SearchQuestions(r.Context(), term)
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	api.OKResponse(w, http.StatusOK, SearchResponse{
		Success:        true,
		Questions:      api.Paginate(api.FormatQuestions(matches), api.PageFromRequest(r)),
		TotalQuestions: len(matches),
	})
}

// currentPage re-reads the questions after a write and returns the
// requested page along with the new total.
func (h *QuestionHandler) currentPage(r *http.Request) ([]api.Question, int64, error) {
	all, err := h.repo.GetAllQuestions(r.Context())
	if err != nil {
		return nil, 0, err
	}
	total, err := h.repo.CountQuestions(r.Context())
	if err != nil {
		return nil, 0, err
	}
	return api.Paginate(api.FormatQuestions(all), api.PageFromRequest(r)), total, nil
}

func repoError(err error) error {
	if errors.Is(err, models.ErrQuestionNotFound) {
		return fmt.Errorf("%w: %w", api.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", api.ErrUnprocessable, err)
}
