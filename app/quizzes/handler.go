package quizzes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/udacity-trivia/trivia-api/app/api"
	"github.com/udacity-trivia/trivia-api/models"
)

// QuizResponse carries the next question to ask. Question is null once
// every question in the category has been served.
type QuizResponse struct {
	Success      bool          `json:"success"`
	Question     *api.Question `json:"question"`
	QuizCategory uint          `json:"quiz_category"`
}

type QuizRequest struct {
	PreviousQuestions []uint        `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// QuizCategory is the category object the frontend echoes back. A zero
// ID selects every category.
type QuizCategory struct {
	ID   api.FlexInt `json:"id"`
	Type string      `json:"type"`
}

type QuestionProvider interface {
	GetRandomQuestion(ctx context.Context, filters models.QuizFilters) (*models.Question, error)
}

type QuizHandler struct {
	repo QuestionProvider
	log  *zap.Logger
}

func NewQuizHandler(r QuestionProvider, log *zap.Logger) *QuizHandler {
	return &QuizHandler{
		repo: r,
		log:  log.Named("quizzes"),
	}
}

// HandleNext reads the category and the already served question ids from
// the request body.
func (h *QuizHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	input, err := decodeQuizRequest(r)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	var categoryID uint
	if input.QuizCategory != nil {
		if input.QuizCategory.ID < 0 {
			api.Error(w, r, h.log, fmt.Errorf("%w: negative quiz category %d", api.ErrBadRequest, input.QuizCategory.ID))
			return
		}
		categoryID = uint(input.QuizCategory.ID)
	}
	h.next(w, r, categoryID, input.PreviousQuestions)
}

// HandleNextInCategory takes the category from the path. The body, when
// present, only supplies previous_questions.
func (h *QuizHandler) HandleNextInCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseUint(chi.URLParam(r, "quiz_category"), 10, 64)
	if err != nil {
		api.Error(w, r, h.log, fmt.Errorf("%w: quiz category: %w", api.ErrNotFound, err))
		return
	}

	input, err := decodeQuizRequest(r)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}
	h.next(w, r, uint(categoryID), input.PreviousQuestions)
}

func (h *QuizHandler) next(w http.ResponseWriter, r *http.Request, categoryID uint, previous []uint) {
	question, err := h.repo.GetRandomQuestion(r.Context(), models.QuizFilters{
		CategoryID: categoryID,
		ExcludeIDs: previous,
	})
	if err != nil && !errors.Is(err, models.ErrQuestionNotFound) {
		api.Error(w, r, h.log, fmt.Errorf("%w: %w", api.ErrUnprocessable, err))
		return
	}

	response := QuizResponse{
		Success:      true,
		QuizCategory: categoryID,
	}
	if question != nil {
		formatted := api.FormatQuestion(*question)
		response.Question = &formatted
	}

	api.OKResponse(w, http.StatusOK, response)
}

// decodeQuizRequest treats an empty body as an empty request.
func decodeQuizRequest(r *http.Request) (QuizRequest, error) {
	var input QuizRequest
	if r.Body == nil {
		return input, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		return QuizRequest{}, fmt.Errorf("%w: decode quiz request: %w", api.ErrBadRequest, err)
	}
	return input, nil
}
