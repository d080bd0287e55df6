package api

import (
	"encoding/json"
	"net/http"

	"github.com/udacity-trivia/trivia-api/models"
)

// ErrorResponse is the body sent for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

type Category struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
}

type Question struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func FormatCategories(categories []models.Category) []Category {
	res := make([]Category, len(categories))
	for i, c := range categories {
		res[i] = Category{
			ID:   c.ID,
			Type: c.Type,
		}
	}
	return res
}

func FormatQuestion(q models.Question) Question {
	return Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.CategoryID,
		Difficulty: q.Difficulty,
	}
}

func FormatQuestions(questions []models.Question) []Question {
	res := make([]Question, len(questions))
	for i, q := range questions {
		res[i] = FormatQuestion(q)
	}
	return res
}

// OKResponse writes payload as JSON with the given status code.
func OKResponse(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		ErrorWithCode(w, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// ErrorWithCode writes the fixed error body for code. Unknown codes fall
// back to the 500 body.
func ErrorWithCode(w http.ResponseWriter, code int) {
	message, ok := errorMessages[code]
	if !ok {
		code = http.StatusInternalServerError
		message = errorMessages[code]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}
