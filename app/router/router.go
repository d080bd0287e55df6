// Package router wires handlers and middleware into the chi router.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/udacity-trivia/trivia-api/app/api"
	"github.com/udacity-trivia/trivia-api/app/categories"
	"github.com/udacity-trivia/trivia-api/app/database"
	"github.com/udacity-trivia/trivia-api/app/middleware"
	"github.com/udacity-trivia/trivia-api/app/questions"
	"github.com/udacity-trivia/trivia-api/app/quizzes"
	"github.com/udacity-trivia/trivia-api/models"
)

// New builds the repositories and handlers on top of db and returns the
// fully wired router.
func New(log *zap.Logger, db *gorm.DB) http.Handler {
	questionsRepo := models.NewQuestionsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)

	categoryHandler := categories.NewCategoryHandler(categoriesRepo, questionsRepo, log)
	questionHandler := questions.NewQuestionHandler(questionsRepo, categoriesRepo, log)
	quizHandler := quizzes.NewQuizHandler(questionsRepo, log)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS)
	r.Use(middleware.Recoverer(log))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.ErrorWithCode(w, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.ErrorWithCode(w, http.StatusMethodNotAllowed)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context(), db); err != nil {
			api.Error(w, r, log, fmt.Errorf("health check: %w", err))
			return
		}
		api.OKResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.HandleGetAll)
		r.Get("/{category_id:[0-9]+}/questions", categoryHandler.HandleGetQuestions)
		r.Get("/{category_id:[0-9]+}/stats", categoryHandler.HandleGetStats)
	})

	r.Route("/questions", func(r chi.Router) {
		r.Get("/", questionHandler.HandleGet)
		r.Post("/", questionHandler.HandleCreate)
		r.Delete("/{question_id:[0-9]+}", questionHandler.HandleDelete)
		r.Post("/search", questionHandler.HandleSearchBody)
		r.Post("/search/{search_term}", questionHandler.HandleSearchPath)
	})

	r.Route("/quizzes", func(r chi.Router) {
		r.Post("/", quizHandler.HandleNext)
		r.Post("/{quiz_category:[0-9]+}", quizHandler.HandleNextInCategory)
	})

	return r
}
