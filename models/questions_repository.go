package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type QuestionsRepository struct {
	db *gorm.DB
}

// ErrQuestionNotFound is returned when a question lookup matches no row.
var ErrQuestionNotFound = errors.New("question not found")

// QuizFilters narrows the pool a random quiz question is drawn from.
// A zero CategoryID means every category.
type QuizFilters struct {
	CategoryID uint
	ExcludeIDs []uint
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func NewQuestionsRepository(db *gorm.DB) *QuestionsRepository {
	return &QuestionsRepository{
		db: db,
	}
}

// GetAllQuestions returns every question ordered by id.
func (r *QuestionsRepository) GetAllQuestions(ctx context.Context) ([]Question, error) {
	var questions []Question
	if err := r.db.WithContext(ctx).Order("id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (r *QuestionsRepository) CountQuestions(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Question{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return total, nil
}

func (r *QuestionsRepository) GetByID(ctx context.Context, id uint) (*Question, error) {
	var question Question
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	return &question, nil
}

func (r *QuestionsRepository) CreateQuestion(ctx context.Context, question *Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// DeleteQuestion removes the question with the given id.
// It returns ErrQuestionNotFound when no row was deleted.
func (r *QuestionsRepository) DeleteQuestion(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Question{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete question %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// SearchQuestions returns questions whose text contains term, ignoring case.
// The term is matched literally: % and _ are not wildcards.
func (r *QuestionsRepository) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	var questions []Question
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	if err := r.db.WithContext(ctx).
		Where(`LOWER(question) LIKE ? ESCAPE '\'`, pattern).
		Order("id").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return questions, nil
}

// GetByCategory does not check that the category exists.
func (r *QuestionsRepository) GetByCategory(ctx context.Context, categoryID uint) ([]Question, error) {
	var questions []Question
	if err := r.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("id").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("list questions in category %d: %w", categoryID, err)
	}
	return questions, nil
}

// GetRandomQuestion picks one question uniformly at random among those
// matching filters. It returns ErrQuestionNotFound when the pool is empty.
func (r *QuestionsRepository) GetRandomQuestion(ctx context.Context, filters QuizFilters) (*Question, error) {
	query := r.db.WithContext(ctx).Model(&Question{})

	if filters.CategoryID != 0 {
		query = query.Where("category = ?", filters.CategoryID)
	}
	if len(filters.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filters.ExcludeIDs)
	}

	var question Question
	if err := query.Order("RANDOM()").Take(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("pick random question: %w", err)
	}
	return &question, nil
}
