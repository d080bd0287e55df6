package models

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

// CategoryStats summarizes the questions filed under one category.
type CategoryStats struct {
	Total             int64
	AverageDifficulty decimal.Decimal
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// GetAllCategories returns every category ordered by id.
func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategoriesWithQuestions returns the categories referenced by at least
// one question. Questions pointing at unknown categories are ignored.
func (r *CategoriesRepository) GetCategoriesWithQuestions(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Model(&Category{}).
		Select("DISTINCT categories.id, categories.type").
		Joins("JOIN questions ON questions.category = categories.id").
		Order("categories.id").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories with questions: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) GetStats(ctx context.Context, categoryID uint) (CategoryStats, error) {
	var row struct {
		Total   int64
		Average decimal.NullDecimal
	}

	if err := r.db.WithContext(ctx).Model(&Question{}).
		Select("COUNT(*) AS total, AVG(difficulty) AS average").
		Where("category = ?", categoryID).
		Scan(&row).Error; err != nil {
		return CategoryStats{}, fmt.Errorf("category %d stats: %w", categoryID, err)
	}

	stats := CategoryStats{Total: row.Total}
	if row.Average.Valid {
		stats.AverageDifficulty = row.Average.Decimal.Round(2)
	}
	return stats, nil
}
