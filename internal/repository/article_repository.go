package repository

import (
	"errors"

	"github.com/fleischwerk-next/internal/models"

	"gorm.io/gorm"
)

// ArticleRepository is the article master data access interface.
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetByNumber(number string) (*models.Article, error)
	ListBySelection(selection ArticleSelection) ([]models.Article, error)
	List(page, pageSize int) ([]models.Article, int64, error)
	WithTx(tx *gorm.DB) *GormArticleRepository
}

// GormArticleRepository is the GORM implementation.
type GormArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates an article repository.
func NewArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormArticleRepository) WithTx(tx *gorm.DB) *GormArticleRepository {
	if tx == nil {
		return r
	}
	return &GormArticleRepository{db: tx}
}

// Create stores an article.
func (r *GormArticleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetByID fetches an article by id.
func (r *GormArticleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// GetByNumber fetches an article by its unique number.
func (r *GormArticleRepository) GetByNumber(number string) (*models.Article, error) {
	var article models.Article
	if err := r.db.Where("number = ?", number).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// ListBySelection returns articles matching the bulk edit selection.
// Criteria combine with AND; callers reject an empty selection.
func (r *GormArticleRepository) ListBySelection(selection ArticleSelection) ([]models.Article, error) {
	query := r.db.Model(&models.Article{})
	if len(selection.ArticleIDs) > 0 {
		query = query.Where("id IN ?", selection.ArticleIDs)
	}
	if selection.Category != "" {
		query = query.Where("category = ?", selection.Category)
	}
	if selection.NumberRangeFrom != "" && selection.NumberRangeTo != "" {
		query = query.Where("number >= ? AND number <= ?", selection.NumberRangeFrom, selection.NumberRangeTo)
	}

	var articles []models.Article
	if err := query.Order("id asc").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// List returns a page of articles.
func (r *GormArticleRepository) List(page, pageSize int) ([]models.Article, int64, error) {
	query := r.db.Model(&models.Article{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var articles []models.Article
	if err := query.Order("id asc").Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}
