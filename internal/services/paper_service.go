package services

import (
	"errors"
	"time"

	"hadron_scholar_backend/internal/ingest"
	"hadron_scholar_backend/internal/models"

	"gorm.io/gorm"
)

// PaperService owns paper and keyword persistence. It implements
// ingest.Store so the pipeline can run against it.
type PaperService struct {
	db *gorm.DB
}

func NewPaperService(db *gorm.DB) *PaperService {
	return &PaperService{db: db}
}

// Transaction runs fn against a service bound to one database transaction.
func (s *PaperService) Transaction(fn func(tx ingest.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&PaperService{db: tx})
	})
}

// FindPaperByExternalID returns (nil, nil) when no record exists.
func (s *PaperService) FindPaperByExternalID(externalID string) (*models.Paper, error) {
	var paper models.Paper
	err := s.db.Where("external_id = ?", externalID).First(&paper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (s *PaperService) CreatePaper(paper *models.Paper) error {
	return s.db.Create(paper).Error
}

// GetOrCreateKeyword looks a keyword up by name, creating it on first use.
// The unique index on keywords.name backstops concurrent creation.
func (s *PaperService) GetOrCreateKeyword(name string) (*models.Keyword, error) {
	keyword := models.Keyword{Name: name}
	if err := s.db.Where(models.Keyword{Name: name}).FirstOrCreate(&keyword).Error; err != nil {
		return nil, err
	}
	return &keyword, nil
}

// RecentPapers returns the newest papers, optionally filtered by keyword
// name, source slug and a free-text term over title, abstract and authors.
func (s *PaperService) RecentPapers(limit int, keyword, source, search string) ([]models.Paper, error) {
	query := s.db.Model(&models.Paper{}).Preload("Keywords")

	if keyword != "" {
		query = query.
			Joins("JOIN paper_keywords pk ON pk.paper_id = papers.id").
			Joins("JOIN keywords ON keywords.id = pk.keyword_id").
			Where("keywords.name = ?", keyword)
	}
	if source != "" {
		query = query.Where("papers.source = ?", source)
	}
	if search != "" {
		term := "%" + search + "%"
		query = query.Where(
			"LOWER(papers.title) LIKE LOWER(?) OR LOWER(papers.abstract) LIKE LOWER(?) OR LOWER(papers.authors) LIKE LOWER(?)",
			term, term, term,
		)
	}

	var papers []models.Paper
	err := query.Order("papers.published_at DESC").Limit(limit).Find(&papers).Error
	return papers, err
}

// PapersSince returns papers published at or after the cutoff, newest first.
func (s *PaperService) PapersSince(cutoff time.Time) ([]models.Paper, error) {
	var papers []models.Paper
	err := s.db.Where("published_at >= ?", cutoff).
		Order("published_at DESC").
		Find(&papers).Error
	return papers, err
}

func (s *PaperService) GetPaper(id uint) (*models.Paper, error) {
	var paper models.Paper
	if err := s.db.Preload("Keywords").First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

type KeywordCount struct {
	Name       string `json:"name"`
	PaperCount int    `json:"paper_count"`
}

// KeywordCounts returns all keywords with the number of tagged papers,
// busiest first.
func (s *PaperService) KeywordCounts() ([]KeywordCount, error) {
	var counts []KeywordCount
	err := s.db.Table("keywords").
		Select("keywords.name AS name, COUNT(pk.paper_id) AS paper_count").
		Joins("JOIN paper_keywords pk ON pk.keyword_id = keywords.id").
		Group("keywords.id, keywords.name").
		Order("paper_count DESC").
		Scan(&counts).Error
	return counts, err
}

type SourceCount struct {
	Source     string `json:"source"`
	PaperCount int    `json:"paper_count"`
}

// SourceCounts returns every source with its paper count, busiest first.
func (s *PaperService) SourceCounts() ([]SourceCount, error) {
	var counts []SourceCount
	err := s.db.Model(&models.Paper{}).
		Select("source, COUNT(id) AS paper_count").
		Group("source").
		Order("paper_count DESC").
		Scan(&counts).Error
	return counts, err
}
