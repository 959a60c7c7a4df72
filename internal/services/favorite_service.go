package services

import (
	"errors"

	"hadron_scholar_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorite = errors.New("paper already in favorites")
	ErrNotFavorite     = errors.New("paper not in favorites")
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add saves a favorite once per (user, paper). A second add returns
// ErrAlreadyFavorite; the composite unique index catches any race between
// the lookup and the insert.
func (s *FavoriteService) Add(userID uuid.UUID, paperID uint) error {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND paper_id = ?", userID, paperID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyFavorite
	}
	return s.db.Create(&models.Favorite{UserID: userID, PaperID: paperID}).Error
}

func (s *FavoriteService) Remove(userID uuid.UUID, paperID uint) error {
	result := s.db.Where("user_id = ? AND paper_id = ?", userID, paperID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFavorite
	}
	return nil
}

// List returns the user's favorited papers, most recently saved first.
func (s *FavoriteService) List(userID uuid.UUID) ([]models.Paper, error) {
	var papers []models.Paper
	err := s.db.Model(&models.Paper{}).
		Joins("JOIN favorites ON favorites.paper_id = papers.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Preload("Keywords").
		Find(&papers).Error
	return papers, err
}

// PaperIDs returns the ids of the user's favorited papers, for marking
// listings without a join per paper.
func (s *FavoriteService) PaperIDs(userID uuid.UUID) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("paper_id", &ids).Error
	return ids, err
}

func (s *FavoriteService) IsFavorite(userID uuid.UUID, paperID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND paper_id = ?", userID, paperID).
		Count(&count).Error
	return count > 0, err
}
