package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ElenaAntonenko/foodgram-project-react/internal/models"
)

// UserService handles user listing and the follow relationship.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) DB() *gorm.DB {
	return s.db
}

// List returns a page of users ordered by id, plus the total count.
func (s *UserService) List(offset, limit int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := s.db.Order("id").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Get retrieves a user by id.
func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Subscribe creates a follow from caller to author. Following yourself
// or an already followed author is a validation error.
func (s *UserService) Subscribe(callerID, authorID uint) (*models.User, error) {
	author, err := s.Get(authorID)
	if err != nil {
		return nil, err
	}

	if callerID == authorID {
		return nil, NewValidationError("cannot subscribe to yourself")
	}

	var count int64
	if err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", callerID, authorID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, NewValidationError("already subscribed to this author")
	}

	follow := models.Follow{UserID: callerID, AuthorID: authorID}
	if err := s.db.Create(&follow).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// Unsubscribe deletes the follow row; deleting a missing one is a
// validation error.
func (s *UserService) Unsubscribe(callerID, authorID uint) error {
	if _, err := s.Get(authorID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND author_id = ?", callerID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewValidationError("was not subscribed to this author")
	}
	return nil
}

// Subscriptions returns a page of the authors the caller follows,
// ordered by author id, plus the total count.
func (s *UserService) Subscriptions(callerID uint, offset, limit int) ([]models.User, int64, error) {
	followed := s.db.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", callerID)

	var total int64
	if err := s.db.Model(&models.User{}).Where("id IN (?)", followed).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err := s.db.Where("id IN (?)", followed).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}
