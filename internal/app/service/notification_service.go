package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/websocket"
	"github.com/proximahr/proximahr-backend/pkg/logger"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService stores notifications and pushes them to
// connected clients.
type NotificationService interface {
	Notify(userID, companyID uint, notifType, title, message string) error
	List(userID uint, unreadOnly bool, limit int) ([]model.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkAsRead(userID, notificationID uint) error
	MarkAllAsRead(userID uint) error
	Delete(userID, notificationID uint) error
}

type notificationService struct {
	repo repository.NotificationRepository
	hub  *websocket.Hub
}

// NewNotificationService creates a notification service. The hub may
// be nil in tests; persistence still happens.
func NewNotificationService(repo repository.NotificationRepository, hub *websocket.Hub) NotificationService {
	return &notificationService{repo: repo, hub: hub}
}

func (s *notificationService) Notify(userID, companyID uint, notifType, title, message string) error {
	notification := &model.Notification{
		UserID:    userID,
		CompanyID: companyID,
		Type:      notifType,
		Title:     title,
		Message:   message,
	}

	if err := s.repo.Create(notification); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(userID, notification)
	}

	logger.Get().Debug("notification sent", map[string]interface{}{
		"user_id": userID,
		"type":    notifType,
	})
	return nil
}

func (s *notificationService) List(userID uint, unreadOnly bool, limit int) ([]model.Notification, error) {
	return s.repo.ListByUser(userID, unreadOnly, limit)
}

func (s *notificationService) CountUnread(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *notificationService) MarkAsRead(userID, notificationID uint) error {
	affected, err := s.repo.MarkAsRead(notificationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID uint) error {
	return s.repo.MarkAllAsRead(userID)
}

func (s *notificationService) Delete(userID, notificationID uint) error {
	affected, err := s.repo.Delete(notificationID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
