// Package services содержит бизнес-логику административных операций:
// предоплаченные карты, издатели и баны.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/lib/rabbitmq"
	"github.com/soundvault/soundvault/internal/lib/sl"
)

// ModerationRepository определяет методы административных операций в
// хранилище.
type ModerationRepository interface {
	// CreateCard выпускает предоплаченную карту и возвращает её ID.
	CreateCard(ctx context.Context, number string, credit int, adminID int64) (int64, error)
	// CreatePublisher добавляет издателя и возвращает его ID.
	CreatePublisher(ctx context.Context, name, email string) (int64, error)
	// CreateBan накладывает бан и возвращает его ID.
	CreateBan(ctx context.Context, userID, adminID int64, reason string, endTime *time.Time) (int64, error)
	// CloseBan снимает активный бан пользователя.
	CloseBan(ctx context.Context, userID int64) error
}

// EventPublisher публикует события в очередь модерации.
type EventPublisher interface {
	Publish(event rabbitmq.Event) error
}

// ModerationService реализует операции администратора.
type ModerationService struct {
	repo   ModerationRepository
	events EventPublisher
	log    *slog.Logger
}

// NewModerationService создает новый экземпляр ModerationService.
func NewModerationService(repo ModerationRepository, events EventPublisher, log *slog.Logger) *ModerationService {
	return &ModerationService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// AddCard выпускает предоплаченную карту с одним из фиксированных
// номиналов.
func (s *ModerationService) AddCard(ctx context.Context, adminID int64, number string, credit int) (int64, error) {
	if credit != 15 && credit != 25 && credit != 50 {
		return 0, apperr.New(apperr.InvalidInput, "card credit must be one of: 15, 25, 50")
	}

	id, err := s.repo.CreateCard(ctx, number, credit, adminID)
	if err != nil {
		return 0, err
	}

	s.log.Info("issued prepaid card",
		slog.Int64("card_id", id), slog.Int64("admin_id", adminID))
	s.publish(rabbitmq.NewEvent(rabbitmq.EventCardIssued, 0, adminID,
		fmt.Sprintf("credit %d", credit)))
	return id, nil
}

// AddPublisher добавляет издателя.
func (s *ModerationService) AddPublisher(ctx context.Context, name, email string) (int64, error) {
	id, err := s.repo.CreatePublisher(ctx, name, email)
	if err != nil {
		return 0, err
	}
	s.log.Info("added publisher", slog.Int64("publisher_id", id))
	return id, nil
}

// BanUser накладывает бан до endTime; endTime == "" означает бессрочный
// бан до ручного снятия.
func (s *ModerationService) BanUser(ctx context.Context, adminID, userID int64, reason, endTime string) (int64, error) {
	var until *time.Time
	if endTime != "" {
		parsed, err := time.Parse("2006-01-02", endTime)
		if err != nil {
			return 0, apperr.New(apperr.InvalidInput, "end_time must be a date in format YYYY-MM-DD")
		}
		if !parsed.After(time.Now()) {
			return 0, apperr.New(apperr.InvalidInput, "end_time must be in the future")
		}
		until = &parsed
	}

	id, err := s.repo.CreateBan(ctx, userID, adminID, reason, until)
	if err != nil {
		return 0, err
	}

	s.log.Info("banned user",
		slog.Int64("user_id", userID), slog.Int64("admin_id", adminID))
	s.publish(rabbitmq.NewEvent(rabbitmq.EventUserBanned, userID, adminID, reason))
	return id, nil
}

// UnbanUser снимает активный бан пользователя.
func (s *ModerationService) UnbanUser(ctx context.Context, adminID, userID int64) error {
	if err := s.repo.CloseBan(ctx, userID); err != nil {
		return err
	}

	s.log.Info("unbanned user",
		slog.Int64("user_id", userID), slog.Int64("admin_id", adminID))
	s.publish(rabbitmq.NewEvent(rabbitmq.EventUserUnbanned, userID, adminID, ""))
	return nil
}

func (s *ModerationService) publish(event rabbitmq.Event) {
	if err := s.events.Publish(event); err != nil {
		s.log.Warn("failed to publish event",
			slog.String("type", event.Type), sl.Err(err))
	}
}
