// Package services содержит бизнес-логику оформления и просмотра
// подписок.
package services

import (
	"context"
	"log/slog"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/lib/period"
	"github.com/soundvault/soundvault/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в
// хранилище.
type SubscriptionRepository interface {
	// RegisterSubscription оформляет подписку с оплатой картами в одной транзакции.
	RegisterSubscription(ctx context.Context, consumerID int64, premium bool, p period.Period, cards []string) (*models.SubscriptionReceipt, error)
	// ListActiveSubscriptions возвращает активные подписки потребителя.
	ListActiveSubscriptions(ctx context.Context, consumerID int64) ([]models.Subscription, error)
}

// SubscriptionService реализует оформление подписок.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, log: log}
}

// Subscribe оформляет подписку указанного периода, оплачивая её картами
// в присланном порядке. Для премиум-потребителя новая подписка
// начинается с конца текущей.
func (s *SubscriptionService) Subscribe(ctx context.Context, consumerID int64, role models.Role, periodName string, cards []string) (*models.SubscriptionReceipt, error) {
	p, err := period.Parse(periodName)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput,
			"period must be one of: month, quarter, semester")
	}

	receipt, err := s.repo.RegisterSubscription(ctx, consumerID,
		role == models.RolePremiumConsumer, p, cards)
	if err != nil {
		return nil, err
	}

	s.log.Info("registered subscription",
		slog.Int64("subscription_id", receipt.SubscriptionID),
		slog.Int64("consumer_id", consumerID),
		slog.String("period", string(p)),
		slog.Bool("extended", receipt.Extended))
	return receipt, nil
}

// ListSubscriptions возвращает активные подписки потребителя.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, consumerID int64) ([]models.Subscription, error) {
	return s.repo.ListActiveSubscriptions(ctx, consumerID)
}
