package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/lib/period"
	"github.com/soundvault/soundvault/internal/models"
)

// RegisterSubscription оформляет подписку и списывает её цену с
// предоплаченных карт внутри одной транзакции.
//
// Начало подписки: текущий момент для обычного потребителя; для
// премиум-потребителя — конец самой поздней активной подписки
// (продление вместо наложения). Карты блокируются FOR UPDATE, чтобы два
// одновременных оформления не потратили один остаток дважды, и
// списываются строго в присланном порядке. Нехватка средств откатывает
// всё: и подписку, и уже выполненные в транзакции списания.
func (s *Storage) RegisterSubscription(ctx context.Context, consumerID int64, premium bool, p period.Period, cards []string) (*models.SubscriptionReceipt, error) {
	const op = "storage.RegisterSubscription"

	receipt := &models.SubscriptionReceipt{Extended: premium}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		start := time.Now()
		if premium {
			var prevEnd sql.NullTime
			err := tx.QueryRowContext(ctx,
				`SELECT MAX(end_time)
                 FROM subscriptions
                 WHERE consumers_users_id = $1 AND end_time > CURRENT_TIMESTAMP`,
				consumerID).Scan(&prevEnd)
			if err != nil {
				return err
			}
			if !prevEnd.Valid {
				// Роль говорит «премиум», а активной подписки нет —
				// рассогласование данных.
				return apperr.New(apperr.Internal,
					"premium consumer has no active subscription")
			}
			start = prevEnd.Time
		}

		price := p.Price()
		err := tx.QueryRowContext(ctx,
			`INSERT INTO subscriptions (start_time, end_time, price, consumers_users_id)
             VALUES ($1, $2, $3, $4)
             RETURNING id`,
			start, p.End(start), price, consumerID).Scan(&receipt.SubscriptionID)
		if err != nil {
			return classify(err,
				"duplicate subscription entry",
				"no consumer found for this subscription")
		}

		// Блокируем все названные карты до первого списания.
		rows, err := tx.QueryContext(ctx,
			`SELECT id, number, credit FROM prepaid_cards
             WHERE number = ANY($1::text[])
             FOR UPDATE`,
			cards)
		if err != nil {
			return err
		}
		type lockedCard struct {
			id     int64
			credit int
		}
		locked := make(map[string]lockedCard, len(cards))
		for rows.Next() {
			var (
				card   lockedCard
				number string
			)
			if err := rows.Scan(&card.id, &number, &card.credit); err != nil {
				_ = rows.Close()
				return err
			}
			locked[number] = card
		}
		_ = rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(locked) != len(cards) {
			return apperr.New(apperr.InvalidInput,
				"no card was found with one of the numbers in the card list or there is a duplicate entry")
		}

		// Списываем в порядке, заданном вызывающей стороной.
		remaining := price
		for _, number := range cards {
			if remaining == 0 {
				break
			}
			card := locked[number]
			used := min(card.credit, remaining)
			remaining -= used

			_, err := tx.ExecContext(ctx,
				`INSERT INTO card_payments (amount_used, payment_time, prepaid_cards_id, subscriptions_id)
                 VALUES ($1, CURRENT_TIMESTAMP, $2, $3)`,
				used, card.id, receipt.SubscriptionID)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx,
				`UPDATE prepaid_cards SET credit = credit - $1 WHERE id = $2`,
				used, card.id)
			if err != nil {
				return err
			}
		}

		if remaining > 0 {
			return apperr.Newf(apperr.InvalidInput,
				"missing %.2f in the prepaid cards provided to pay %.2f for %s subscription",
				float64(remaining), float64(price), p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return receipt, nil
}

// ListActiveSubscriptions возвращает активные подписки потребителя,
// начиная с самой поздней.
func (s *Storage) ListActiveSubscriptions(ctx context.Context, consumerID int64) ([]models.Subscription, error) {
	const op = "storage.ListActiveSubscriptions"

	query := `SELECT id, start_time, end_time
              FROM subscriptions
              WHERE consumers_users_id = $1 AND end_time > CURRENT_TIMESTAMP
              ORDER BY end_time DESC`

	rows, err := s.DB.QueryContext(ctx, query, consumerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.StartTime, &item.EndTime); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
