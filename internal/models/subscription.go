package models

import "time"

// Subscription — оплаченный период подписки потребителя. Потребитель
// считается премиум, пока конец хотя бы одной подписки (с небольшим
// льготным окном) в будущем.
type Subscription struct {
	ID         int64     `json:"subscription_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Price      int       `json:"-"`
	ConsumerID int64     `json:"-"`
}

// PrepaidCard — предоплаченная карта, выпускаемая администратором.
// Credit уменьшается платежами и не может стать отрицательным.
type PrepaidCard struct {
	ID         int64
	Number     string // 16 цифр, уникален
	Credit     int
	Expiration time.Time
	AdminID    int64
}

// CardPayment — списание с карты в счёт подписки.
type CardPayment struct {
	ID             int64
	AmountUsed     int
	PaymentTime    time.Time
	CardID         int64
	SubscriptionID int64
}

// SubscriptionReceipt — результат оформления подписки.
type SubscriptionReceipt struct {
	SubscriptionID int64 `json:"subscription_id"`
	// Extended — true, если подписка пристыкована к концу действующей,
	// а не начата с текущего момента.
	Extended bool `json:"extended"`
}
