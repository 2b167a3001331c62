package models

import "time"

// User представляет базовую учётную запись. Ровно одна ролевая запись
// (Consumer, Artist или Administrator) разделяет с ней идентификатор.
type User struct {
	ID           int64  // Идентификатор, генерируется базой
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля
	PasswordSalt string // Индивидуальная соль пароля
	Email        string // Электронная почта (уникальная)
}

// Consumer — ролевая запись потребителя, ID совпадает с User.ID.
type Consumer struct {
	UserID       int64
	Birthday     time.Time
	DisplayName  string
	RegisterDate time.Time
}

// Artist — ролевая запись исполнителя, ID совпадает с User.ID.
type Artist struct {
	UserID      int64
	StageName   string
	PublisherID int64
	// AdminID — администратор, зарегистрировавший исполнителя.
	AdminID int64
}

// Administrator — ролевая запись администратора, ID совпадает с User.ID.
type Administrator struct {
	UserID int64
}

// Publisher — издатель, к которому привязываются исполнители и песни.
type Publisher struct {
	ID    int64
	Name  string
	Email string
}

// Ban — запись о бане пользователя. EndTime == nil означает бессрочный бан;
// пользователь «забанен сейчас», если конец не наступил или отсутствует.
type Ban struct {
	ID          int64
	UserID      int64
	AdminID     int64
	Reason      string
	StartTime   time.Time
	EndTime     *time.Time
	ManualUnban bool
}

// Login — запись об успешной аутентификации.
type Login struct {
	ID        int64
	UserID    int64
	LoginTime time.Time
	IP        string
}
