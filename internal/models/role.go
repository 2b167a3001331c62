// Package models содержит доменную модель музыкального сервиса:
// пользователей и их роли, каталог песен и альбомов, плейлисты,
// подписки с предоплаченными картами, комментарии и события прослушивания.
package models

// Role представляет роль вызывающей стороны, определяемую по данным
// хранилища на момент запроса.
type Role string

const (
	// RoleBanned — пользователь с активным баном; приоритетнее любой роли.
	RoleBanned Role = "banned"
	// RolePremiumConsumer — потребитель с неистёкшей подпиской.
	RolePremiumConsumer Role = "premium consumer"
	// RoleConsumer — обычный потребитель.
	RoleConsumer Role = "consumer"
	// RoleArtist — исполнитель.
	RoleArtist Role = "artist"
	// RoleAdministrator — администратор.
	RoleAdministrator Role = "administrator"
	// RoleUnknown — у пользователя нет ни одной ролевой записи
	// (токен указывает на удалённого пользователя).
	RoleUnknown Role = ""
)

// Satisfies сообщает, проходит ли роль ограничение required.
// Премиум-потребитель обладает надмножеством прав обычного потребителя.
func (r Role) Satisfies(required Role) bool {
	if r == required {
		return true
	}
	return r == RolePremiumConsumer && required == RoleConsumer
}
