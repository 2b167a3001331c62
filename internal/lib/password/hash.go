// Package password реализует хеширование и проверку паролей по схеме
// «соль + перец»: индивидуальная случайная соль хранится рядом с хэшем,
// а секретный перец живёт только в конфигурации процесса.
//
// В качестве функции хеширования используется argon2id — адаптивный
// KDF, устойчивый к перебору на GPU. Сравнение выполняется за
// константное время.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	saltBytes = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 64
)

// Codec хеширует и проверяет пароли с процессным перцем.
type Codec struct {
	pepper string
}

// NewCodec создает Codec с заданным перцем. Перец никогда не
// сохраняется в базе данных.
func NewCodec(pepper string) *Codec {
	return &Codec{pepper: pepper}
}

// NewSalt генерирует случайную соль для нового пользователя.
func NewSalt() (string, error) {
	const op = "password.NewSalt"
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}

// Hash вычисляет argon2id-дайджест от пароля с перцем, используя salt
// как соль KDF. Возвращает hex-представление дайджеста.
func (c *Codec) Hash(password, salt string) string {
	digest := argon2.IDKey(
		[]byte(password+c.pepper),
		[]byte(salt),
		argonTime, argonMemory, argonThreads, argonKeyLen,
	)
	return hex.EncodeToString(digest)
}

// Verify пересчитывает дайджест и сравнивает его с сохранённым за
// константное время.
func (c *Codec) Verify(password, salt, storedDigest string) bool {
	computed := c.Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}
