package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundvault/soundvault/internal/apperr"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{
			name: "direct error keeps its kind",
			err:  apperr.New(apperr.NotFound, "no song found with ID 5"),
			want: apperr.NotFound,
		},
		{
			name: "kind survives operation wrapping",
			err:  fmt.Errorf("storage.GetSongInfo: %w", apperr.New(apperr.Conflict, "duplicate")),
			want: apperr.Conflict,
		},
		{
			name: "kind survives double wrapping",
			err: fmt.Errorf("outer: %w",
				fmt.Errorf("inner: %w", apperr.New(apperr.Forbidden, "no access"))),
			want: apperr.Forbidden,
		},
		{
			name: "unclassified error is internal",
			err:  errors.New("connection refused"),
			want: apperr.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	// Классифицированная ошибка показывает клиенту своё сообщение.
	err := fmt.Errorf("storage.CreateSong: %w",
		apperr.New(apperr.InvalidInput, "no artist found"))
	assert.Equal(t, "no artist found", apperr.Message(err))

	// Неклассифицированная — общий текст без внутренних деталей.
	assert.Equal(t, "database failed to execute query",
		apperr.Message(errors.New("pq: relation does not exist")))
}

func TestWrap(t *testing.T) {
	cause := errors.New("unique_violation")
	err := apperr.Wrap(apperr.Conflict, "username already in use", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "username already in use")
	assert.Contains(t, err.Error(), "unique_violation")
}

func TestNewf(t *testing.T) {
	err := apperr.Newf(apperr.NotFound, "no playlist found with ID %d", 12)
	assert.Equal(t, "no playlist found with ID 12", apperr.Message(err))
}
