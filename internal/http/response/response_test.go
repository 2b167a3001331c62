package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/http/response"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		kind apperr.Kind
		want int
	}{
		{"invalid input maps to 400", apperr.InvalidInput, http.StatusBadRequest},
		{"conflict maps to 400", apperr.Conflict, http.StatusBadRequest},
		{"unauthenticated maps to 401", apperr.Unauthenticated, http.StatusUnauthorized},
		{"forbidden maps to 403", apperr.Forbidden, http.StatusForbidden},
		{"not found maps to 404", apperr.NotFound, http.StatusNotFound},
		{"internal maps to 500", apperr.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, response.HTTPStatus(tt.kind))
		})
	}
}

func TestFromError(t *testing.T) {
	// Классифицированная ошибка сохраняет статус и сообщение даже
	// после оборачивания на уровне хранилища.
	status, body := response.FromError(
		fmt.Errorf("storage.DeletePlaylist: %w",
			apperr.Newf(apperr.NotFound, "no playlist of your authorship found with ID %d", 12)))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, response.StatusError, body.Status)
	assert.Equal(t, "no playlist of your authorship found with ID 12", body.Error)

	// Сырая ошибка базы не попадает в ответ клиенту.
	status, body = response.FromError(errors.New("pq: deadlock detected"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "database failed to execute query", body.Error)
}

func TestStatusOKWithData(t *testing.T) {
	resp := response.StatusOKWithData(map[string]int64{"song_id": 5})
	assert.Equal(t, response.StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]int64{"song_id": 5}, resp.Data)
}
