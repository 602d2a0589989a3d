package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"ACCOUNT_NOT_FOUND", http.StatusNotFound},
		{"TRANSACTION_NOT_FOUND", http.StatusNotFound},
		{"CUSTOMER_NOT_FOUND", http.StatusNotFound},
		{"DUPLICATE_ACCOUNT_NUMBER", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"INSUFFICIENT_BALANCE", http.StatusUnprocessableEntity},
		{"INACTIVE_ACCOUNT", http.StatusUnprocessableEntity},
		{"INVALID_STATUS_TRANSITION", http.StatusUnprocessableEntity},
		{"CLOSE_WITH_BALANCE", http.StatusUnprocessableEntity},
		{"INVALID_MONEY", http.StatusBadRequest},
		{"INVALID_INPUT", http.StatusBadRequest},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("ACCOUNT_NOT_FOUND", "Account not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
