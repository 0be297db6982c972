package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"COUPON_EXHAUSTED", http.StatusUnprocessableEntity},
		{"PAYMENT_GATEWAY", http.StatusBadGateway},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"INVALID_PARENT", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "Order not found", "req-123")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 7, 2, 3)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
