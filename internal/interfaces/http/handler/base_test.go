package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
		{"concurrency conflict", shared.ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT"},
		{"coupon exhausted", shared.ErrCouponExhausted, http.StatusUnprocessableEntity, "COUPON_EXHAUSTED"},
		{"gateway failure", shared.ErrPaymentGateway, http.StatusBadGateway, "PAYMENT_GATEWAY"},
		{"wrapped domain error", shared.NewDomainErrorWithCause("INSUFFICIENT_STOCK", "have 1, need 3", shared.ErrInsufficientStock), http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleError_IncludesRequestID(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-abc")

	h.HandleError(c, shared.ErrNotFound)

	resp := decodeResponse(t, w)
	assert.Equal(t, "req-abc", resp.Error.RequestID)
}

func TestSystemHandler_Ping(t *testing.T) {
	engine := gin.New()
	NewSystemHandler().RegisterRoutes(engine.Group("/api/v1"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}
