package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gearshop/backend/internal/domain/payment"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

const (
	requestPath = "/pg/v4/payment/request.json"
	verifyPath  = "/pg/v4/payment/verify.json"
	startPath   = "/pg/StartPay/"

	codeSuccess         = 100
	codeAlreadyVerified = 101
)

// ZarinpalAdapter implements payment.Gateway against a Zarinpal-style
// request/verify HTTP API
type ZarinpalAdapter struct {
	baseURL    string
	merchantID string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
}

// NewZarinpalAdapter creates a new adapter from configuration
func NewZarinpalAdapter(cfg config.PaymentConfig) (*ZarinpalAdapter, error) {
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("payment gateway URL is required")
	}
	if cfg.MerchantID == "" {
		return nil, fmt.Errorf("payment merchant ID is required")
	}

	return &ZarinpalAdapter{
		baseURL:    strings.TrimRight(cfg.GatewayURL, "/"),
		merchantID: cfg.MerchantID,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

type requestPayload struct {
	MerchantID  string `json:"merchant_id"`
	Amount      int64  `json:"amount"`
	CallbackURL string `json:"callback_url"`
	Description string `json:"description"`
}

type verifyPayload struct {
	MerchantID string `json:"merchant_id"`
	Amount     int64  `json:"amount"`
	Authority  string `json:"authority"`
}

type gatewayResponse struct {
	Data struct {
		Code      int    `json:"code"`
		Message   string `json:"message"`
		Authority string `json:"authority"`
		RefID     int64  `json:"ref_id"`
	} `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// RequestPayment opens a payment session at the gateway
func (a *ZarinpalAdapter) RequestPayment(ctx context.Context, req payment.PaymentRequest) (*payment.PaymentSession, error) {
	payload := requestPayload{
		MerchantID:  a.merchantID,
		Amount:      toGatewayAmount(req.Amount),
		CallbackURL: req.CallbackURL,
		Description: req.Description,
	}

	resp, err := a.post(ctx, requestPath, payload)
	if err != nil {
		return nil, err
	}

	if resp.Data.Code != codeSuccess || resp.Data.Authority == "" {
		return nil, shared.NewDomainErrorWithCause("PAYMENT_REJECTED",
			fmt.Sprintf("Gateway declined payment request: code %d %s", resp.Data.Code, resp.Data.Message),
			payment.ErrPaymentRejected)
	}

	return &payment.PaymentSession{
		Authority:   resp.Data.Authority,
		RedirectURL: a.baseURL + startPath + resp.Data.Authority,
	}, nil
}

// VerifyPayment confirms a settled session. Code 101 means the gateway
// already verified this authority; it is reported so the caller can
// skip side effects it may have applied on the first verify.
func (a *ZarinpalAdapter) VerifyPayment(ctx context.Context, authority string, amount decimal.Decimal) (*payment.VerificationResult, error) {
	payload := verifyPayload{
		MerchantID: a.merchantID,
		Amount:     toGatewayAmount(amount),
		Authority:  authority,
	}

	resp, err := a.post(ctx, verifyPath, payload)
	if err != nil {
		return nil, err
	}

	switch resp.Data.Code {
	case codeSuccess:
		return &payment.VerificationResult{RefID: resp.Data.RefID}, nil
	case codeAlreadyVerified:
		return &payment.VerificationResult{
			RefID:           resp.Data.RefID,
			AlreadyVerified: true,
		}, nil
	default:
		return nil, shared.NewDomainErrorWithCause("PAYMENT_REJECTED",
			fmt.Sprintf("Gateway rejected verification: code %d %s", resp.Data.Code, resp.Data.Message),
			payment.ErrPaymentRejected)
	}
}

// post sends the payload, retrying transport failures with a bounded
// number of attempts. HTTP-level responses are never retried here.
func (a *ZarinpalAdapter) post(ctx context.Context, path string, payload any) (*gatewayResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	attempts := a.maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.retryDelay):
			}
		}

		resp, err := a.doRequest(ctx, path, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	return nil, shared.NewDomainErrorWithCause("PAYMENT_GATEWAY",
		fmt.Sprintf("Gateway unreachable after %d attempts: %v", attempts, lastErr),
		shared.ErrPaymentGateway)
}

func (a *ZarinpalAdapter) doRequest(ctx context.Context, path string, body []byte) (*gatewayResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed gatewayResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid gateway response: %w", err)
	}
	return &parsed, nil
}

// toGatewayAmount converts a decimal total to the integer amount the
// gateway expects, rounding to whole currency units.
func toGatewayAmount(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}

var _ payment.Gateway = (*ZarinpalAdapter)(nil)
