package payment

import (
	"context"

	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRequest asks the gateway to open a payment session for an order
type PaymentRequest struct {
	OrderID     uuid.UUID
	Amount      decimal.Decimal
	Description string
	CallbackURL string
}

// PaymentSession is an open session at the gateway. Authority is the
// gateway's handle for the session and comes back on the callback.
type PaymentSession struct {
	Authority   string
	RedirectURL string
}

// VerificationResult is the gateway's answer to a verify call.
// AlreadyVerified means the gateway saw this verify before; the caller
// treats it as success but must not apply side effects twice.
type VerificationResult struct {
	RefID           int64
	AlreadyVerified bool
}

// ErrPaymentRejected means the gateway processed the verify call and
// declined it, as opposed to a transport failure.
var ErrPaymentRejected = shared.NewDomainError("PAYMENT_REJECTED", "Payment was rejected by the gateway")

// Gateway is the payment provider contract. Implementations wrap
// transport failures in shared.ErrPaymentGateway so callers can
// distinguish retryable errors from rejections.
type Gateway interface {
	// RequestPayment opens a payment session and returns the redirect
	// target for the customer.
	RequestPayment(ctx context.Context, req PaymentRequest) (*PaymentSession, error)

	// VerifyPayment confirms with the gateway that the session
	// identified by authority settled for the given amount.
	VerifyPayment(ctx context.Context, authority string, amount decimal.Decimal) (*VerificationResult, error)
}
