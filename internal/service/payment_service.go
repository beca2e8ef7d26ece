package service

import (
	"context"

	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService prepares checkout sessions for the external payment widget.
// There is no gateway protocol here: only the COP amount conversions and the
// sandbox-vs-production widget URL toggle.
type PaymentService struct {
	sandbox    bool
	widgetURL  string
	sandboxURL string
	logger     *zap.Logger
}

// CheckoutSession is what the storefront hands to the payment widget.
type CheckoutSession struct {
	Reference     string `json:"reference"`
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	WidgetURL     string `json:"widget_url"`
}

// NewPaymentService creates a new payment service
func NewPaymentService(sandbox bool, widgetURL, sandboxURL string) *PaymentService {
	return &PaymentService{
		sandbox:    sandbox,
		widgetURL:  widgetURL,
		sandboxURL: sandboxURL,
		logger:     util.GetLogger(),
	}
}

// AmountToCents converts a COP amount to cents.
func AmountToCents(amount int64) int64 {
	return amount * 100
}

// CentsToAmount converts cents back to a COP amount.
func CentsToAmount(cents int64) int64 {
	return cents / 100
}

// WidgetURL returns the widget endpoint for the configured environment.
func (s *PaymentService) WidgetURL() string {
	if s.sandbox {
		return s.sandboxURL
	}
	return s.widgetURL
}

// CreateCheckout mints a checkout session for the given COP amount. An empty
// reference gets a generated one.
func (s *PaymentService) CreateCheckout(_ context.Context, amount int64, reference string) *CheckoutSession {
	if reference == "" {
		reference = uuid.New().String()
	}

	session := &CheckoutSession{
		Reference:     reference,
		AmountInCents: AmountToCents(amount),
		Currency:      "COP",
		WidgetURL:     s.WidgetURL(),
	}

	util.PaymentCheckoutsTotal.Inc()
	s.logger.Info("Payment checkout created",
		zap.String("reference", session.Reference),
		zap.Int64("amount_in_cents", session.AmountInCents),
		zap.Bool("sandbox", s.sandbox))
	return session
}
