package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountCentsConversions(t *testing.T) {
	assert.Equal(t, int64(13200000), AmountToCents(132000))
	assert.Equal(t, int64(132000), CentsToAmount(13200000))
}

func TestWidgetURLToggle(t *testing.T) {
	sandbox := NewPaymentService(true, "https://prod.example/w", "https://sandbox.example/w")
	assert.Equal(t, "https://sandbox.example/w", sandbox.WidgetURL())

	production := NewPaymentService(false, "https://prod.example/w", "https://sandbox.example/w")
	assert.Equal(t, "https://prod.example/w", production.WidgetURL())
}

func TestCreateCheckout(t *testing.T) {
	payments := NewPaymentService(true, "https://prod.example/w", "https://sandbox.example/w")

	session := payments.CreateCheckout(context.Background(), 132000, "")
	require.NotEmpty(t, session.Reference)
	assert.Equal(t, int64(13200000), session.AmountInCents)
	assert.Equal(t, "COP", session.Currency)
	assert.Equal(t, "https://sandbox.example/w", session.WidgetURL)

	withRef := payments.CreateCheckout(context.Background(), 1000, "ref-7")
	assert.Equal(t, "ref-7", withRef.Reference)
}
