package entity

import (
	"testing"

	domainerrors "yearbook/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentSettings_Accepts(t *testing.T) {
	settings := DefaultPaymentSettings()
	assert.False(t, settings.Accepts(PaymentMethodCreditCard))
	assert.False(t, settings.Accepts(PaymentMethodBankTransfer))

	settings.CreditCard.PayTR.Enabled = true
	settings.BankTransfer.Enabled = true
	assert.True(t, settings.Accepts(PaymentMethodCreditCard))
	assert.True(t, settings.Accepts(PaymentMethodBankTransfer))
	assert.False(t, settings.Accepts("cash"))
}

func TestPaymentSettings_PublicHidesSecrets(t *testing.T) {
	settings := DefaultPaymentSettings()
	settings.CreditCard.Iyzico = IyzicoSettings{Enabled: true, APIKey: "key", APISecret: "secret", Mode: "live"}
	settings.BankTransfer = BankTransferSettings{Enabled: true, AccountHolder: "Okul A.S.", IBAN: "TR00", BankName: "Bank"}

	public := settings.Public()

	assert.True(t, public.CreditCard)
	if assert.NotNil(t, public.BankTransfer) {
		assert.Equal(t, "TR00", public.BankTransfer.IBAN)
	}

	settings.BankTransfer.Enabled = false
	assert.Nil(t, settings.Public().BankTransfer)
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusShipped.IsValid())
	assert.False(t, OrderStatus("lost").IsValid())
}

func TestPaymentSettings_Validate(t *testing.T) {
	settings := DefaultPaymentSettings()
	require.NoError(t, settings.Validate())

	settings.CreditCard.Iyzico.Mode = "production"
	err := settings.Validate()
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
