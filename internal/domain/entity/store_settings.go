package entity

import domainerrors "yearbook/internal/domain/errors"

// PaymentSettings configures the (simulated) payment integrations.
type PaymentSettings struct {
	CreditCard   CreditCardSettings   `json:"credit_card"`
	BankTransfer BankTransferSettings `json:"bank_transfer"`
}

// CreditCardSettings lists the card gateways; checkout accepts cards when any is enabled.
type CreditCardSettings struct {
	Iyzico IyzicoSettings `json:"iyzico"`
	PayTR  PayTRSettings  `json:"paytr"`
	Param  ParamSettings  `json:"param"`
}

type IyzicoSettings struct {
	Enabled   bool   `json:"enabled"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	Mode      string `json:"mode" validate:"oneof=sandbox live"`
}

type PayTRSettings struct {
	Enabled      bool   `json:"enabled"`
	MerchantID   string `json:"merchant_id"`
	MerchantKey  string `json:"merchant_key"`
	MerchantSalt string `json:"merchant_salt"`
}

type ParamSettings struct {
	Enabled        bool   `json:"enabled"`
	ClientCode     string `json:"client_code"`
	ClientUsername string `json:"client_username"`
	ClientPassword string `json:"client_password"`
}

// BankTransferSettings holds the account shown to customers paying by transfer.
type BankTransferSettings struct {
	Enabled       bool   `json:"enabled"`
	AccountHolder string `json:"account_holder"`
	IBAN          string `json:"iban"`
	BankName      string `json:"bank_name"`
}

// DefaultPaymentSettings returns settings with every integration disabled.
func DefaultPaymentSettings() *PaymentSettings {
	return &PaymentSettings{
		CreditCard: CreditCardSettings{
			Iyzico: IyzicoSettings{Mode: "sandbox"},
		},
	}
}

// CreditCardEnabled reports whether any card gateway is enabled.
func (s *PaymentSettings) CreditCardEnabled() bool {
	return s.CreditCard.Iyzico.Enabled || s.CreditCard.PayTR.Enabled || s.CreditCard.Param.Enabled
}

// Accepts reports whether checkout may use the given method.
func (s *PaymentSettings) Accepts(method PaymentMethod) bool {
	switch method {
	case PaymentMethodCreditCard:
		return s.CreditCardEnabled()
	case PaymentMethodBankTransfer:
		return s.BankTransfer.Enabled
	default:
		return false
	}
}

// PublicPaymentMethods is what customers may see about the payment setup: no secrets.
type PublicPaymentMethods struct {
	CreditCard   bool                  `json:"credit_card"`
	BankTransfer *BankTransferSettings `json:"bank_transfer,omitempty"`
}

// Public strips credentials from the settings.
func (s *PaymentSettings) Public() PublicPaymentMethods {
	methods := PublicPaymentMethods{CreditCard: s.CreditCardEnabled()}
	if s.BankTransfer.Enabled {
		bank := s.BankTransfer
		methods.BankTransfer = &bank
	}

	return methods
}

// CargoSettings configures the (simulated) cargo company integrations.
type CargoSettings struct {
	MNG     CargoProvider `json:"mng"`
	Aras    CargoProvider `json:"aras"`
	Yurtici CargoProvider `json:"yurtici"`
	Surat   CargoProvider `json:"surat"`
}

// CargoProvider holds the credentials of one cargo company.
type CargoProvider struct {
	Enabled   bool   `json:"enabled"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

// DefaultCargoSettings returns settings with every cargo company disabled.
func DefaultCargoSettings() *CargoSettings {
	return &CargoSettings{}
}

// Validate checks the settings against their allowed values.
func (s *PaymentSettings) Validate() error {
	if err := structValidator.Struct(s); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
