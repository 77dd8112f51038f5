package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

type PaymentMethodType string

const (
	PaymentMethodCard   PaymentMethodType = "card"
	PaymentMethodBank   PaymentMethodType = "bank"
	PaymentMethodPayPal PaymentMethodType = "paypal"
	PaymentMethodCrypto PaymentMethodType = "crypto"
)

// PaymentMethodTypes lists the supported types in display order
var PaymentMethodTypes = []PaymentMethodType{
	PaymentMethodCard,
	PaymentMethodBank,
	PaymentMethodPayPal,
	PaymentMethodCrypto,
}

// ParsePaymentMethodType converts user input into a PaymentMethodType
func ParsePaymentMethodType(s string) (PaymentMethodType, error) {
	t := PaymentMethodType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PaymentMethodTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown payment method type %q", s)
}

type PaymentMethodStatus string

const (
	PaymentMethodVerified PaymentMethodStatus = "verified"
	PaymentMethodPending  PaymentMethodStatus = "pending"
	PaymentMethodFailed   PaymentMethodStatus = "failed"
)

var (
	ErrNoDefaultMethod        = errors.New("no default payment method")
	ErrMultipleDefaultMethods = errors.New("more than one default payment method")
)

// PaymentMethod is a way of paying approved invoices.
// Which identifying fields are set depends on Type.
type PaymentMethod struct {
	ID          string
	Type        PaymentMethodType
	Brand       string
	Last4       string
	AccountName string
	Email       string
	IsDefault   bool
	Status      PaymentMethodStatus
}

// NewPaymentMethod creates an unverified method and fills the type defaults
func NewPaymentMethod(id string, t PaymentMethodType) PaymentMethod {
	m := PaymentMethod{
		ID:     id,
		Type:   t,
		Status: PaymentMethodPending,
	}
	switch t {
	case PaymentMethodCard:
		m.Brand = "Visa"
	case PaymentMethodBank:
		m.AccountName = "New Account"
	}
	return m
}

// Label returns the masked one-line description of the method
func (p PaymentMethod) Label() string {
	switch p.Type {
	case PaymentMethodCard:
		return fmt.Sprintf("%s •••• %s", p.Brand, p.Last4)
	case PaymentMethodBank:
		return fmt.Sprintf("%s •••• %s", p.AccountName, p.Last4)
	case PaymentMethodPayPal:
		return p.Email
	case PaymentMethodCrypto:
		return fmt.Sprintf("Crypto Wallet •••• %s", p.Last4)
	default:
		return p.ID
	}
}

// Validate returns an error if the identifying fields do not fit the type
func (p PaymentMethod) Validate() error {
	if p.ID == "" {
		return errors.New("payment method ID is required")
	}
	switch p.Status {
	case PaymentMethodVerified, PaymentMethodPending, PaymentMethodFailed:
	default:
		return fmt.Errorf("invalid payment method status %q", p.Status)
	}

	switch p.Type {
	case PaymentMethodCard:
		if strings.TrimSpace(p.Brand) == "" {
			return errors.New("card brand is required")
		}
		return validateLast4(p.Last4)
	case PaymentMethodBank:
		if strings.TrimSpace(p.AccountName) == "" {
			return errors.New("bank account name is required")
		}
		return validateLast4(p.Last4)
	case PaymentMethodCrypto:
		return validateLast4(p.Last4)
	case PaymentMethodPayPal:
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return fmt.Errorf("invalid paypal email %q", p.Email)
		}
		return nil
	default:
		return fmt.Errorf("invalid payment method type %q", p.Type)
	}
}

func validateLast4(s string) error {
	if len(s) != 4 {
		return fmt.Errorf("last4 must be exactly 4 digits, got %q", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("last4 must be exactly 4 digits, got %q", s)
		}
	}
	return nil
}

// SetDefault returns a copy of methods in which the method with the given ID is
// the only default. An unknown ID leaves the registry unchanged.
func SetDefault(methods []PaymentMethod, id string) []PaymentMethod {
	out := clonePaymentMethods(methods)
	if _, ok := FindPaymentMethod(methods, id); !ok {
		return out
	}
	for n := range out {
		out[n].IsDefault = out[n].ID == id
	}
	return out
}

// RemovePaymentMethod returns a copy of methods without the method with the
// given ID. When the removed method was the default, the first remaining
// method is promoted so a non-empty registry always has a default.
func RemovePaymentMethod(methods []PaymentMethod, id string) []PaymentMethod {
	out := make([]PaymentMethod, 0, len(methods))
	removedDefault := false
	for _, m := range methods {
		if m.ID == id {
			removedDefault = m.IsDefault
			continue
		}
		out = append(out, m)
	}
	if removedDefault && len(out) > 0 {
		out[0].IsDefault = true
	}
	return out
}

// AddPaymentMethod returns a copy of methods with m appended. The new method
// is the default only when the registry was empty, and always starts pending.
func AddPaymentMethod(methods []PaymentMethod, m PaymentMethod) []PaymentMethod {
	m.IsDefault = len(methods) == 0
	m.Status = PaymentMethodPending
	out := clonePaymentMethods(methods)
	return append(out, m)
}

// CheckDefault returns an error unless exactly one method is the default.
// An empty registry has no default and is valid.
func CheckDefault(methods []PaymentMethod) error {
	count := 0
	for _, m := range methods {
		if m.IsDefault {
			count++
		}
	}
	switch {
	case count > 1:
		return fmt.Errorf("%w: %d methods marked default", ErrMultipleDefaultMethods, count)
	case count == 0 && len(methods) > 0:
		return ErrNoDefaultMethod
	}
	return nil
}

// DefaultPaymentMethod returns the default method, if any
func DefaultPaymentMethod(methods []PaymentMethod) (PaymentMethod, bool) {
	for _, m := range methods {
		if m.IsDefault {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// FindPaymentMethod returns the method with the given ID
func FindPaymentMethod(methods []PaymentMethod, id string) (PaymentMethod, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

func clonePaymentMethods(methods []PaymentMethod) []PaymentMethod {
	out := make([]PaymentMethod, len(methods), len(methods)+1)
	copy(out, methods)
	return out
}
