package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// Account holds the details of the person reviewing invoices
type Account struct {
	Name    string
	Email   string
	Company string
	Phone   string
}

// IsZero reports whether no account details are set
func (a Account) IsZero() bool {
	return a == Account{}
}

// Validate checks the email address when one is given
func (a Account) Validate() error {
	if email := strings.TrimSpace(a.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("invalid account email %q", a.Email)
		}
	}
	return nil
}
