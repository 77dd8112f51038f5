// Package seed loads the invoices and payment methods a session starts with.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andy/invoiceflow/internal/common"
	"github.com/andy/invoiceflow/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data is the initial state of a session
type Data struct {
	Account        domain.Account
	Invoices       []domain.Invoice
	PaymentMethods []domain.PaymentMethod
}

type document struct {
	Account        accountRecord         `yaml:"account"`
	Invoices       []invoiceRecord       `yaml:"invoices"`
	PaymentMethods []paymentMethodRecord `yaml:"payment_methods"`
}

type accountRecord struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Company string `yaml:"company"`
	Phone   string `yaml:"phone"`
}

type invoiceRecord struct {
	ID                 string           `yaml:"id"`
	Vendor             string           `yaml:"vendor"`
	Amount             string           `yaml:"amount"`
	Date               string           `yaml:"date"`
	Status             string           `yaml:"status"`
	VerificationStatus string           `yaml:"verification_status"`
	InvoiceNumber      string           `yaml:"invoice_number"`
	VendorAddress      string           `yaml:"vendor_address"`
	VendorTaxID        string           `yaml:"vendor_tax_id"`
	DueDate            string           `yaml:"due_date"`
	Department         string           `yaml:"department"`
	CostCenter         string           `yaml:"cost_center"`
	FileType           string           `yaml:"file_type"`
	LineItems          []lineItemRecord `yaml:"line_items"`
}

type lineItemRecord struct {
	Description string `yaml:"description"`
	Quantity    int    `yaml:"quantity"`
	UnitPrice   string `yaml:"unit_price"`
	Total       string `yaml:"total"`
}

type paymentMethodRecord struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Brand       string `yaml:"brand"`
	Last4       string `yaml:"last4"`
	AccountName string `yaml:"account_name"`
	Email       string `yaml:"email"`
	IsDefault   bool   `yaml:"is_default"`
	Status      string `yaml:"status"`
}

// Default returns the built-in seed
func Default() (*Data, error) {
	return Parse(defaultSeed)
}

// Load reads the seed from path, or the built-in seed when path is empty
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSeedLoad, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML seed document
func Parse(data []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSeedLoad, err)
	}

	out := &Data{
		Account:        domain.Account(doc.Account),
		Invoices:       make([]domain.Invoice, 0, len(doc.Invoices)),
		PaymentMethods: make([]domain.PaymentMethod, 0, len(doc.PaymentMethods)),
	}

	if err := out.Account.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSeedLoad, err)
	}

	seen := make(map[string]bool, len(doc.Invoices))
	for _, rec := range doc.Invoices {
		inv := rec.toDomain()
		if err := inv.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invoice %q: %v", common.ErrSeedLoad, rec.ID, err)
		}
		if _, err := domain.ParseAmount(inv.Amount); err != nil {
			return nil, fmt.Errorf("%w: invoice %q: %v", common.ErrSeedLoad, rec.ID, err)
		}
		if seen[inv.ID] {
			return nil, fmt.Errorf("%w: duplicate invoice id %q", common.ErrSeedLoad, inv.ID)
		}
		seen[inv.ID] = true
		out.Invoices = append(out.Invoices, inv)
	}

	seen = make(map[string]bool, len(doc.PaymentMethods))
	for _, rec := range doc.PaymentMethods {
		m := rec.toDomain()
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: payment method %q: %v", common.ErrSeedLoad, rec.ID, err)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("%w: duplicate payment method id %q", common.ErrSeedLoad, m.ID)
		}
		seen[m.ID] = true
		out.PaymentMethods = append(out.PaymentMethods, m)
	}

	if err := domain.CheckDefault(out.PaymentMethods); err != nil {
		if !errors.Is(err, domain.ErrNoDefaultMethod) {
			return nil, fmt.Errorf("%w: %v", common.ErrSeedLoad, err)
		}
		// A registry without a default gets the first method, as after a removal
		out.PaymentMethods[0].IsDefault = true
	}

	return out, nil
}

func (r invoiceRecord) toDomain() domain.Invoice {
	inv := domain.Invoice{
		ID:                 r.ID,
		Vendor:             r.Vendor,
		Amount:             r.Amount,
		Date:               r.Date,
		Status:             domain.InvoiceStatus(r.Status),
		VerificationStatus: domain.VerificationStatus(r.VerificationStatus),
		InvoiceNumber:      r.InvoiceNumber,
		VendorAddress:      r.VendorAddress,
		VendorTaxID:        r.VendorTaxID,
		DueDate:            r.DueDate,
		Department:         r.Department,
		CostCenter:         r.CostCenter,
		FileType:           domain.FileType(r.FileType),
	}
	for _, item := range r.LineItems {
		inv.LineItems = append(inv.LineItems, domain.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return inv
}

func (r paymentMethodRecord) toDomain() domain.PaymentMethod {
	return domain.PaymentMethod{
		ID:          r.ID,
		Type:        domain.PaymentMethodType(r.Type),
		Brand:       r.Brand,
		Last4:       r.Last4,
		AccountName: r.AccountName,
		Email:       r.Email,
		IsDefault:   r.IsDefault,
		Status:      domain.PaymentMethodStatus(r.Status),
	}
}
