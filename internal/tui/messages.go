package tui

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenInvoiceMsg switches to the invoices screen and opens the invoice detail
type OpenInvoiceMsg struct {
	ID string
}

// toastKind picks the color of a status line
type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// toast is a one-line notification shown until the next keypress
type toast struct {
	text string
	kind toastKind
}
