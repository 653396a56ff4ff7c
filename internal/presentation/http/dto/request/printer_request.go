package request

// EmailInvoiceRequest optionally overrides the customer's email address.
type EmailInvoiceRequest struct {
	To string `json:"to" binding:"omitempty,email"`
}
