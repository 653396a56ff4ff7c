package entity

// ReceiptHeader holds the shop details printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	TaxID    string `json:"tax_id,omitempty"`
}

// ReceiptLine is one printed line.
type ReceiptLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Receipt is composed from an invoice at print time. It is not persisted.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	InvoiceNumber string        `json:"invoice_number"`
	Date          string        `json:"date"`
	Customer      string        `json:"customer,omitempty"`
	Vehicle       string        `json:"vehicle,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Status        string        `json:"status"`
	Lines         []ReceiptLine `json:"lines"`
	Subtotal      float64       `json:"subtotal"`
	GSTAmount     float64       `json:"gst_amount,omitempty"`
	PSTAmount     float64       `json:"pst_amount,omitempty"`
	TaxAmount     float64       `json:"tax_amount"`
	Total         float64       `json:"total"`
}
