package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/pdf"
	"github.com/sangkips/autoshop-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer   printer.Printer
	invoices  *InvoiceService
	shop      pdf.Shop
	charWidth int
	audit     AuditLogger
	loc       *time.Location
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, invoices *InvoiceService, shop pdf.Shop, charWidth int, audit AuditLogger, loc *time.Location) *PrinterService {
	if charWidth <= 0 {
		charWidth = printer.DefaultWidth
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PrinterService{
		printer:   p,
		invoices:  invoices,
		shop:      shop,
		charWidth: charWidth,
		audit:     auditOrDiscard(audit),
		loc:       loc,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != printer.TypeNone,
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Type(),
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:        s.header(),
		InvoiceNumber: "TEST-0001",
		Date:          now().In(s.loc).Format("2006-01-02 15:04"),
		Status:        "TEST",
		Lines: []entity.ReceiptLine{
			{Description: "Test tire", Quantity: 2, UnitPrice: 10, Total: 20},
			{Description: "Test service", Quantity: 1, UnitPrice: 5, Total: 5},
		},
		Subtotal: 25,
		Total:    25,
	}
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.charWidth)); err != nil {
		return receipt, apperror.NewAppError(http.StatusBadGateway, "Test print failed: "+err.Error())
	}
	return receipt, nil
}

// PrintInvoice prints an invoice receipt. The receipt is returned even when
// printing fails so the caller can show it.
func (s *PrinterService) PrintInvoice(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Receipt, error) {
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	receipt := s.invoiceReceipt(invoice)

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.charWidth)); err != nil {
		log.Printf("[Printer] invoice %s: %v", invoice.InvoiceNumber, err)
		return receipt, apperror.NewAppError(http.StatusBadGateway, "Failed to print receipt: "+err.Error())
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditInvoice, invoice.ID, map[string]string{"printed_on": s.printer.Type()}))
	return receipt, nil
}

func (s *PrinterService) header() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		ShopName: s.shop.Name,
		Address:  s.shop.Address,
		Phone:    s.shop.Phone,
		TaxID:    s.shop.TaxID,
	}
}

func (s *PrinterService) invoiceReceipt(inv *entity.Invoice) *entity.Receipt {
	r := &entity.Receipt{
		Header:        s.header(),
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.CreatedAt.In(s.loc).Format("2006-01-02 15:04"),
		Status:        inv.Status.String(),
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
	}
	if inv.SplitTax {
		r.GSTAmount = inv.GSTAmount
		r.PSTAmount = inv.PSTAmount
	}
	if inv.Customer != nil {
		r.Customer = inv.Customer.DisplayName()
	}
	if inv.Vehicle != nil {
		r.Vehicle = vehicleLabel(inv.Vehicle)
	}
	if inv.PaymentMethod != nil {
		r.PaymentMethod = inv.PaymentMethod.String()
	}
	for _, it := range inv.Items {
		r.Lines = append(r.Lines, entity.ReceiptLine{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return r
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNumber).
		KeyValue("Date:", r.Date).
		KeyValue("Status:", r.Status)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Vehicle != "" {
		doc.Text(r.Vehicle)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	for _, line := range r.Lines {
		doc.ItemLine(line.Quantity, line.Description, printer.Money(line.Total))
		if line.Quantity > 1 {
			doc.TextF("  @ %s each", printer.Money(line.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", printer.Money(r.Subtotal))
	switch {
	case r.GSTAmount > 0 || r.PSTAmount > 0:
		doc.KeyValue("GST:", printer.Money(r.GSTAmount)).
			KeyValue("PST:", printer.Money(r.PSTAmount))
	case r.TaxAmount > 0:
		doc.KeyValue("Tax:", printer.Money(r.TaxAmount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", printer.Money(r.Total)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(fmt.Sprintf("Thank you for choosing %s!", r.Header.ShopName)).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
