package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/email"
	"github.com/sangkips/autoshop-api/pkg/metrics"
	"github.com/sangkips/autoshop-api/pkg/pdf"
	"github.com/sangkips/autoshop-api/pkg/timeutil"
)

// DocumentArchive stores rendered documents.
type DocumentArchive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// DocumentService renders invoice and quotation PDFs, archives them and
// mails invoices to customers.
type DocumentService struct {
	invoices   *InvoiceService
	quotations *QuotationService
	archive    DocumentArchive
	mailer     Mailer
	shop       pdf.Shop
	audit      AuditLogger
	loc        *time.Location
}

// DocumentServiceDeps groups the collaborators of DocumentService.
type DocumentServiceDeps struct {
	Invoices   *InvoiceService
	Quotations *QuotationService
	Archive    DocumentArchive
	Mailer     Mailer
	Shop       pdf.Shop
	Audit      AuditLogger
	Location   *time.Location
}

func NewDocumentService(d DocumentServiceDeps) *DocumentService {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	return &DocumentService{
		invoices:   d.Invoices,
		quotations: d.Quotations,
		archive:    d.Archive,
		mailer:     d.Mailer,
		shop:       d.Shop,
		audit:      auditOrDiscard(d.Audit),
		loc:        loc,
	}
}

// RenderedDocument is a PDF ready to be served.
type RenderedDocument struct {
	Filename string
	Data     []byte
	Location string
}

// InvoicePDF renders an invoice and archives the result.
func (s *DocumentService) InvoicePDF(ctx context.Context, id uuid.UUID) (*RenderedDocument, error) {
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, "invoices", invoice.InvoiceNumber, invoice.CreatedAt, s.invoiceDocument(invoice))
}

// QuotationPDF renders a quotation and archives the result.
func (s *DocumentService) QuotationPDF(ctx context.Context, id uuid.UUID) (*RenderedDocument, error) {
	quotation, err := s.quotations.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, "quotations", quotation.QuotationNumber, quotation.CreatedAt, s.quotationDocument(quotation))
}

// EmailInvoice mails the invoice PDF to to, or to the customer's address
// on file when to is empty. It returns the address used.
func (s *DocumentService) EmailInvoice(ctx context.Context, actor Actor, id uuid.UUID, to string) (string, error) {
	if s.mailer == nil || !s.mailer.Enabled() {
		return "", apperror.NewAppError(http.StatusServiceUnavailable, "Email is not configured")
	}
	invoice, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return "", err
	}

	recipient := strings.TrimSpace(to)
	if recipient == "" && invoice.Customer != nil && invoice.Customer.Email != nil {
		recipient = *invoice.Customer.Email
	}
	if recipient == "" {
		return "", apperror.NewBadRequestError("Customer has no email address on file")
	}

	doc, err := s.render(ctx, "invoices", invoice.InvoiceNumber, invoice.CreatedAt, s.invoiceDocument(invoice))
	if err != nil {
		return "", err
	}

	data := email.InvoiceEmailData{
		InvoiceNumber: invoice.InvoiceNumber,
		Date:          invoice.CreatedAt.In(s.loc).Format("January 2, 2006"),
		Total:         fmt.Sprintf("$%.2f", invoice.Total),
		Status:        invoice.Status.String(),
	}
	if invoice.Customer != nil {
		data.CustomerName = invoice.Customer.Name
	}
	if invoice.Status == enum.InvoiceStatusPending && invoice.DueDate != nil {
		data.Note = "Payment is due by " + invoice.DueDate.Format("January 2, 2006") + "."
	}

	err = s.mailer.SendInvoiceEmail(recipient, data, doc.Data)
	metrics.Notification("email", err)
	if err != nil {
		log.Printf("[Invoice] email %s to %s failed: %v", invoice.InvoiceNumber, recipient, err)
		return "", apperror.NewAppError(http.StatusBadGateway, "Failed to send invoice email")
	}

	log.Printf("[Invoice] emailed %s to %s", invoice.InvoiceNumber, recipient)
	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditInvoice, invoice.ID, map[string]string{"emailed_to": recipient}))
	return recipient, nil
}

// render produces the PDF and archives it under kind/YYYY/MM/number.pdf.
// Archive failures are logged; the caller still gets the document.
func (s *DocumentService) render(ctx context.Context, kind, number string, created time.Time, doc pdf.Document) (*RenderedDocument, error) {
	data, err := pdf.Render(doc)
	if err != nil {
		return nil, apperror.Internal("Failed to render document", err)
	}
	out := &RenderedDocument{Filename: number + ".pdf", Data: data}
	if s.archive == nil {
		return out, nil
	}
	key := fmt.Sprintf("%s/%s/%s", kind, created.In(s.loc).Format("2006/01"), out.Filename)
	location, err := s.archive.Put(ctx, key, data, "application/pdf")
	if err != nil {
		log.Printf("[Documents] failed to archive %s: %v", key, err)
		return out, nil
	}
	out.Location = location
	return out, nil
}

func (s *DocumentService) invoiceDocument(inv *entity.Invoice) pdf.Document {
	doc := pdf.Document{
		Title:  "INVOICE",
		Number: inv.InvoiceNumber,
		Date:   inv.CreatedAt.In(s.loc).Format(timeutil.DateLayout),
		Status: inv.Status.String(),
		Shop:   s.shop,
		BillTo: billTo(inv.Customer),
		Notes:  deref(inv.Notes),
	}
	if inv.DueDate != nil {
		doc.DueLabel = "Due"
		doc.DueDate = inv.DueDate.Format(timeutil.DateLayout)
	}
	if inv.Vehicle != nil {
		doc.Vehicle = vehicleLabel(inv.Vehicle)
	}
	for _, it := range inv.Items {
		doc.Lines = append(doc.Lines, pdf.Line{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Total: it.Total})
	}
	applyTotals(&doc, inv.Totals)
	return doc
}

func (s *DocumentService) quotationDocument(q *entity.Quotation) pdf.Document {
	doc := pdf.Document{
		Title:  "QUOTATION",
		Number: q.QuotationNumber,
		Date:   q.CreatedAt.In(s.loc).Format(timeutil.DateLayout),
		Status: q.Status.String(),
		Shop:   s.shop,
		BillTo: billTo(q.Customer),
		Notes:  deref(q.Notes),
	}
	if q.ValidUntil != nil {
		doc.DueLabel = "Valid until"
		doc.DueDate = q.ValidUntil.Format(timeutil.DateLayout)
	}
	if q.Vehicle != nil {
		doc.Vehicle = vehicleLabel(q.Vehicle)
	}
	for _, it := range q.Items {
		doc.Lines = append(doc.Lines, pdf.Line{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Total: it.Total})
	}
	applyTotals(&doc, q.Totals)
	return doc
}

func applyTotals(doc *pdf.Document, t entity.Totals) {
	doc.Subtotal = t.Subtotal
	doc.Split = t.SplitTax
	doc.GSTRate = t.GSTRate
	doc.PSTRate = t.PSTRate
	doc.TaxRate = t.Rates().Combined()
	doc.GSTAmount = t.GSTAmount
	doc.PSTAmount = t.PSTAmount
	doc.TaxAmount = t.TaxAmount
	doc.Total = t.Total
}

func billTo(c *entity.Customer) []string {
	if c == nil {
		return nil
	}
	lines := []string{c.DisplayName()}
	for _, v := range []*string{c.Address, c.Phone, c.Email} {
		if s := deref(v); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

func vehicleLabel(v *entity.Vehicle) string {
	label := fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
	if plate := deref(v.LicensePlate); plate != "" {
		label += " (" + plate + ")"
	}
	return label
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
