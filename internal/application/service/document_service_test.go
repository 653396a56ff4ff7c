package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/pkg/email"
	"github.com/sangkips/autoshop-api/pkg/pdf"
	"github.com/sangkips/autoshop-api/pkg/printer"
	"github.com/sangkips/autoshop-api/pkg/tax"
)

type memArchive map[string][]byte

func (m memArchive) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	m[key] = data
	return "mem://" + key, nil
}

type recordingMailer struct {
	to   string
	data email.InvoiceEmailData
	pdf  []byte
	err  error
}

func (m *recordingMailer) Enabled() bool { return true }

func (m *recordingMailer) SendInvoiceEmail(to string, data email.InvoiceEmailData, pdf []byte) error {
	m.to, m.data, m.pdf = to, data, pdf
	return m.err
}

func (m *recordingMailer) SendLowStockAlert(string, []email.LowStockLine) error { return nil }

type recordingPrinter struct {
	buf bytes.Buffer
	err error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	p.buf.Write(data)
	return p.err
}
func (p *recordingPrinter) IsConnected(context.Context) bool { return p.err == nil }
func (p *recordingPrinter) Type() string                     { return printer.TypeNetwork }

func seedInvoice(t *testing.T, env *testEnv, addr *string) *entity.Invoice {
	t.Helper()
	c, err := env.customers.CreateCustomer(context.Background(), env.actor, &CustomerInput{Name: "Avery", Email: addr})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	inv, err := env.invoices.CreateInvoice(context.Background(), env.actor, &CreateInvoiceInput{
		Customer: CustomerRef{ID: &c.ID},
		Items:    []LineItemInput{{ItemType: enum.ItemTypeService, Description: "Wheel alignment", Quantity: 1, UnitPrice: 89.99}},
		Tax:      tax.Input{GSTRate: ptr(0.05), PSTRate: ptr(0.07)},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	return inv
}

func TestInvoicePDFIsArchived(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	archive := memArchive{}
	docs := NewDocumentService(DocumentServiceDeps{
		Invoices:   env.invoices,
		Quotations: env.quotations,
		Archive:    archive,
		Shop:       pdf.Shop{Name: "Northside Tire"},
	})

	inv := seedInvoice(t, env, nil)
	doc, err := docs.InvoicePDF(ctx, inv.ID)
	if err != nil {
		t.Fatalf("InvoicePDF: %v", err)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF")) || doc.Filename != inv.InvoiceNumber+".pdf" {
		t.Errorf("document = %s (%d bytes)", doc.Filename, len(doc.Data))
	}
	if got := inv.CreatedAt.UTC().Format("200601"); got != "202403" || !strings.HasPrefix(inv.InvoiceNumber, "INV-"+got+"-") {
		t.Errorf("created_at month %s, number %s", got, inv.InvoiceNumber)
	}
	key := "invoices/2024/03/" + inv.InvoiceNumber + ".pdf"
	if _, ok := archive[key]; !ok || doc.Location != "mem://"+key {
		t.Errorf("archive keys = %v, location %q", keys(archive), doc.Location)
	}
}

func TestEmailInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mailer := &recordingMailer{}
	docs := NewDocumentService(DocumentServiceDeps{Invoices: env.invoices, Quotations: env.quotations, Mailer: mailer, Audit: env.audit})

	withEmail := seedInvoice(t, env, ptr("avery@example.com"))
	to, err := docs.EmailInvoice(ctx, env.actor, withEmail.ID, "")
	if err != nil {
		t.Fatalf("EmailInvoice: %v", err)
	}
	if to != "avery@example.com" || mailer.data.InvoiceNumber != withEmail.InvoiceNumber || mailer.data.Total != "$100.79" || len(mailer.pdf) == 0 {
		t.Errorf("sent %q %+v", to, mailer.data)
	}

	mailer.err = errors.New("smtp down")
	_, err = docs.EmailInvoice(ctx, env.actor, withEmail.ID, "")
	expectStatus(t, err, http.StatusBadGateway)

	noEmail := seedInvoice(t, env, nil)
	_, err = docs.EmailInvoice(ctx, env.actor, noEmail.ID, "")
	expectStatus(t, err, http.StatusBadRequest)

	unconfigured := NewDocumentService(DocumentServiceDeps{Invoices: env.invoices})
	_, err = unconfigured.EmailInvoice(ctx, env.actor, noEmail.ID, "x@example.com")
	expectStatus(t, err, http.StatusServiceUnavailable)
}

func TestPrintInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := &recordingPrinter{}
	svc := NewPrinterService(p, env.invoices, pdf.Shop{Name: "Northside Tire"}, 32, env.audit, nil)

	inv := seedInvoice(t, env, nil)
	receipt, err := svc.PrintInvoice(ctx, env.actor, inv.ID)
	if err != nil {
		t.Fatalf("PrintInvoice: %v", err)
	}
	if receipt.GSTAmount != 4.5 || receipt.PSTAmount != 6.3 || receipt.Total != 100.79 {
		t.Errorf("receipt totals = %+v", receipt)
	}
	out := p.buf.String()
	for _, want := range []string{"Northside Tire", inv.InvoiceNumber, "Wheel alignment", "GST:", "100.79"} {
		if !strings.Contains(out, want) {
			t.Errorf("printed receipt missing %q", want)
		}
	}

	p.err = errors.New("offline")
	receipt, err = svc.PrintInvoice(ctx, env.actor, inv.ID)
	expectStatus(t, err, http.StatusBadGateway)
	if receipt == nil {
		t.Errorf("receipt should be returned when printing fails")
	}
	if st := svc.GetStatus(ctx); !st.Configured || st.Connected {
		t.Errorf("status = %+v", st)
	}
}

func keys(m memArchive) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
