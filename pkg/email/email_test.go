package email

import (
	"bytes"
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestSendInvoiceEmailBuildsAttachment(t *testing.T) {
	svc := NewEmailService(EmailConfig{
		SMTPHost:  "smtp.test",
		SMTPPort:  587,
		FromName:  "Main Street Tires",
		FromEmail: "billing@shop.test",
		ShopName:  "Main Street Tires",
	})

	var gotTo []string
	var gotMsg []byte
	svc.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		if addr != "smtp.test:587" {
			t.Fatalf("addr = %s", addr)
		}
		gotTo, gotMsg = to, msg
		return nil
	}

	err := svc.SendInvoiceEmail("jane@example.com", InvoiceEmailData{
		CustomerName:  "Jane",
		InvoiceNumber: "INV-202407-0001",
		Date:          "2024-07-14",
		Total:         "$145.60",
		Status:        "PENDING",
	}, []byte("%PDF-1.3 fake"))
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(gotTo) != 1 || gotTo[0] != "jane@example.com" {
		t.Fatalf("to = %v", gotTo)
	}
	for _, want := range []string{
		"multipart/mixed",
		`filename="INV-202407-0001.pdf"`,
		"application/pdf",
	} {
		if !bytes.Contains(gotMsg, []byte(want)) {
			t.Fatalf("message missing %q", want)
		}
	}
}

func TestSendWithoutHostFails(t *testing.T) {
	svc := NewEmailService(EmailConfig{})
	if err := svc.Send(Message{To: "a@b.c"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	svc := NewEmailService(EmailConfig{ShopName: "Shop"})
	out, err := svc.render(lowStockTemplate, struct{ Lines []LowStockLine }{
		[]LowStockLine{{Label: "<script>", Quantity: 1, MinStock: 4}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("template did not escape label")
	}
}
