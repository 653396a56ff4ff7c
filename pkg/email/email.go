package email

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no SMTP host is set.
var ErrNotConfigured = errors.New("email is not configured")

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	ShopName     string
}

// Attachment is a file carried by a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a single HTML email.
type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
	send   sendFunc
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config, send: smtp.SendMail}
}

// Enabled reports whether SMTP is configured.
func (s *EmailService) Enabled() bool {
	return s != nil && s.config.SMTPHost != ""
}

// Send delivers msg over SMTP.
func (s *EmailService) Send(msg Message) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	raw, err := s.buildMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}
	if err := s.send(addr, auth, s.config.FromEmail, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMessage renders a multipart/mixed MIME message with base64 attachments.
func (s *EmailService) buildMessage(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	from := mime.QEncoding.Encode("utf-8", s.config.FromName) + " <" + s.config.FromEmail + ">"
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/html; charset="UTF-8"`},
		"Content-Transfer-Encoding": {"base64"},
	})
	if err != nil {
		return nil, err
	}
	if err := writeBase64(htmlPart, []byte(msg.HTMLBody)); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {a.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", a.Filename)},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64(part, a.Data); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64 wraps encoded output at 76 columns as RFC 2045 requires.
func writeBase64(w interface{ Write([]byte) (int, error) }, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}

// InvoiceEmailData feeds the invoice email template.
type InvoiceEmailData struct {
	CustomerName  string
	InvoiceNumber string
	Date          string
	Total         string
	Status        string
	Note          string
}

// SendInvoiceEmail mails an invoice with its PDF attached.
func (s *EmailService) SendInvoiceEmail(to string, data InvoiceEmailData, pdf []byte) error {
	body, err := s.render(invoiceTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	return s.Send(Message{
		To:       to,
		Subject:  fmt.Sprintf("Invoice %s from %s", data.InvoiceNumber, s.config.ShopName),
		HTMLBody: body,
		Attachments: []Attachment{{
			Filename:    data.InvoiceNumber + ".pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	})
}

// LowStockLine is one row of the low-stock alert.
type LowStockLine struct {
	Label    string
	Quantity int
	MinStock int
}

// SendLowStockAlert tells the shop which tires need reordering.
func (s *EmailService) SendLowStockAlert(to string, lines []LowStockLine) error {
	body, err := s.render(lowStockTemplate, struct{ Lines []LowStockLine }{lines})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}
	subject := "Low stock alert"
	if len(lines) == 1 {
		subject += ": " + lines[0].Label
	}
	return s.Send(Message{To: to, Subject: subject, HTMLBody: body})
}

func (s *EmailService) render(tpl string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		ShopName string
		Data     interface{}
	}{s.config.ShopName, data})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

const invoiceTemplate = `
<!DOCTYPE html>
<html lang="en">
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 8px;">
        <tr>
            <td style="background: #1f2937; padding: 24px 30px;">
                <h1 style="color: #ffffff; margin: 0; font-size: 22px;">{{.ShopName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px; color: #374151; font-size: 15px; line-height: 1.6;">
                <p>Hello {{.Data.CustomerName}},</p>
                <p>Please find attached invoice <strong>{{.Data.InvoiceNumber}}</strong> dated {{.Data.Date}}.</p>
                <p>Total: <strong>{{.Data.Total}}</strong> ({{.Data.Status}})</p>
                {{if .Data.Note}}<p>{{.Data.Note}}</p>{{end}}
                <p>Thank you for your business.</p>
            </td>
        </tr>
    </table>
</body>
</html>
`

const lowStockTemplate = `
<!DOCTYPE html>
<html lang="en">
<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #374151;">
    <h2>{{.ShopName}}: tires below minimum stock</h2>
    <table style="border-collapse: collapse;">
        <tr><th align="left">Tire</th><th align="right">On hand</th><th align="right">Minimum</th></tr>
        {{range .Data.Lines}}
        <tr><td>{{.Label}}</td><td align="right">{{.Quantity}}</td><td align="right">{{.MinStock}}</td></tr>
        {{end}}
    </table>
</body>
</html>
`
