package service

import (
	"context"
	"log"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/pkg/email"
	"github.com/sangkips/autoshop-api/pkg/metrics"
	"github.com/sangkips/autoshop-api/pkg/sms"
)

// Mailer is the part of email.EmailService the services use.
type Mailer interface {
	Enabled() bool
	SendInvoiceEmail(to string, data email.InvoiceEmailData, pdf []byte) error
	SendLowStockAlert(to string, lines []email.LowStockLine) error
}

// NotificationService sends best-effort alerts. Failures are logged and
// counted but never surface to the caller.
type NotificationService struct {
	mailer     Mailer
	sms        sms.Sender
	alertEmail string
}

func NewNotificationService(mailer Mailer, sender sms.Sender, alertEmail string) *NotificationService {
	if sender == nil {
		sender = sms.LogSender{}
	}
	return &NotificationService{mailer: mailer, sms: sender, alertEmail: alertEmail}
}

// LowStock alerts the shop about tires at or below their minimum.
func (n *NotificationService) LowStock(ctx context.Context, tires []entity.Tire) {
	if n == nil || len(tires) == 0 {
		return
	}
	lines := make([]email.LowStockLine, 0, len(tires))
	for _, t := range tires {
		log.Printf("[Inventory] low stock: %s (%d on hand, minimum %d)", t.Label(), t.Quantity, t.MinStock)
		lines = append(lines, email.LowStockLine{Label: t.Label(), Quantity: t.Quantity, MinStock: t.MinStock})
	}
	if n.mailer == nil || !n.mailer.Enabled() || n.alertEmail == "" {
		return
	}
	err := n.mailer.SendLowStockAlert(n.alertEmail, lines)
	metrics.Notification("email", err)
	if err != nil {
		log.Printf("[Inventory] low stock email failed: %v", err)
	}
}

// SMS sends a text message and reports the gateway error.
func (n *NotificationService) SMS(ctx context.Context, phone, message string) error {
	err := n.sms.Send(ctx, phone, message)
	metrics.Notification("sms", err)
	return err
}
