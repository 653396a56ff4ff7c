package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNotificationCountsByResult(t *testing.T) {
	okBefore := testutil.ToFloat64(NotificationsSent.WithLabelValues("sms", "ok"))
	errBefore := testutil.ToFloat64(NotificationsSent.WithLabelValues("sms", "error"))

	Notification("sms", nil)
	Notification("sms", errors.New("gateway down"))
	Notification("sms", nil)

	if got := testutil.ToFloat64(NotificationsSent.WithLabelValues("sms", "ok")) - okBefore; got != 2 {
		t.Fatalf("ok delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(NotificationsSent.WithLabelValues("sms", "error")) - errBefore; got != 1 {
		t.Fatalf("error delta = %v, want 1", got)
	}
}
