// Package sms sends text notifications through an HTTP SMS gateway.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Config selects and configures the gateway.
type Config struct {
	Provider string
	APIURL   string
	APIKey   string
	SenderID string
}

// New returns an HTTP sender for provider "http" and a log-only sender otherwise.
func New(cfg Config) Sender {
	if strings.EqualFold(cfg.Provider, "http") && cfg.APIURL != "" {
		return NewHTTPSender(cfg)
	}
	return LogSender{}
}

// HTTPSender posts JSON {"to","from","message"} to a gateway with a bearer key.
type HTTPSender struct {
	cfg    Config
	client *http.Client
}

func NewHTTPSender(cfg Config) *HTTPSender {
	return &HTTPSender{cfg: cfg, client: &http.Client{Timeout: 10 * time.Second}}
}

func (s *HTTPSender) Send(ctx context.Context, phone, message string) error {
	phone = NormalizePhone(phone)
	if phone == "" {
		return fmt.Errorf("invalid phone number")
	}

	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"from":    s.cfg.SenderID,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// LogSender only logs. Used when no gateway is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, phone, message string) error {
	log.Printf("[SMS] (not sent, no provider) to=%s message=%q", phone, message)
	return nil
}

// NormalizePhone keeps digits and a leading plus. Ten digit North American
// numbers get a +1 prefix.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) == 10 && !strings.HasPrefix(out, "+") {
		return "+1" + out
	}
	if len(out) == 11 && strings.HasPrefix(out, "1") {
		return "+" + out
	}
	if len(strings.TrimPrefix(out, "+")) < 7 {
		return ""
	}
	return out
}
