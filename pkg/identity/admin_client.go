package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AdminConfig addresses the provider's management API.
type AdminConfig struct {
	APIURL       string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// AdminClient calls the management API with a client-credentials token.
type AdminClient struct {
	baseURL string
	client  *http.Client
}

// NewAdminClient returns nil when the API is not configured, so callers can
// treat metadata sync as optional.
func NewAdminClient(ctx context.Context, cfg AdminConfig) *AdminClient {
	if cfg.APIURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.TokenURL == "" {
		return nil
	}
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}
	base := &http.Client{Timeout: 10 * time.Second}
	client := cc.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
	client.Timeout = 10 * time.Second
	return &AdminClient{baseURL: strings.TrimRight(cfg.APIURL, "/"), client: client}
}

// UpdateRole writes the role into the user's public metadata.
func (c *AdminClient) UpdateRole(ctx context.Context, externalID, role string) error {
	if c == nil {
		return ErrNotConfigured
	}
	body, err := json.Marshal(map[string]any{
		"public_metadata": map[string]string{"role": role},
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/users/%s/metadata", c.baseURL, url.PathEscape(externalID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("update identity metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("update identity metadata: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
