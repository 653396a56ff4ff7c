package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func jwksServer(t *testing.T, kid string, pub *rsa.PublicKey) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": kid,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func signRS256(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestVerifierAcceptsProviderToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	srv, hits := jwksServer(t, "k1", &key.PublicKey)
	v := NewVerifier(VerifierConfig{JWKSURL: srv.URL, Issuer: "https://id.shop.test"})
	defer v.Close()

	token := signRS256(t, key, "k1", jwt.MapClaims{
		"sub":             "user_2abc",
		"iss":             "https://id.shop.test",
		"exp":             time.Now().Add(time.Minute).Unix(),
		"email":           "tech@shop.test",
		"public_metadata": map[string]string{"role": "MANAGER"},
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user_2abc" || claims.UserRole() != "MANAGER" || claims.Email != "tech@shop.test" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := v.Verify(context.Background(), token); err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if *hits != 1 {
		t.Fatalf("jwks fetched %d times, want 1", *hits)
	}
}

func TestVerifierRejects(t *testing.T) {
	key, _ := rsa.GenerateKey(rand.Reader, 2048)
	other, _ := rsa.GenerateKey(rand.Reader, 2048)
	srv, _ := jwksServer(t, "k1", &key.PublicKey)
	v := NewVerifier(VerifierConfig{JWKSURL: srv.URL, Issuer: "https://id.shop.test"})
	defer v.Close()

	base := func() jwt.MapClaims {
		return jwt.MapClaims{"sub": "u1", "iss": "https://id.shop.test", "exp": time.Now().Add(time.Minute).Unix()}
	}
	expired := base()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	wrongIssuer := base()
	wrongIssuer["iss"] = "https://evil.test"

	tests := map[string]string{
		"wrong key":    signRS256(t, other, "k1", base()),
		"unknown kid":  signRS256(t, key, "k2", base()),
		"expired":      signRS256(t, key, "k1", expired),
		"wrong issuer": signRS256(t, key, "k1", wrongIssuer),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := v.Verify(context.Background(), token); err == nil {
				t.Fatal("expected verification failure")
			}
		})
	}

	hs := jwt.NewWithClaims(jwt.SigningMethodHS256, base())
	hsToken, _ := hs.SignedString([]byte("secret"))
	if _, err := v.Verify(context.Background(), hsToken); err == nil {
		t.Fatal("HS256 token must be rejected")
	}
}

func TestNilVerifier(t *testing.T) {
	v := NewVerifier(VerifierConfig{})
	if _, err := v.Verify(context.Background(), "x"); err != ErrNotConfigured {
		t.Fatalf("err = %v", err)
	}
}

func TestWebhookVerify(t *testing.T) {
	secret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("super-secret-key"))
	w, err := NewWebhookVerifier(secret)
	if err != nil {
		t.Fatal(err)
	}

	body := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	now := time.Now()
	sign := func(at time.Time, payload []byte) string {
		sig, err := w.wh.Sign("msg_1", at, payload)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return sig
	}
	header := func(at time.Time, sig string) http.Header {
		h := http.Header{}
		h.Set(HeaderID, "msg_1")
		h.Set(HeaderTimestamp, strconv.FormatInt(at.Unix(), 10))
		h.Set(HeaderSignature, sig)
		return h
	}

	if err := w.Verify(header(now, "v1,bogus "+sign(now, body)), body); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	if err := w.Verify(header(now, sign(now, body)), []byte(`{"type":"user.deleted"}`)); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("tampered body: %v", err)
	}
	old := now.Add(-6 * time.Minute)
	if err := w.Verify(header(old, sign(old, body)), body); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("stale timestamp: %v", err)
	}
	if err := w.Verify(http.Header{}, body); err != ErrMissingHeaders {
		t.Fatalf("missing headers: %v", err)
	}

	if _, err := NewWebhookVerifier(""); err != ErrNotConfigured {
		t.Fatalf("empty secret err = %v", err)
	}
}

func TestParseUserEvent(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"type":"user.updated","data":{
		"id":"user_9","first_name":"Ana","last_name":"Ruiz",
		"primary_email_address_id":"e2",
		"email_addresses":[{"id":"e1","email_address":"old@shop.test"},{"id":"e2","email_address":"ana@shop.test"}],
		"public_metadata":{"role":"STAFF"}}}`))
	if err != nil {
		t.Fatal(err)
	}
	u, err := ev.User()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Type != EventUserUpdated || u.PrimaryEmail() != "ana@shop.test" || u.PublicMetadata.Role != "STAFF" {
		t.Fatalf("unexpected event %+v %+v", ev, u)
	}
}

func TestAdminClientUpdatesRole(t *testing.T) {
	var gotAuth, gotPath, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.Method + " " + r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewAdminClient(context.Background(), AdminConfig{
		APIURL:       srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     srv.URL + "/oauth/token",
	})
	if err := c.UpdateRole(context.Background(), "user_9", "MANAGER"); err != nil {
		t.Fatalf("update role: %v", err)
	}
	if gotAuth != "Bearer tok-123" || gotPath != "PATCH /users/user_9/metadata" {
		t.Fatalf("auth=%q path=%q", gotAuth, gotPath)
	}
	if !strings.Contains(gotBody, `"role":"MANAGER"`) {
		t.Fatalf("body = %s", gotBody)
	}

	var disabled *AdminClient
	if err := disabled.UpdateRole(context.Background(), "u", "ADMIN"); err != ErrNotConfigured {
		t.Fatalf("nil client err = %v", err)
	}
}
