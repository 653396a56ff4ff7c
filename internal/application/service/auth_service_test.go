package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	infraRepo "github.com/sangkips/autoshop-api/internal/infrastructure/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/identity"
	"github.com/sangkips/autoshop-api/pkg/utils"
)

type stubVerifier map[string]*identity.Claims

func (v stubVerifier) Verify(_ context.Context, token string) (*identity.Claims, error) {
	if c, ok := v[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func TestLoginAndRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := infraRepo.NewUserRepository(env.db)
	jwtm := utils.NewJWTManager("test-secret", "autoshop", 15*time.Minute, time.Hour)
	auth := NewAuthService(users, jwtm, nil, env.audit)

	hash, err := utils.HashPassword("s3cret!")
	if err != nil {
		t.Fatal(err)
	}
	local := &entity.User{Email: "desk@shop.test", Role: enum.UserRoleManager, IsActive: true, PasswordHash: &hash}
	if err := users.Create(ctx, local); err != nil {
		t.Fatal(err)
	}

	out, err := auth.Login(ctx, &LoginInput{Email: " Desk@Shop.test ", Password: "s3cret!", IP: "10.0.0.9"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.ExpiresIn != 900 || out.AccessToken == "" || out.RefreshToken == "" {
		t.Errorf("login output = %+v", out)
	}
	stored, _ := users.GetByID(ctx, local.ID)
	if stored.LastLoginAt == nil {
		t.Errorf("last login not recorded")
	}
	if n := env.count(t, &entity.AuditLog{}, "action = ? AND entity_id = ?", enum.AuditActionLogin, local.ID.String()); n != 1 {
		t.Errorf("login audits = %d", n)
	}

	user, err := auth.Authenticate(ctx, out.AccessToken)
	if err != nil || user.ID != local.ID {
		t.Fatalf("Authenticate = %v, %v", user, err)
	}

	refreshed, err := auth.Refresh(ctx, out.RefreshToken)
	if err != nil || refreshed.AccessToken == "" {
		t.Fatalf("Refresh: %v", err)
	}
	_, err = auth.Refresh(ctx, out.AccessToken)
	if !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("access token accepted as refresh: %v", err)
	}

	_, err = auth.Login(ctx, &LoginInput{Email: "desk@shop.test", Password: "wrong"})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	// Mirrored accounts have no password.
	_, err = auth.Login(ctx, &LoginInput{Email: "owner@shop.test", Password: ""})
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Errorf("passwordless login: %v", err)
	}

	local.IsActive = false
	if err := users.Update(ctx, local); err != nil {
		t.Fatal(err)
	}
	_, err = auth.Login(ctx, &LoginInput{Email: "desk@shop.test", Password: "s3cret!"})
	expectStatus(t, err, http.StatusForbidden)
	_, err = auth.Authenticate(ctx, out.AccessToken)
	expectStatus(t, err, http.StatusForbidden)
}

func TestAuthenticateProviderToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := infraRepo.NewUserRepository(env.db)
	verifier := stubVerifier{
		"known":    {Email: "owner@shop.test", RegisteredClaims: jwt.RegisteredClaims{Subject: "user_owner"}},
		"newcomer": {Email: "Tech@Shop.test", Role: "MANAGER", RegisteredClaims: jwt.RegisteredClaims{Subject: "user_tech"}},
	}
	auth := NewAuthService(users, utils.NewJWTManager("k", "autoshop", time.Minute, time.Hour), verifier, env.audit)

	owner, err := auth.Authenticate(ctx, "known")
	if err != nil {
		t.Fatalf("Authenticate known: %v", err)
	}
	if owner.ID != env.actor.UserID || owner.ExternalID == nil || *owner.ExternalID != "user_owner" {
		t.Errorf("owner not linked: %+v", owner)
	}

	tech, err := auth.Authenticate(ctx, "newcomer")
	if err != nil {
		t.Fatalf("Authenticate newcomer: %v", err)
	}
	if tech.Email != "tech@shop.test" || tech.Role != enum.UserRoleManager || !tech.IsActive {
		t.Errorf("provisioned user = %+v", tech)
	}
	again, err := auth.Authenticate(ctx, "newcomer")
	if err != nil || again.ID != tech.ID {
		t.Errorf("second sign-in = %v, %v", again, err)
	}

	_, err = auth.Authenticate(ctx, "garbage")
	if !errors.Is(err, apperror.ErrInvalidToken) {
		t.Errorf("garbage token: %v", err)
	}
}
