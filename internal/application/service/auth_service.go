package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/identity"
	"github.com/sangkips/autoshop-api/pkg/utils"
)

// TokenVerifier validates identity-provider session tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Claims, error)
}

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	verifier   TokenVerifier
	audit      AuditLogger
}

// NewAuthService creates a new auth service. verifier may be nil when no
// identity provider is configured; only local tokens are accepted then.
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, verifier TokenVerifier, audit AuditLogger) *AuthService {
	s := &AuthService{userRepo: userRepo, jwtManager: jwtManager, audit: auditOrDiscard(audit)}
	if v, ok := verifier.(*identity.Verifier); !ok || v != nil {
		s.verifier = verifier
	}
	return s
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Login authenticates a local account and returns tokens. Accounts mirrored
// from the identity provider have no password and cannot log in here.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, *user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}

	out, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	at := now().UTC()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, at); err != nil {
		log.Printf("[Auth] failed to record last login for %s: %v", user.Email, err)
	}
	user.LastLoginAt = &at

	actor := Actor{UserID: user.ID, Email: user.Email, Role: user.Role, IP: input.IP}
	s.audit.Record(ctx, actor.audit(enum.AuditActionLogin, AuditUser, user.ID, nil))
	return out, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to an active user. Locally issued
// HS256 tokens are tried first, then provider-issued RS256 tokens.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if claims, err := s.jwtManager.ValidateAccessToken(token); err == nil {
		return s.activeUser(ctx, claims.UserID)
	}
	if s.verifier == nil {
		return nil, apperror.ErrInvalidToken
	}

	claims, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if !errors.Is(err, identity.ErrNotConfigured) {
			log.Printf("[Auth] rejected provider token: %v", err)
		}
		return nil, apperror.ErrInvalidToken
	}
	user, err := s.providerUser(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}
	return user, nil
}

// providerUser finds the local mirror of a provider identity. A user who
// signs in before the user.created webhook arrives is provisioned here.
func (s *AuthService) providerUser(ctx context.Context, claims *identity.Claims) (*entity.User, error) {
	externalID := claims.Subject
	if externalID == "" {
		return nil, apperror.ErrInvalidToken
	}
	user, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil || user != nil {
		return user, err
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email != "" {
		if user, err = s.userRepo.GetByEmail(ctx, email); err != nil {
			return nil, err
		}
		if user != nil {
			user.ExternalID = &externalID
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		}
	}
	if email == "" {
		return nil, apperror.NewUnauthorizedError("Unknown user")
	}

	user = &entity.User{
		ExternalID: &externalID,
		Email:      email,
		Role:       roleOrDefault(claims.UserRole(), enum.UserRoleStaff),
		IsActive:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, conflictOr(err, "A user with this email already exists")
	}
	log.Printf("[Auth] provisioned %s from identity provider as %s", user.Email, user.Role)
	return user, nil
}

func (s *AuthService) activeUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperror.ErrAccountDisabled
	}
	return user, nil
}

func (s *AuthService) issue(user *entity.User) (*LoginOutput, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

// roleOrDefault parses a provider role name, falling back to def.
func roleOrDefault(name string, def enum.UserRole) enum.UserRole {
	if name == "" {
		return def
	}
	role, err := enum.ParseUserRole(name)
	if err != nil {
		return def
	}
	return role
}
