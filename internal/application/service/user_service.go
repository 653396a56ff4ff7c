package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
	"github.com/sangkips/autoshop-api/pkg/identity"
	"github.com/sangkips/autoshop-api/pkg/pagination"
)

// RoleSyncer pushes role changes to the identity provider.
type RoleSyncer interface {
	UpdateRole(ctx context.Context, externalID, role string) error
}

// UserService handles user management operations
type UserService struct {
	userRepo repository.UserRepository
	roles    RoleSyncer
	audit    AuditLogger
}

// NewUserService creates a new user service. roles may be nil.
func NewUserService(userRepo repository.UserRepository, roles RoleSyncer, audit AuditLogger) *UserService {
	s := &UserService{userRepo: userRepo, audit: auditOrDiscard(audit)}
	if c, ok := roles.(*identity.AdminClient); !ok || c != nil {
		s.roles = roles
	}
	return s
}

// ListUsers returns a paginated list of users, optionally filtered by role.
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, role *enum.UserRole) (*pagination.PaginatedResult[entity.User], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()
	users, total, err := s.userRepo.List(ctx, params, role)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateRole changes a user's role. The new role is written to the identity
// provider's public metadata when the user is mirrored from it; a failure
// there is logged and does not undo the local change.
func (s *UserService) UpdateRole(ctx context.Context, actor Actor, userID uuid.UUID, role enum.UserRole) (*entity.User, error) {
	if !role.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid role")
	}
	if userID == actor.UserID {
		return nil, apperror.NewBadRequestError("You cannot change your own role")
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	previous := user.Role
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if user.ExternalID != nil && s.roles != nil {
		if err := s.roles.UpdateRole(ctx, *user.ExternalID, role.String()); err != nil {
			log.Printf("[Users] failed to push role for %s to identity provider: %v", user.Email, err)
		}
	}

	s.audit.Record(ctx, actor.audit(enum.AuditActionUpdate, AuditUser, user.ID, map[string]any{
		"role": map[string]string{"from": previous.String(), "to": role.String()},
	}))
	return user, nil
}

// UpdateStatus activates or deactivates a user.
func (s *UserService) UpdateStatus(ctx context.Context, actor Actor, userID uuid.UUID, active bool) (*entity.User, error) {
	if userID == actor.UserID && !active {
		return nil, apperror.NewBadRequestError("You cannot deactivate your own account")
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}
	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionStatusChange, AuditUser, user.ID, map[string]bool{"is_active": active}))
	return user, nil
}

// DeleteUser soft-deletes a user.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error {
	if userID == actor.UserID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.audit.Record(ctx, actor.audit(enum.AuditActionDelete, AuditUser, userID, nil))
	return nil
}

// SyncIdentityEvent mirrors a user.* webhook into the users table. Unknown
// event types are ignored.
func (s *UserService) SyncIdentityEvent(ctx context.Context, ev *identity.Event) error {
	switch ev.Type {
	case identity.EventUserCreated, identity.EventUserUpdated, identity.EventUserDeleted:
	default:
		log.Printf("[Users] ignoring identity event %q", ev.Type)
		return nil
	}

	data, err := ev.User()
	if err != nil {
		return apperror.NewBadRequestError(err.Error())
	}

	existing, err := s.userRepo.GetByExternalID(ctx, data.ID)
	if err != nil {
		return err
	}

	if ev.Type == identity.EventUserDeleted || data.Deleted {
		if existing == nil {
			return nil
		}
		if err := s.userRepo.Delete(ctx, existing.ID); err != nil {
			return err
		}
		log.Printf("[Users] removed %s (deleted at identity provider)", existing.Email)
		s.audit.Record(ctx, SystemActor.audit(enum.AuditActionDelete, AuditUser, existing.ID, nil))
		return nil
	}

	emailPtr := normalizeEmail(ptrTo(data.PrimaryEmail()))
	if emailPtr == nil {
		return apperror.NewBadRequestError("Identity user has no email address")
	}
	email := *emailPtr
	if existing == nil {
		// Link a pre-existing local account with the same email.
		if existing, err = s.userRepo.GetByEmail(ctx, email); err != nil {
			return err
		}
	}

	if existing == nil {
		externalID := data.ID
		user := &entity.User{
			ExternalID: &externalID,
			Email:      email,
			FirstName:  strings.TrimSpace(data.FirstName),
			LastName:   strings.TrimSpace(data.LastName),
			Phone:      blankToNil(ptrTo(data.Phone())),
			Role:       roleOrDefault(data.PublicMetadata.Role, enum.UserRoleStaff),
			IsActive:   true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return conflictOr(err, "A user with this email already exists")
		}
		log.Printf("[Users] mirrored %s from identity provider as %s", user.Email, user.Role)
		s.audit.Record(ctx, SystemActor.audit(enum.AuditActionCreate, AuditUser, user.ID, user))
		return nil
	}

	externalID := data.ID
	existing.ExternalID = &externalID
	existing.Email = email
	existing.FirstName = strings.TrimSpace(data.FirstName)
	existing.LastName = strings.TrimSpace(data.LastName)
	existing.Phone = blankToNil(ptrTo(data.Phone()))
	existing.Role = roleOrDefault(data.PublicMetadata.Role, existing.Role)
	if err := s.userRepo.Update(ctx, existing); err != nil {
		return conflictOr(err, "A user with this email already exists")
	}
	s.audit.Record(ctx, SystemActor.audit(enum.AuditActionUpdate, AuditUser, existing.ID, map[string]any{
		"email": existing.Email,
		"role":  existing.Role.String(),
	}))
	return nil
}

func ptrTo(s string) *string { return &s }
