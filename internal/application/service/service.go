package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/authz"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	"github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/apperror"
)

// Actor is the authenticated caller on whose behalf a service acts.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   enum.UserRole
	IP     string
}

// Can reports whether the actor holds perm.
func (a Actor) Can(perm authz.Permission) bool {
	return authz.Can(a.Role, perm)
}

func (a Actor) userID() *uuid.UUID {
	if a.UserID == uuid.Nil {
		return nil
	}
	id := a.UserID
	return &id
}

// SystemActor is used for work not triggered by a user, such as webhooks.
var SystemActor = Actor{Role: enum.UserRoleAdmin}

// conflictOr turns a unique violation into a 409 with msg and passes every
// other error through.
func conflictOr(err error, msg string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperror.NewConflictError(msg)
	}
	return err
}

// Clock is swapped in tests.
var now = time.Now
