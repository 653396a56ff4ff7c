package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	infraRepo "github.com/sangkips/autoshop-api/internal/infrastructure/repository"
	"github.com/sangkips/autoshop-api/pkg/identity"
)

type recordingRoles struct {
	calls map[string]string
	err   error
}

func (r *recordingRoles) UpdateRole(_ context.Context, externalID, role string) error {
	if r.calls == nil {
		r.calls = map[string]string{}
	}
	r.calls[externalID] = role
	return r.err
}

func userEvent(t *testing.T, typ string, data map[string]any) *identity.Event {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	return &identity.Event{Type: typ, Data: raw}
}

func TestSyncIdentityEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := infraRepo.NewUserRepository(env.db)
	svc := NewUserService(users, nil, env.audit)

	created := userEvent(t, identity.EventUserCreated, map[string]any{
		"id":                       "user_2x",
		"first_name":               "Kim",
		"last_name":                "Tran",
		"primary_email_address_id": "em_2",
		"email_addresses": []map[string]string{
			{"id": "em_1", "email_address": "old@shop.test"},
			{"id": "em_2", "email_address": "Kim@Shop.test"},
		},
		"phone_numbers":   []map[string]string{{"phone_number": "+15550100"}},
		"public_metadata": map[string]string{"role": "MANAGER"},
	})
	if err := svc.SyncIdentityEvent(ctx, created); err != nil {
		t.Fatalf("created: %v", err)
	}
	kim, _ := users.GetByExternalID(ctx, "user_2x")
	if kim == nil || kim.Email != "kim@shop.test" || kim.Role != enum.UserRoleManager || kim.Phone == nil || !kim.IsActive {
		t.Fatalf("mirrored user = %+v", kim)
	}

	updated := userEvent(t, identity.EventUserUpdated, map[string]any{
		"id":              "user_2x",
		"first_name":      "Kimberly",
		"email_addresses": []map[string]string{{"id": "em_2", "email_address": "kim@shop.test"}},
	})
	if err := svc.SyncIdentityEvent(ctx, updated); err != nil {
		t.Fatalf("updated: %v", err)
	}
	kim, _ = users.GetByExternalID(ctx, "user_2x")
	if kim.FirstName != "Kimberly" || kim.Role != enum.UserRoleManager || kim.Phone != nil {
		t.Errorf("after update = %+v", kim)
	}

	if err := svc.SyncIdentityEvent(ctx, userEvent(t, "session.created", map[string]any{"id": "sess_1"})); err != nil {
		t.Errorf("unknown event: %v", err)
	}

	deleted := userEvent(t, identity.EventUserDeleted, map[string]any{"id": "user_2x", "deleted": true})
	if err := svc.SyncIdentityEvent(ctx, deleted); err != nil {
		t.Fatalf("deleted: %v", err)
	}
	if u, _ := users.GetByExternalID(ctx, "user_2x"); u != nil {
		t.Errorf("user still present after delete event")
	}
	if n := env.count(t, &entity.AuditLog{}, "entity_type = ? AND entity_id = ?", AuditUser, kim.ID.String()); n != 3 {
		t.Errorf("user audits = %d, want 3", n)
	}

	noEmail := userEvent(t, identity.EventUserCreated, map[string]any{"id": "user_3"})
	err := svc.SyncIdentityEvent(ctx, noEmail)
	expectStatus(t, err, http.StatusBadRequest)
}

func TestUserAdministration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := infraRepo.NewUserRepository(env.db)
	roles := &recordingRoles{err: errors.New("provider down")}
	svc := NewUserService(users, roles, env.audit)

	ext := "user_9"
	staff := &entity.User{Email: "tech@shop.test", ExternalID: &ext, Role: enum.UserRoleStaff, IsActive: true}
	if err := users.Create(ctx, staff); err != nil {
		t.Fatal(err)
	}

	got, err := svc.UpdateRole(ctx, env.actor, staff.ID, enum.UserRoleManager)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if got.Role != enum.UserRoleManager || roles.calls["user_9"] != "MANAGER" {
		t.Errorf("role = %s, pushed = %v", got.Role, roles.calls)
	}

	_, err = svc.UpdateRole(ctx, env.actor, env.actor.UserID, enum.UserRoleStaff)
	expectStatus(t, err, http.StatusBadRequest)
	_, err = svc.UpdateStatus(ctx, env.actor, env.actor.UserID, false)
	expectStatus(t, err, http.StatusBadRequest)

	got, err = svc.UpdateStatus(ctx, env.actor, staff.ID, false)
	if err != nil || got.IsActive {
		t.Fatalf("UpdateStatus = %+v, %v", got, err)
	}

	managers := enum.UserRoleManager
	page, err := svc.ListUsers(ctx, nil, &managers)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != staff.ID {
		t.Errorf("managers = %+v", page.Items)
	}

	if err := svc.DeleteUser(ctx, env.actor, staff.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	_, err = svc.GetUser(ctx, staff.ID)
	expectStatus(t, err, http.StatusNotFound)
}
