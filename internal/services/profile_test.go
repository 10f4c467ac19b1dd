package services

import (
	"context"
	"errors"
	"testing"

	"healthnav-service/internal/domain"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestProfileUpdateAppliesPatch(t *testing.T) {
	repo := newMemUserRepo()
	u := seedUser(t, repo)
	svc := NewProfileService(repo)
	ctx := context.Background()

	updated, err := svc.Update(ctx, u.ID, ProfilePatch{
		Name:      strPtr("Ayesha K."),
		IsPremium: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Ayesha K." || !updated.IsPremium {
		t.Fatalf("patch not applied: %+v", updated)
	}
	// Untouched fields survive.
	if updated.Email != u.Email || updated.CNIC != u.CNIC {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}

	stored, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Name != "Ayesha K." {
		t.Fatalf("patch not persisted: %+v", stored)
	}
}

func TestProfileUpdateRejectsEmptyRequiredFields(t *testing.T) {
	repo := newMemUserRepo()
	u := seedUser(t, repo)
	svc := NewProfileService(repo)
	ctx := context.Background()

	var verr *domain.ValidationError
	if _, err := svc.Update(ctx, u.ID, ProfilePatch{Name: strPtr("  ")}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := svc.Update(ctx, u.ID, ProfilePatch{Email: strPtr("")}); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for blank email, got %v", err)
	}
}

func TestProfileGetUnknownUser(t *testing.T) {
	svc := NewProfileService(newMemUserRepo())

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
