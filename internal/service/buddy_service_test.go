package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/roamly/travel-buddy-backend/internal/apperr"
	"github.com/roamly/travel-buddy-backend/internal/model"
	"github.com/roamly/travel-buddy-backend/internal/repository"
)

func newTestUser(t *testing.T, store repository.Store, name string) model.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), repository.CreateUserParams{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func newTestTrip(t *testing.T, store repository.Store, ownerID uuid.UUID, destination string, budget float64) model.Trip {
	t.Helper()
	trips := NewTripService(store, nil)
	trip, err := trips.Create(context.Background(), ownerID, model.CreateTripRequest{
		Destination: destination,
		StartDate:   "2026-07-01",
		EndDate:     "2026-07-10",
		Budget:      budget,
		Type:        "LEISURE",
		Description: "a trip to " + destination,
		Activities:  []string{"hiking"},
	}, nil)
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func TestBuddyService_Create(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewBuddyService(store)
	ctx := context.Background()

	owner := newTestUser(t, store, "owner")
	buddy := newTestUser(t, store, "buddy")
	trip := newTestTrip(t, store, owner.ID, "Paris", 500)

	t.Run("missing trip is not found", func(t *testing.T) {
		_, err := svc.Create(ctx, uuid.New(), buddy.ID, nil)
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("owner cannot request own trip", func(t *testing.T) {
		_, err := svc.Create(ctx, trip.ID, owner.ID, nil)
		if apperr.KindOf(err) != apperr.KindConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("first request is pending", func(t *testing.T) {
		msg := "let's go"
		request, err := svc.Create(ctx, trip.ID, buddy.ID, &msg)
		if err != nil {
			t.Fatalf("create request: %v", err)
		}
		if request.Status != model.BuddyStatusPending {
			t.Errorf("new request has status %s, expected PENDING", request.Status)
		}
		if request.Message == nil || *request.Message != "let's go" {
			t.Errorf("message not stored: %v", request.Message)
		}
	})

	t.Run("second request for same trip conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, trip.ID, buddy.ID, nil)
		if apperr.KindOf(err) != apperr.KindConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})
}

func TestBuddyService_Respond(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewBuddyService(store)
	ctx := context.Background()

	owner := newTestUser(t, store, "owner")
	buddy := newTestUser(t, store, "buddy")
	stranger := newTestUser(t, store, "stranger")
	trip := newTestTrip(t, store, owner.ID, "Lisbon", 300)

	if _, err := svc.Create(ctx, trip.ID, buddy.ID, nil); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	t.Run("non-owner sees not found", func(t *testing.T) {
		_, err := svc.Respond(ctx, trip.ID, buddy.ID, stranger.ID, model.BuddyStatusApproved)
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("foreign trip must look missing, got %v", err)
		}
	})

	t.Run("missing pair is not found", func(t *testing.T) {
		_, err := svc.Respond(ctx, trip.ID, stranger.ID, owner.ID, model.BuddyStatusApproved)
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("owner approves", func(t *testing.T) {
		request, err := svc.Respond(ctx, trip.ID, buddy.ID, owner.ID, model.BuddyStatusApproved)
		if err != nil {
			t.Fatalf("respond: %v", err)
		}
		if request.Status != model.BuddyStatusApproved {
			t.Errorf("status = %s, expected APPROVED", request.Status)
		}
	})

	t.Run("reapplying the same terminal status succeeds", func(t *testing.T) {
		request, err := svc.Respond(ctx, trip.ID, buddy.ID, owner.ID, model.BuddyStatusApproved)
		if err != nil {
			t.Fatalf("idempotent respond: %v", err)
		}
		if request.Status != model.BuddyStatusApproved {
			t.Errorf("status = %s, expected APPROVED", request.Status)
		}
	})
}

func TestBuddyService_ListCandidates(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewBuddyService(store)
	ctx := context.Background()

	owner := newTestUser(t, store, "owner")
	buddy := newTestUser(t, store, "buddy")
	stranger := newTestUser(t, store, "stranger")
	trip := newTestTrip(t, store, owner.ID, "Kyoto", 900)

	msg := "count me in"
	if _, err := svc.Create(ctx, trip.ID, buddy.ID, &msg); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	t.Run("non-owner sees not found", func(t *testing.T) {
		_, err := svc.ListCandidates(ctx, trip.ID, stranger.ID)
		if apperr.KindOf(err) != apperr.KindNotFound {
			t.Errorf("foreign trip must look missing, got %v", err)
		}
	})

	t.Run("owner sees requester projection", func(t *testing.T) {
		requests, err := svc.ListCandidates(ctx, trip.ID, owner.ID)
		if err != nil {
			t.Fatalf("list candidates: %v", err)
		}
		if len(requests) != 1 {
			t.Fatalf("expected 1 request, got %d", len(requests))
		}
		if requests[0].Requester.Email != "buddy@example.com" {
			t.Errorf("requester projection missing, got %+v", requests[0].Requester)
		}
		if requests[0].Request.Message == nil || *requests[0].Request.Message != "count me in" {
			t.Errorf("message missing on listed request")
		}
	})
}
