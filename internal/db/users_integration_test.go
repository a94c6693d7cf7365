//go:build integration

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestIntegration_CreateAndGetUser(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	created, err := db.CreateUser(ctx, "Jane Doe", "jane@test.example.com", "bcrypt-hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}

	byEmail, err := db.GetUserByEmail(ctx, "jane@test.example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != created.ID {
		t.Errorf("GetUserByEmail mismatch: %+v", byEmail)
	}
	if byEmail.PasswordHash != "bcrypt-hash" {
		t.Error("Expected stored password hash")
	}

	byID, err := db.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID == nil || byID.Email != "jane@test.example.com" {
		t.Errorf("GetUserByID mismatch: %+v", byID)
	}
}

func TestIntegration_CreateUser_DuplicateEmail(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	_, err := db.CreateUser(ctx, "Jane Doe", "twice@test.example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err = db.CreateUser(ctx, "Someone Else", "twice@test.example.com", "other-hash")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}
}

func TestIntegration_GetUser_Unknown(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := db.GetUserByEmail(ctx, "nobody@test.example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user != nil {
		t.Error("Expected nil for unknown email")
	}

	user, err = db.GetUserByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if user != nil {
		t.Error("Expected nil for unknown ID")
	}
}
