package services

import (
	"testing"

	"breakage-exchange-api/models"
)

var (
	owner    = Actor{UserID: 3, RoleID: models.RoleUser}
	stranger = Actor{UserID: 4, RoleID: models.RoleUser}
	admin    = Actor{UserID: 9, RoleID: models.RoleAdmin}
)

func TestCanReadSubmission(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		ownerID int
		want    bool
	}{
		{"owner reads own", owner, 3, true},
		{"admin reads any", admin, 3, true},
		{"stranger denied", stranger, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReadSubmission(tt.actor, tt.ownerID); got != tt.want {
				t.Fatalf("CanReadSubmission(%+v, %d) = %v, want %v", tt.actor, tt.ownerID, got, tt.want)
			}
		})
	}
}

func TestCanCreateSubmissionOnlyForSelf(t *testing.T) {
	if !CanCreateSubmission(owner, 3) {
		t.Fatal("owner should create own submission")
	}
	if CanCreateSubmission(owner, 4) {
		t.Fatal("creating a row owned by someone else must be denied")
	}
	// Admins get no exemption from the ownership rule on insert
	if CanCreateSubmission(admin, 3) {
		t.Fatal("admin must not create submissions owned by others")
	}
}

func TestCanUpdateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		actor   Actor
		ownerID int
		status  string
		want    bool
	}{
		{"owner edits pending", owner, 3, models.StatusPending, true},
		{"owner blocked after approval", owner, 3, models.StatusApproved, false},
		{"owner blocked after rejection", owner, 3, models.StatusRejected, false},
		{"admin edits any status", admin, 3, models.StatusRejected, true},
		{"stranger denied even pending", stranger, 3, models.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanUpdateSubmission(tt.actor, tt.ownerID, tt.status); got != tt.want {
				t.Fatalf("CanUpdateSubmission = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanEditItems(t *testing.T) {
	if !CanEditItems(owner, 3, models.StatusPending) {
		t.Fatal("owner should edit items of own pending submission")
	}
	if CanEditItems(owner, 3, models.StatusRejected) {
		t.Fatal("terminal submissions are frozen for item edits")
	}
	if CanEditItems(stranger, 3, models.StatusPending) {
		t.Fatal("non-owner must not edit items")
	}
	// Admins decide, they do not edit contents
	if CanEditItems(admin, 3, models.StatusPending) {
		t.Fatal("admin item edits are not part of the rule set")
	}
}

func TestProductRules(t *testing.T) {
	if !CanReadProduct(owner) || !CanReadProduct(admin) {
		t.Fatal("any authenticated actor reads products")
	}
	if CanReadProduct(Actor{}) {
		t.Fatal("unauthenticated actor must not read products")
	}
	if CanWriteProduct(owner) {
		t.Fatal("product writes are admin only")
	}
	if !CanWriteProduct(admin) {
		t.Fatal("admin should write products")
	}
}

func TestCanDecide(t *testing.T) {
	if CanDecide(owner) || CanDecide(stranger) {
		t.Fatal("only admins decide submissions")
	}
	if !CanDecide(admin) {
		t.Fatal("admin should decide submissions")
	}
}
