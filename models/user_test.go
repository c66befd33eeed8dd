package models

import "testing"

func TestUserRoleAndStatusHelpers(t *testing.T) {
	admin := User{RoleID: RoleAdmin, Status: UserStatusActive}
	if !admin.IsAdmin() || !admin.IsActive() {
		t.Fatal("admin helpers disagree with role/status fields")
	}

	regular := User{RoleID: RoleUser, Status: UserStatusInactive}
	if regular.IsAdmin() {
		t.Fatal("regular user reported as admin")
	}
	if regular.IsActive() {
		t.Fatal("inactive user reported as active")
	}
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Owner"}
	if u.FullName() != "Ada Owner" {
		t.Fatalf("FullName = %q", u.FullName())
	}
}

func TestSubmissionIsPending(t *testing.T) {
	s := Submission{Status: StatusPending}
	if !s.IsPending() {
		t.Fatal("pending submission not reported pending")
	}
	for _, status := range []string{StatusApproved, StatusRejected} {
		s.Status = status
		if s.IsPending() {
			t.Fatalf("%s submission reported pending", status)
		}
	}
}
