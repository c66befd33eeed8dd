package services

import "breakage-exchange-api/models"

// Actor is the identity a request acts as. It carries exactly what the
// policy rules need: who the caller is and what role they hold.
type Actor struct {
	UserID int
	RoleID int
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.RoleID == models.RoleAdmin
}

// The functions below are the row-access rules for submissions, items and
// products. They are pure: no database access, no caching, evaluated fresh
// on every request so role or status changes take effect immediately.

// CanReadSubmission allows the owner or an admin.
func CanReadSubmission(a Actor, ownerID int) bool {
	return a.IsAdmin() || a.UserID == ownerID
}

// CanCreateSubmission only allows creating rows owned by the caller.
func CanCreateSubmission(a Actor, ownerID int) bool {
	return a.UserID == ownerID
}

// CanUpdateSubmission allows admins unconditionally, and the owner only
// while the submission is still pending.
func CanUpdateSubmission(a Actor, ownerID int, status string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID == ownerID && status == models.StatusPending
}

// CanDeleteSubmission follows the update rule: a decided submission is
// frozen for its owner.
func CanDeleteSubmission(a Actor, ownerID int, status string) bool {
	return CanUpdateSubmission(a, ownerID, status)
}

// CanEditItems covers insert, update and delete of items and their photos.
// Only the owner may touch items, and only while the parent is pending.
// Admins decide submissions; they do not edit their contents.
func CanEditItems(a Actor, ownerID int, status string) bool {
	return a.UserID == ownerID && status == models.StatusPending
}

// CanReadItem allows whoever may read the parent submission.
func CanReadItem(a Actor, ownerID int) bool {
	return CanReadSubmission(a, ownerID)
}

// CanReadProduct allows any authenticated caller.
func CanReadProduct(a Actor) bool {
	return a.UserID != 0
}

// CanWriteProduct is admin only.
func CanWriteProduct(a Actor) bool {
	return a.IsAdmin()
}

// CanDecide gates the approve/reject transition.
func CanDecide(a Actor) bool {
	return a.IsAdmin()
}
