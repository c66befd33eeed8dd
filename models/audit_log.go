package models

import "time"

// Audit actions recorded in the append-only trail.
const (
	ActionSubmissionCreate  = "submission.create"
	ActionSubmissionUpdate  = "submission.update"
	ActionSubmissionDelete  = "submission.delete"
	ActionSubmissionApprove = "submission.approve"
	ActionSubmissionReject  = "submission.reject"
	ActionProductCreate     = "product.create"
	ActionProductUpdate     = "product.update"
	ActionProductDelete     = "product.delete"
	ActionUserCreate        = "user.create"
	ActionUserUpdate        = "user.update"
	ActionUserDelete        = "user.delete"
	ActionUserLogin         = "user.login"
)

// AuditLog rows are append-only; nothing in the application updates or
// deletes them.
type AuditLog struct {
	LogID     int       `gorm:"primaryKey;column:log_id" json:"log_id"`
	ActorID   int       `gorm:"column:actor_id" json:"actor_id"`
	Action    string    `gorm:"column:action" json:"action"`
	Entity    string    `gorm:"column:entity" json:"entity"`
	EntityID  int       `gorm:"column:entity_id" json:"entity_id"`
	Detail    *string   `gorm:"column:detail" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
