package services

import (
	"log"
	"time"

	"breakage-exchange-api/models"

	"gorm.io/gorm"
)

// AuditService appends entries to the audit trail. Entries are never
// updated or removed.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one entry. detail may be empty.
func (s *AuditService) Record(actorID int, action, entity string, entityID int, detail string) error {
	entry := models.AuditLog{
		ActorID:   actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		CreatedAt: time.Now(),
	}
	if detail != "" {
		entry.Detail = &detail
	}
	return s.db.Create(&entry).Error
}

// RecordOrLog is for call sites where an audit failure must not fail the
// user action; the failure is logged instead.
func (s *AuditService) RecordOrLog(actorID int, action, entity string, entityID int, detail string) {
	if err := s.Record(actorID, action, entity, entityID, detail); err != nil {
		log.Printf("audit: failed to record %s %s/%d: %v", action, entity, entityID, err)
	}
}
