package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"breakage-exchange-api/models"

	"gorm.io/gorm"
)

var (
	// ErrAlreadyDecided means the submission left pending before this
	// decision ran. Two admins racing on the same row is expected; the
	// loser gets this and the caller surfaces it as a conflict, not a
	// failure.
	ErrAlreadyDecided = errors.New("submission already decided")

	// ErrCommentRequired is returned when a rejection carries no comment.
	ErrCommentRequired = errors.New("rejection requires a comment")
)

// DecisionService applies the pending -> approved/rejected transition.
type DecisionService struct {
	db *gorm.DB
}

func NewDecisionService(db *gorm.DB) *DecisionService {
	return &DecisionService{db: db}
}

// Decide moves a pending submission to the given terminal status and appends
// the audit entry in the same transaction. The status guard lives in the
// WHERE clause, so concurrent decisions cannot both win: the second UPDATE
// matches zero rows and reports ErrAlreadyDecided.
func (s *DecisionService) Decide(actorID, submissionID int, status string, comment string) (*models.Submission, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, fmt.Errorf("invalid decision status: %s", status)
	}

	comment = strings.TrimSpace(comment)
	if status == models.StatusRejected && comment == "" {
		return nil, ErrCommentRequired
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"decided_by": actorID,
		"decided_at": now,
		"update_at":  now,
	}
	if comment != "" {
		updates["comment"] = comment
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Submission{}).
			Where("submission_id = ? AND status = ? AND delete_at IS NULL", submissionID, models.StatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the row is gone or someone decided first.
			var count int64
			if err := tx.Model(&models.Submission{}).
				Where("submission_id = ? AND delete_at IS NULL", submissionID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrAlreadyDecided
		}

		action := models.ActionSubmissionApprove
		if status == models.StatusRejected {
			action = models.ActionSubmissionReject
		}
		entry := models.AuditLog{
			ActorID:   actorID,
			Action:    action,
			Entity:    "submission",
			EntityID:  submissionID,
			CreatedAt: now,
		}
		if comment != "" {
			entry.Detail = &comment
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	var out models.Submission
	if err := s.db.Preload("User").
		Where("submission_id = ?", submissionID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
