package services

import (
	"errors"
	"fmt"
	"time"

	"breakage-exchange-api/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrNumberConflict means a unique submission number could not be allocated
// even after retries. Callers surface it as a conflict, not a failure.
var ErrNumberConflict = errors.New("could not allocate a unique submission number")

// mysqlDuplicateEntry is the server error number for a unique-index violation.
const mysqlDuplicateEntry = 1062

// IsDuplicateKeyError reports whether err is a unique-index violation.
func IsDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// SubmissionService owns the submission lifecycle operations that must stay
// atomic: numbered creation and the cascade delete.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// numberAttempts caps how often a colliding reference number is retried.
const numberAttempts = 3

// nextNumber derives a reference from the same-day counter.
// Format: BRK-YYYYMMDD-XXXX
func (s *SubmissionService) nextNumber(seq int) (string, error) {
	var count int64
	if err := s.db.Model(&models.Submission{}).
		Where("DATE(create_at) = DATE(NOW())").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("BRK-%s-%04d", time.Now().Format("20060102"), count+int64(seq)), nil
}

// Create inserts the submission and its items in one transaction. The
// reference number comes from a same-day counter, so two concurrent creates
// can collide on the unique number index; a collision is retried with the
// next sequence value instead of failing the request.
func (s *SubmissionService) Create(userID int, title string, items []models.Item) (*models.Submission, error) {
	for attempt := 1; attempt <= numberAttempts; attempt++ {
		number, err := s.nextNumber(attempt)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		submission := models.Submission{
			UserID:   userID,
			Number:   number,
			Title:    title,
			Status:   models.StatusPending,
			CreateAt: &now,
			UpdateAt: &now,
		}

		// Fresh item rows per attempt; a rolled-back insert may have
		// assigned primary keys already.
		rows := make([]models.Item, len(items))
		copy(rows, items)

		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&submission).Error; err != nil {
				return err
			}
			for i := range rows {
				rows[i].ItemID = 0
				rows[i].SubmissionID = submission.SubmissionID
				rows[i].CreateAt = &now
				rows[i].UpdateAt = &now
				if err := tx.Create(&rows[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return &submission, nil
		}
		if !IsDuplicateKeyError(err) {
			return nil, err
		}
	}
	return nil, ErrNumberConflict
}

// Delete removes a submission together with its items and photo rows in one
// transaction, so an item can never outlive its parent. The submission row
// itself is soft deleted. Returns the stored photo paths so the caller can
// clear the files once the rows are gone.
func (s *SubmissionService) Delete(submissionID int) ([]string, error) {
	var photos []models.Photo
	if err := s.db.
		Where("item_id IN (?)",
			s.db.Model(&models.Item{}).Select("item_id").Where("submission_id = ?", submissionID)).
		Find(&photos).Error; err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(photos))
	for _, photo := range photos {
		paths = append(paths, photo.StoredPath)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id IN (?)",
			tx.Model(&models.Item{}).Select("item_id").Where("submission_id = ?", submissionID),
		).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", submissionID).
			Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Submission{}).
			Where("submission_id = ?", submissionID).
			Update("delete_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
