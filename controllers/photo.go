package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"breakage-exchange-api/config"
	"breakage-exchange-api/models"
	"breakage-exchange-api/services"
	"breakage-exchange-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxPhotoSize limits accepted uploads to 10 MB.
const MaxPhotoSize = 10 << 20

// UploadPhoto attaches a photo to an item of a pending submission. The image
// is sniffed, downscaled and re-encoded before it is written to disk.
func UploadPhoto(c *gin.Context) {
	submission, ok := loadSubmissionForItemEdit(c)
	if !ok {
		return
	}

	var item models.Item
	if err := config.DB.Where("item_id = ? AND submission_id = ?", c.Param("item_id"), submission.SubmissionID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}
	if file.Size > MaxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo exceeds the 10MB limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	processed, err := utils.ProcessImage(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storedName := uuid.New().String() + ".jpg"
	storedPath := filepath.Join(config.UploadDir(), storedName)

	if err := os.WriteFile(storedPath, processed.Data, 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return
	}

	// Next position within the item
	var maxPosition int
	config.DB.Model(&models.Photo{}).
		Where("item_id = ?", item.ItemID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPosition)

	photo := models.Photo{
		ItemID:       item.ItemID,
		Position:     maxPosition + 1,
		OriginalName: file.Filename,
		StoredPath:   storedPath,
		MimeType:     processed.MIME,
		FileSize:     int64(len(processed.Data)),
		CreateAt:     time.Now(),
	}

	if err := config.DB.Create(&photo).Error; err != nil {
		_ = os.Remove(storedPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Photo uploaded successfully",
		"photo":   photo,
	})
}

// loadPhotoWithOwner resolves a photo and its owning submission.
func loadPhotoWithOwner(photoID string) (*models.Photo, *models.Submission, error) {
	var photo models.Photo
	if err := config.DB.Where("photo_id = ?", photoID).First(&photo).Error; err != nil {
		return nil, nil, err
	}

	var item models.Item
	if err := config.DB.Where("item_id = ?", photo.ItemID).First(&item).Error; err != nil {
		return nil, nil, err
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", item.SubmissionID).
		First(&submission).Error; err != nil {
		return nil, nil, err
	}

	return &photo, &submission, nil
}

// GetPhotoFile serves the stored photo bytes to the owner or an admin.
func GetPhotoFile(c *gin.Context) {
	photo, submission, err := loadPhotoWithOwner(c.Param("photo_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	actor := currentActor(c)
	if !services.CanReadItem(actor, submission.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if _, err := os.Stat(photo.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo file is missing from storage"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", photo.OriginalName))
	c.File(photo.StoredPath)
}

// DeletePhoto removes a photo from an item of a pending submission.
func DeletePhoto(c *gin.Context) {
	photo, submission, err := loadPhotoWithOwner(c.Param("photo_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}

	actor := currentActor(c)
	if !services.CanEditItems(actor, submission.UserID, submission.Status) {
		if submission.UserID == actor.UserID && !submission.IsPending() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify photos of a decided submission"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := config.DB.Delete(&models.Photo{}, photo.PhotoID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		return
	}

	_ = os.Remove(photo.StoredPath)

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}
