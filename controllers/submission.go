package controllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"breakage-exchange-api/config"
	"breakage-exchange-api/models"
	"breakage-exchange-api/services"
	"breakage-exchange-api/utils"

	"github.com/gin-gonic/gin"
)

type itemRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reason    string `json:"reason" binding:"required"`
	Operation string `json:"operation" binding:"required,oneof=breakage exchange"`
}

// CreateSubmission creates a new report with at least one item.
func CreateSubmission(c *gin.Context) {
	type CreateSubmissionRequest struct {
		Title string        `json:"title" binding:"required"`
		Items []itemRequest `json:"items" binding:"required,min=1,dive"`
	}

	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := currentActor(c)
	if !services.CanCreateSubmission(actor, actor.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	// Every referenced product must exist
	for _, item := range req.Items {
		var product models.Product
		if err := config.DB.Where("product_id = ? AND delete_at IS NULL", item.ProductID).
			First(&product).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product reference"})
			return
		}
	}

	items := make([]models.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Reason:    utils.SanitizeInput(item.Reason),
			Operation: item.Operation,
		})
	}

	submission, err := services.NewSubmissionService(config.DB).
		Create(actor.UserID, utils.SanitizeInput(req.Title), items)
	if err != nil {
		if errors.Is(err, services.ErrNumberConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Submission number conflict, please retry"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionSubmissionCreate, "submission", submission.SubmissionID, submission.Number)

	// Load relations
	config.DB.Preload("User").Preload("Items").Preload("Items.Product").
		First(submission, submission.SubmissionID)

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Submission created successfully",
		"submission": submission,
	})
}

// GetSubmissions returns submissions visible to the caller: admins see all,
// users see their own.
func GetSubmissions(c *gin.Context) {
	actor := currentActor(c)

	var submissions []models.Submission
	query := config.DB.Preload("User").Preload("Items").
		Preload("Items.Product").Preload("Items.Photos").
		Where("submissions.delete_at IS NULL")

	if !actor.IsAdmin() {
		query = query.Where("user_id = ?", actor.UserID)
	} else if user := c.Query("user_id"); user != "" {
		query = query.Where("user_id = ?", user)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("create_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("create_at < DATE_ADD(?, INTERVAL 1 DAY)", to)
	}
	if product := c.Query("product_id"); product != "" {
		query = query.Where("submission_id IN (?)",
			config.DB.Model(&models.Item{}).Select("submission_id").Where("product_id = ?", product))
	}

	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := query.Model(&models.Submission{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count submissions"})
		return
	}

	if err := query.Order("create_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

// GetSubmission returns a single submission if the caller may read it.
func GetSubmission(c *gin.Context) {
	id := c.Param("id")
	actor := currentActor(c)

	var submission models.Submission
	if err := config.DB.Preload("User").Preload("Decider").
		Preload("Items").Preload("Items.Product").Preload("Items.Photos").
		Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if !services.CanReadSubmission(actor, submission.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// UpdateSubmission edits the title of a pending submission.
func UpdateSubmission(c *gin.Context) {
	id := c.Param("id")
	actor := currentActor(c)

	type UpdateSubmissionRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if !services.CanUpdateSubmission(actor, submission.UserID, submission.Status) {
		if submission.UserID == actor.UserID && !submission.IsPending() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot edit approved or rejected submissions"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	now := time.Now()
	submission.Title = utils.SanitizeInput(req.Title)
	submission.UpdateAt = &now

	if err := config.DB.Save(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}

	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionSubmissionUpdate, "submission", submission.SubmissionID, "")

	c.JSON(http.StatusOK, gin.H{
		"message":    "Submission updated successfully",
		"submission": submission,
	})
}

// DeleteSubmission soft deletes a pending submission and removes its items,
// photo rows and stored photo files.
func DeleteSubmission(c *gin.Context) {
	id := c.Param("id")
	actor := currentActor(c)

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if !services.CanDeleteSubmission(actor, submission.UserID, submission.Status) {
		if submission.UserID == actor.UserID && !submission.IsPending() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete approved or rejected submissions"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	storedPaths, err := services.NewSubmissionService(config.DB).Delete(submission.SubmissionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete submission"})
		return
	}

	// Stored files go last; a leftover file is harmless, a dangling row is not.
	for _, path := range storedPaths {
		_ = os.Remove(path)
	}

	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionSubmissionDelete, "submission", submission.SubmissionID, submission.Number)

	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted successfully"})
}
