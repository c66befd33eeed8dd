package controllers

import (
	"net/http"
	"os"
	"time"

	"breakage-exchange-api/config"
	"breakage-exchange-api/models"
	"breakage-exchange-api/services"
	"breakage-exchange-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadSubmissionForItemEdit fetches the parent submission and enforces the
// item-edit rule (owner + pending). Writes the error response itself.
func loadSubmissionForItemEdit(c *gin.Context) (*models.Submission, bool) {
	id := c.Param("id")
	actor := currentActor(c)

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return nil, false
	}

	if !services.CanEditItems(actor, submission.UserID, submission.Status) {
		if submission.UserID == actor.UserID && !submission.IsPending() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify items of a decided submission"})
			return nil, false
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return nil, false
	}

	return &submission, true
}

// AddItem appends an item to a pending submission.
func AddItem(c *gin.Context) {
	submission, ok := loadSubmissionForItemEdit(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := config.DB.Where("product_id = ? AND delete_at IS NULL", req.ProductID).
		First(&product).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product reference"})
		return
	}

	now := time.Now()
	item := models.Item{
		SubmissionID: submission.SubmissionID,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		Reason:       utils.SanitizeInput(req.Reason),
		Operation:    req.Operation,
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}

	config.DB.Preload("Product").First(&item, item.ItemID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added successfully",
		"item":    item,
	})
}

// UpdateItem edits an item of a pending submission.
func UpdateItem(c *gin.Context) {
	submission, ok := loadSubmissionForItemEdit(c)
	if !ok {
		return
	}

	type UpdateItemRequest struct {
		ProductID int    `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Reason    string `json:"reason"`
		Operation string `json:"operation"`
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.Item
	if err := config.DB.Where("item_id = ? AND submission_id = ?", c.Param("item_id"), submission.SubmissionID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	now := time.Now()
	if req.ProductID != 0 && req.ProductID != item.ProductID {
		var product models.Product
		if err := config.DB.Where("product_id = ? AND delete_at IS NULL", req.ProductID).
			First(&product).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product reference"})
			return
		}
		item.ProductID = req.ProductID
	}
	if req.Quantity != 0 {
		if req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be greater than zero"})
			return
		}
		item.Quantity = req.Quantity
	}
	if req.Reason != "" {
		item.Reason = utils.SanitizeInput(req.Reason)
	}
	if req.Operation != "" {
		if req.Operation != models.OperationBreakage && req.Operation != models.OperationExchange {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Operation must be breakage or exchange"})
			return
		}
		item.Operation = req.Operation
	}
	item.UpdateAt = &now

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	config.DB.Preload("Product").Preload("Photos").First(&item, item.ItemID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully",
		"item":    item,
	})
}

// DeleteItem removes an item (and its photos) from a pending submission.
// The last item cannot be removed; a submission always holds at least one.
func DeleteItem(c *gin.Context) {
	submission, ok := loadSubmissionForItemEdit(c)
	if !ok {
		return
	}

	var item models.Item
	if err := config.DB.Preload("Photos").
		Where("item_id = ? AND submission_id = ?", c.Param("item_id"), submission.SubmissionID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var itemCount int64
	if err := config.DB.Model(&models.Item{}).
		Where("submission_id = ?", submission.SubmissionID).
		Count(&itemCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check submission items"})
		return
	}
	if itemCount <= 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A submission must keep at least one item"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ItemID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, item.ItemID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	for _, photo := range item.Photos {
		_ = os.Remove(photo.StoredPath)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
