package controllers

import (
	"net/http"
	"time"

	"breakage-exchange-api/config"
	"breakage-exchange-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns dashboard statistics
func GetDashboardStats(c *gin.Context) {
	actor := currentActor(c)

	var stats map[string]interface{}
	if actor.IsAdmin() {
		stats = getAdminDashboard()
	} else {
		stats = getUserDashboard(actor.UserID)
	}

	if stats == nil {
		stats = make(map[string]interface{})
	}
	stats["current_date"] = time.Now().Format("2006-01-02")

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

// getUserDashboard returns counts scoped to the caller's own submissions.
func getUserDashboard(userID int) map[string]interface{} {
	stats := make(map[string]interface{})

	byStatus := make(map[string]int64)
	for _, status := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		var count int64
		config.DB.Model(&models.Submission{}).
			Where("user_id = ? AND status = ? AND delete_at IS NULL", userID, status).
			Count(&count)
		byStatus[status] = count
	}
	stats["submissions_by_status"] = byStatus

	var itemCount int64
	config.DB.Model(&models.Item{}).
		Where("submission_id IN (?)",
			config.DB.Model(&models.Submission{}).Select("submission_id").
				Where("user_id = ? AND delete_at IS NULL", userID)).
		Count(&itemCount)
	stats["total_items"] = itemCount

	return stats
}

// getAdminDashboard returns system-wide counts plus the recent decisions.
func getAdminDashboard() map[string]interface{} {
	stats := make(map[string]interface{})

	var totals []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	config.DB.Model(&models.Submission{}).
		Select("status, COUNT(*) as count").
		Where("delete_at IS NULL").
		Group("status").
		Scan(&totals)
	stats["submissions_by_status"] = totals

	var userCount int64
	config.DB.Model(&models.User{}).
		Where("delete_at IS NULL AND status = ?", models.UserStatusActive).
		Count(&userCount)
	stats["active_users"] = userCount

	var productCount int64
	config.DB.Model(&models.Product{}).
		Where("delete_at IS NULL").
		Count(&productCount)
	stats["products"] = productCount

	var operationTotals []struct {
		Operation string `json:"operation"`
		Quantity  int64  `json:"quantity"`
	}
	config.DB.Model(&models.Item{}).
		Select("operation, SUM(quantity) as quantity").
		Group("operation").
		Scan(&operationTotals)
	stats["items_by_operation"] = operationTotals

	var recent []models.Submission
	config.DB.Preload("User").
		Where("status != ? AND delete_at IS NULL", models.StatusPending).
		Order("decided_at DESC").
		Limit(5).
		Find(&recent)
	stats["recent_decisions"] = recent

	return stats
}
