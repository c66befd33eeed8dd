package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"breakage-exchange-api/config"
	"breakage-exchange-api/models"
	"breakage-exchange-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type decisionRequest struct {
	Comment string `json:"comment"`
}

// ApproveSubmission moves a pending submission to approved (admin only).
func ApproveSubmission(c *gin.Context) {
	decideSubmission(c, models.StatusApproved)
}

// RejectSubmission moves a pending submission to rejected (admin only).
// A comment explaining the rejection is required.
func RejectSubmission(c *gin.Context) {
	decideSubmission(c, models.StatusRejected)
}

func decideSubmission(c *gin.Context, status string) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && status == models.StatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	actor := currentActor(c)
	if !services.CanDecide(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	submission, err := services.NewDecisionService(config.DB).
		Decide(actor.UserID, submissionID, status, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyDecided):
			// A concurrent admin won the race; benign conflict.
			c.JSON(http.StatusConflict, gin.H{"error": "Submission has already been decided"})
		case errors.Is(err, services.ErrCommentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A comment is required when rejecting"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decide submission"})
		}
		return
	}

	notifyDecision(submission, status, req.Comment)

	message := "Submission approved successfully"
	if status == models.StatusRejected {
		message = "Submission rejected"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"submission": submission,
	})
}

// notifyDecision mails the submission owner about the outcome. Failures are
// logged, never surfaced: the decision already happened.
func notifyDecision(submission *models.Submission, status, comment string) {
	if submission.User.Email == "" {
		return
	}

	subject := fmt.Sprintf("Submission %s %s", submission.Number, status)
	body := fmt.Sprintf("<p>Your breakage/exchange report <b>%s</b> has been <b>%s</b>.</p>",
		submission.Number, status)
	if comment != "" {
		body += fmt.Sprintf("<p>Reviewer comment: %s</p>", comment)
	}

	if err := config.SendMail([]string{submission.User.Email}, subject, body); err != nil {
		log.Printf("Warning: decision mail for submission %d not sent: %v", submission.SubmissionID, err)
	}
}

// AdminListSubmissions returns all submissions with filters (admin only).
// The shared GetSubmissions already gives admins the full set; this endpoint
// additionally exposes per-status totals for the review queue.
func AdminListSubmissions(c *gin.Context) {
	var totals []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	if err := config.DB.Model(&models.Submission{}).
		Select("status, COUNT(*) as count").
		Where("delete_at IS NULL").
		Group("status").
		Scan(&totals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count submissions"})
		return
	}

	var submissions []models.Submission
	query := config.DB.Preload("User").Preload("Items").
		Preload("Items.Product").Preload("Items.Photos").
		Where("submissions.delete_at IS NULL")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if user := c.Query("user_id"); user != "" {
		query = query.Where("user_id = ?", user)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("create_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("create_at < DATE_ADD(?, INTERVAL 1 DAY)", to)
	}

	if err := query.Order("create_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"totals":      totals,
		"total":       len(submissions),
	})
}
