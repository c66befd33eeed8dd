package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"breakage-exchange-api/config"
	"breakage-exchange-api/models"
	"breakage-exchange-api/services"

	"github.com/gin-gonic/gin"
)

// filteredSubmissions loads decided-and-pending submissions matching the
// export query parameters, with everything the export routines need.
func filteredSubmissions(c *gin.Context) ([]models.Submission, error) {
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
	if product := c.Query("product_id"); product != "" {
		query = query.Where("submission_id IN (?)",
			config.DB.Model(&models.Item{}).Select("submission_id").Where("product_id = ?", product))
	}

	err := query.Order("create_at ASC").Find(&submissions).Error
	return submissions, err
}

// ExportCSV streams the flat item report (admin only).
func ExportCSV(c *gin.Context) {
	submissions, err := filteredSubmissions(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	filename := fmt.Sprintf("breakage-report-%s.csv", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := services.WriteCSV(c.Writer, submissions); err != nil {
		// Headers are already out; log and close.
		c.Error(err)
	}
}

// ExportPhotos streams a ZIP of all photos of the filtered submissions
// (admin only). Completed vs requested counts are reported in headers so a
// partial batch is visible to the caller.
func ExportPhotos(c *gin.Context) {
	submissions, err := filteredSubmissions(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	entries := services.PhotoEntries(submissions)
	if len(entries) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No photos match the given filters"})
		return
	}

	// Buffer the archive so the completion counts can go out as headers.
	var buf bytes.Buffer
	report, err := services.BuildPhotoArchive(&buf, entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build photo archive"})
		return
	}

	filename := fmt.Sprintf("breakage-photos-%s.zip", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Export-Requested", strconv.Itoa(report.Requested))
	c.Header("X-Export-Completed", strconv.Itoa(report.Completed))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
