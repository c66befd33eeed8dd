package controllers

import (
	"net/http"
	"time"

	"breakage-exchange-api/config"
	"breakage-exchange-api/models"
	"breakage-exchange-api/services"
	"breakage-exchange-api/utils"

	"github.com/gin-gonic/gin"
)

// AdminListUsers returns all user accounts (admin only).
func AdminListUsers(c *gin.Context) {
	var users []models.User
	query := config.DB.Preload("Role").Where("delete_at IS NULL")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}

	if err := query.Order("user_id ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

// AdminCreateUser creates an account with an explicit role (admin only).
func AdminCreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		RoleID    int    `json:"role_id" binding:"required,oneof=1 2"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: utils.SanitizeInput(req.FirstName),
		LastName:  utils.SanitizeInput(req.LastName),
		RoleID:    req.RoleID,
		Status:    models.UserStatusActive,
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		if services.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	actor := currentActor(c)
	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionUserCreate, "user", user.UserID, user.Email)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// AdminUpdateUser edits profile fields, role or status of an account.
func AdminUpdateUser(c *gin.Context) {
	id := c.Param("id")

	type UpdateUserRequest struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		RoleID    int    `json:"role_id"`
		Status    string `json:"status"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	if req.FirstName != "" {
		user.FirstName = utils.SanitizeInput(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = utils.SanitizeInput(req.LastName)
	}
	if req.RoleID != 0 {
		if req.RoleID != models.RoleUser && req.RoleID != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		user.RoleID = req.RoleID
	}
	if req.Status != "" {
		if req.Status != models.UserStatusActive && req.Status != models.UserStatusInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be active or inactive"})
			return
		}
		user.Status = req.Status
	}
	user.UpdateAt = &now

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	actor := currentActor(c)
	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionUserUpdate, "user", user.UserID, user.Email)

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// AdminDeleteUser removes an account. An account that owns submissions is
// deactivated and soft deleted so its reports keep a valid owner; an account
// with no submissions is removed outright.
func AdminDeleteUser(c *gin.Context) {
	id := c.Param("id")
	actor := currentActor(c)

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.UserID == actor.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var submissionCount int64
	if err := config.DB.Model(&models.Submission{}).
		Where("user_id = ?", user.UserID).
		Count(&submissionCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check user submissions"})
		return
	}

	if submissionCount > 0 {
		now := time.Now()
		user.Status = models.UserStatusInactive
		user.DeleteAt = &now
		user.UpdateAt = &now
		if err := config.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
			return
		}
	} else {
		if err := config.DB.Unscoped().Delete(&models.User{}, user.UserID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
	}

	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionUserDelete, "user", user.UserID, user.Email)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
