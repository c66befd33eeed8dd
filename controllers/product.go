package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"breakage-exchange-api/config"
	"breakage-exchange-api/models"
	"breakage-exchange-api/services"
	"breakage-exchange-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProducts returns the product catalog for any authenticated user.
func GetProducts(c *gin.Context) {
	if !services.CanReadProduct(currentActor(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var products []models.Product
	query := config.DB.Where("delete_at IS NULL")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", like, like)
	}

	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetProduct returns a single product by ID.
func GetProduct(c *gin.Context) {
	if !services.CanReadProduct(currentActor(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	id := c.Param("id")

	var product models.Product
	if err := config.DB.Where("product_id = ? AND delete_at IS NULL", id).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct adds a catalog entry (admin only).
func CreateProduct(c *gin.Context) {
	actor := currentActor(c)
	if !services.CanWriteProduct(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	type CreateProductRequest struct {
		Name     string `json:"name" binding:"required"`
		Code     string `json:"code" binding:"required"`
		Capacity string `json:"capacity"`
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Product codes are unique across the catalog
	var existing models.Product
	if err := config.DB.Where("code = ? AND delete_at IS NULL", req.Code).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Product code already in use"})
		return
	}

	now := time.Now()
	product := models.Product{
		Name:     utils.SanitizeInput(req.Name),
		Code:     utils.SanitizeInput(req.Code),
		Capacity: utils.SanitizeInput(req.Capacity),
		CreateAt: &now,
		UpdateAt: &now,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionProductCreate, "product", product.ProductID, product.Code)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct edits a catalog entry (admin only).
func UpdateProduct(c *gin.Context) {
	actor := currentActor(c)
	if !services.CanWriteProduct(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	id := c.Param("id")

	type UpdateProductRequest struct {
		Name     string `json:"name"`
		Code     string `json:"code"`
		Capacity string `json:"capacity"`
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := config.DB.Where("product_id = ? AND delete_at IS NULL", id).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	now := time.Now()
	if req.Name != "" {
		product.Name = utils.SanitizeInput(req.Name)
	}
	if req.Code != "" && req.Code != product.Code {
		var existing models.Product
		if err := config.DB.Where("code = ? AND product_id != ? AND delete_at IS NULL", req.Code, product.ProductID).
			First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Product code already in use"})
			return
		}
		product.Code = utils.SanitizeInput(req.Code)
	}
	if req.Capacity != "" {
		product.Capacity = utils.SanitizeInput(req.Capacity)
	}
	product.UpdateAt = &now

	if err := config.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionProductUpdate, "product", product.ProductID, product.Code)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct soft deletes a product, refusing while any item still
// references it.
func DeleteProduct(c *gin.Context) {
	actor := currentActor(c)
	if !services.CanWriteProduct(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := services.NewProductService(config.DB).Delete(productID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Product is referenced by existing items and cannot be deleted"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		}
		return
	}

	services.NewAuditService(config.DB).RecordOrLog(actor.UserID, models.ActionProductDelete, "product", product.ProductID, product.Code)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
