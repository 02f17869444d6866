package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"staffdir-backend/shared/database/models"
	"staffdir-backend/shared/utils/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler handles user endpoints
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// CreateUserRequest represents request body for creating a user
type CreateUserRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Designation string `json:"designation" binding:"required,max=150"`
	DOB         string `json:"dob" binding:"required,datetime=2006-01-02"`
	CompanyID   *uint  `json:"company_id" binding:"omitempty,gt=0"`
}

// UpdateUserRequest represents request body for updating a user. Pointer
// fields distinguish omitted fields from supplied ones; only supplied
// fields are written.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Designation *string `json:"designation" binding:"omitempty,min=1,max=150"`
	DOB         *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
}

// MigrateUserRequest represents request body for migrating a user
type MigrateUserRequest struct {
	CompanyID uint `json:"company_id"`
}

// GetUsers retrieves all users
// @Summary Get all users
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /users [get]
func (h *UserHandler) GetUsers(ctx *gin.Context) {
	users := []models.User{}
	if err := h.db.Find(&users).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// GetUser retrieves a single user by ID
// @Summary Get user by ID
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(ctx *gin.Context) {
	user, ok := h.findUser(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// CreateUser creates a new user
// @Summary Create a new user
// @Description Create a user; a supplied company_id must reference an existing company
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User information"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 409 {object} map[string]interface{} "Duplicate entry"
// @Router /users [post]
func (h *UserHandler) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	if req.CompanyID != nil {
		if !h.companyExists(ctx, *req.CompanyID) {
			return
		}
	}

	user := models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Designation: req.Designation,
		DOB:         req.DOB,
		CompanyID:   req.CompanyID,
		IsActive:    true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// UpdateUser updates an existing user
// @Summary Update a user
// @Description Update any non-empty subset of first_name, last_name, email, designation and dob
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "Fields to update"
// @Success 200 {string} string "User updated"
// @Failure 400 {object} map[string]interface{} "No valid fields to update"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 409 {object} map[string]interface{} "Duplicate entry"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(ctx *gin.Context) {
	user, ok := h.findUser(ctx)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Designation != nil {
		updates["designation"] = *req.Designation
	}
	if req.DOB != nil {
		updates["dob"] = *req.DOB
	}

	if len(updates) == 0 {
		response.Error(ctx, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, "User updated")
}

// DeactivateUser soft-disables a user
// @Summary Deactivate a user
// @Description Set is_active to false; deactivating an already-inactive user succeeds
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {string} string "User deactivated"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id}/deactivate [patch]
func (h *UserHandler) DeactivateUser(ctx *gin.Context) {
	user, ok := h.findUser(ctx)
	if !ok {
		return
	}

	if err := h.db.Model(&user).Update("is_active", false).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, "User deactivated")
}

// MigrateUser reassigns a user to another company
// @Summary Migrate a user to a company
// @Description Reassign the user's company_id to an existing company
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param migration body MigrateUserRequest true "Destination company"
// @Success 200 {string} string "User migrated to company N"
// @Failure 400 {object} map[string]interface{} "company_id is required"
// @Failure 404 {object} map[string]interface{} "User or company not found"
// @Router /users/{id}/migrate [patch]
func (h *UserHandler) MigrateUser(ctx *gin.Context) {
	var req MigrateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.CompanyID == 0 {
		response.Error(ctx, http.StatusBadRequest, "company_id is required")
		return
	}

	user, ok := h.findUser(ctx)
	if !ok {
		return
	}

	if !h.companyExists(ctx, req.CompanyID) {
		return
	}

	if err := h.db.Model(&user).Update("company_id", req.CompanyID).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, fmt.Sprintf("User migrated to company %d", req.CompanyID))
}

// DeleteUser deletes a user
// @Summary Delete a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {string} string "User deleted"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(ctx *gin.Context) {
	user, ok := h.findUser(ctx)
	if !ok {
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, "User deleted")
}

// findUser loads the user addressed by the :id path parameter. On failure
// it answers the request and returns ok=false.
func (h *UserHandler) findUser(ctx *gin.Context) (models.User, bool) {
	var user models.User

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "User not found")
		return user, false
	}

	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(ctx, http.StatusNotFound, "User not found")
			return user, false
		}
		response.DatabaseError(ctx, err)
		return user, false
	}

	return user, true
}

// companyExists verifies the referenced company. On failure it answers the
// request with 404 and returns false.
func (h *UserHandler) companyExists(ctx *gin.Context, companyID uint) bool {
	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(ctx, http.StatusNotFound, "Company not found")
			return false
		}
		response.DatabaseError(ctx, err)
		return false
	}
	return true
}
