package handlers

import (
	"net/http"
	"strconv"
	"time"

	"staffdir-backend/shared/clients"
	"staffdir-backend/shared/database/models"
	"staffdir-backend/shared/utils/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	db       *gorm.DB
	geocoder clients.Geocoder
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(db *gorm.DB, geocoder clients.Geocoder) *CompanyHandler {
	return &CompanyHandler{db: db, geocoder: geocoder}
}

// CreateCompanyRequest represents request body for creating a company
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Address string `json:"address" binding:"required,max=500"`
}

// UpdateCompanyRequest represents request body for updating a company.
// Pointer fields distinguish omitted fields from supplied ones; only
// supplied fields are written.
type UpdateCompanyRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address *string `json:"address" binding:"omitempty,min=1,max=500"`
}

// CompanyListItem represents one row of the company listing
type CompanyListItem struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UserCount int64     `json:"user_count"`
}

// GetCompanies retrieves all companies with their user counts
// @Summary Get all companies
// @Description Get all companies ordered by creation time, each with a live count of associated users
// @Tags companies
// @Accept json
// @Produce json
// @Success 200 {array} handlers.CompanyListItem
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /companies [get]
func (h *CompanyHandler) GetCompanies(ctx *gin.Context) {
	items := []CompanyListItem{}

	err := h.db.Model(&models.Company{}).
		Select("companies.id, companies.name, companies.address, companies.latitude, companies.longitude, companies.created_at, COUNT(users.id) AS user_count").
		Joins("LEFT JOIN users ON users.company_id = companies.id").
		Group("companies.id").
		Order("companies.created_at DESC").
		Scan(&items).Error
	if err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// GetCompany retrieves a single company by ID
// @Summary Get company by ID
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} models.Company
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetCompany(ctx *gin.Context) {
	company, ok := h.findCompany(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, company)
}

// CreateCompany creates a new company, geocoding its address
// @Summary Create a new company
// @Description Create a company; the address is resolved to coordinates best-effort (0/0 on lookup failure)
// @Tags companies
// @Accept json
// @Produce json
// @Param company body CreateCompanyRequest true "Company information"
// @Success 201 {object} models.Company
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(ctx *gin.Context) {
	var req CreateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	coords := h.geocoder.Resolve(ctx.Request.Context(), req.Address)

	company := models.Company{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  &coords.Latitude,
		Longitude: &coords.Longitude,
	}

	if err := h.db.Create(&company).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, company)
}

// UpdateCompany updates an existing company
// @Summary Update a company
// @Description Update a company's name and/or address; a new address is re-geocoded
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Param company body UpdateCompanyRequest true "Fields to update"
// @Success 200 {string} string "Company updated"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Router /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(ctx *gin.Context) {
	company, ok := h.findCompany(ctx)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		coords := h.geocoder.Resolve(ctx.Request.Context(), *req.Address)
		updates["address"] = *req.Address
		updates["latitude"] = coords.Latitude
		updates["longitude"] = coords.Longitude
	}

	if len(updates) > 0 {
		if err := h.db.Model(&company).Updates(updates).Error; err != nil {
			response.DatabaseError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, "Company updated")
}

// DeleteCompany deletes a company that has no users
// @Summary Delete a company
// @Description Delete a company; blocked while users still reference it
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {string} string "Company deleted"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 409 {object} map[string]interface{} "Company has users"
// @Router /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(ctx *gin.Context) {
	company, ok := h.findCompany(ctx)
	if !ok {
		return
	}

	var userCount int64
	if err := h.db.Model(&models.User{}).Where("company_id = ?", company.ID).Count(&userCount).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}
	if userCount > 0 {
		response.Error(ctx, http.StatusConflict, "Cannot delete company with active users. Migrate or delete users first.")
		return
	}

	if err := h.db.Delete(&company).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, "Company deleted")
}

// AddUser creates a new user inside a company
// @Summary Add a user to a company
// @Description Create a user with its company reference forced to the path company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Param user body CreateUserRequest true "User information"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 409 {object} map[string]interface{} "Duplicate entry"
// @Router /companies/{id}/users [post]
func (h *CompanyHandler) AddUser(ctx *gin.Context) {
	company, ok := h.findCompany(ctx)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ValidationError(ctx, err)
		return
	}

	// The path company wins over any company_id in the body
	user := models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Designation: req.Designation,
		DOB:         req.DOB,
		CompanyID:   &company.ID,
		IsActive:    true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// RemoveUser detaches a user from a company without deleting the user
// @Summary Remove a user from a company
// @Description Set the user's company reference to null; the user record is kept
// @Tags companies
// @Accept json
// @Produce json
// @Param id path int true "Company ID"
// @Param user_id path int true "User ID"
// @Success 200 {string} string "User removed from company"
// @Failure 404 {object} map[string]interface{} "User not found in this company"
// @Router /companies/{id}/users/{user_id} [patch]
func (h *CompanyHandler) RemoveUser(ctx *gin.Context) {
	companyID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "User not found in this company")
		return
	}
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "User not found in this company")
		return
	}

	var user models.User
	if err := h.db.Where("id = ? AND company_id = ?", userID, companyID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(ctx, http.StatusNotFound, "User not found in this company")
			return
		}
		response.DatabaseError(ctx, err)
		return
	}

	if err := h.db.Model(&user).Update("company_id", nil).Error; err != nil {
		response.DatabaseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, "User removed from company")
}

// findCompany loads the company addressed by the :id path parameter. On
// failure it answers the request and returns ok=false.
func (h *CompanyHandler) findCompany(ctx *gin.Context) (models.Company, bool) {
	var company models.Company

	// A non-numeric ID cannot match any row, so it reads as not found
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "Company not found")
		return company, false
	}

	if err := h.db.First(&company, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(ctx, http.StatusNotFound, "Company not found")
			return company, false
		}
		response.DatabaseError(ctx, err)
		return company, false
	}

	return company, true
}
