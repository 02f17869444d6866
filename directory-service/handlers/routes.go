package handlers

import (
	"net/http"

	"staffdir-backend/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the directory API onto the router. Paths are part
// of the public contract consumed by the frontend.
func RegisterRoutes(router *gin.Engine, companies *CompanyHandler, users *UserHandler) {
	// Company routes
	router.GET("/companies", companies.GetCompanies)
	router.GET("/companies/:id", companies.GetCompany)
	router.POST("/companies", companies.CreateCompany)
	router.PUT("/companies/:id", companies.UpdateCompany)
	router.DELETE("/companies/:id", companies.DeleteCompany)
	router.POST("/companies/:id/users", companies.AddUser)
	router.PATCH("/companies/:id/users/:user_id", companies.RemoveUser)

	// User routes
	router.GET("/users", users.GetUsers)
	router.GET("/users/:id", users.GetUser)
	router.POST("/users", users.CreateUser)
	router.PUT("/users/:id", users.UpdateUser)
	router.PATCH("/users/:id/deactivate", users.DeactivateUser)
	router.PATCH("/users/:id/migrate", users.MigrateUser)
	router.DELETE("/users/:id", users.DeleteUser)

	router.NoRoute(func(ctx *gin.Context) {
		response.Error(ctx, http.StatusNotFound, "Route Not Found")
	})
}
