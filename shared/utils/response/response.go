package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// FieldError describes a single invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error writes the standard error envelope
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"message": message,
		},
	})
}

// ValidationError writes a 400 envelope for a request binding failure,
// with a per-field breakdown when the error carries one.
func ValidationError(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: describeFieldError(fe),
		})
	}

	ctx.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"message": "Validation failed",
			"details": details,
		},
	})
}

// DatabaseError translates a store error into the error envelope. Known
// constraint violations become 409; everything else is answered with a
// generic 500 so no internal detail reaches the caller.
func DatabaseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Error(ctx, http.StatusConflict, "Duplicate entry")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		Error(ctx, http.StatusConflict, "Resource is in use")
	default:
		Error(ctx, http.StatusInternalServerError, "Internal Server Error")
	}
}

// describeFieldError renders a human-readable message for a failed rule
func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
