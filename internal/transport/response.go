package transport

import (
	"errors"
	"net/http"

	"motoshop-be/internal/admin"
	"motoshop-be/internal/logger"
	"motoshop-be/internal/taxonomy"
	"motoshop-be/internal/wishlist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the JSON envelope of every endpoint.
type Response struct {
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Error   bool              `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Message: message, Data: data})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Message: message, Error: true})
}

// rejected answers a form submission the store refused, field by field.
func rejected(c *gin.Context, rej *admin.Rejection) {
	status := http.StatusBadRequest
	if rej.Conflict() {
		status = http.StatusConflict
	}
	c.AbortWithStatusJSON(status, Response{Message: rej.Cause.Error(), Error: true, Fields: rej.Fields})
}

// fail maps a domain error onto a status code. Anything unrecognised is
// logged and hidden behind a 500.
func fail(c *gin.Context, err error) {
	var (
		ve *taxonomy.ValidationError
		ce *taxonomy.ConflictError
	)

	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, Response{
			Message: err.Error(),
			Error:   true,
			Fields:  map[string]string{ve.Field: ve.Message},
		})
	case errors.As(err, &ce):
		c.AbortWithStatusJSON(http.StatusConflict, Response{
			Message: err.Error(),
			Error:   true,
			Fields:  map[string]string{ce.Field: "is already taken"},
		})
	case errors.Is(err, taxonomy.ErrNotFound), errors.Is(err, wishlist.ErrItemNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, Response{Message: err.Error(), Error: true})
	case errors.Is(err, wishlist.ErrMissingID):
		c.AbortWithStatusJSON(http.StatusBadRequest, Response{Message: err.Error(), Error: true, Fields: map[string]string{"id": "is required"}})
	case errors.Is(err, wishlist.ErrFull):
		c.AbortWithStatusJSON(http.StatusConflict, Response{Message: err.Error(), Error: true})
	default:
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Message: "internal server error", Error: true})
	}
}
