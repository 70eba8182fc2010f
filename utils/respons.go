package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondAppError maps a domain error kind to an HTTP status. Unclassified
// errors are logged with full context and surfaced as a generic 500 so
// internals never leak to the caller.
func RespondAppError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Kind {
		case KindValidation:
			RespondError(c, http.StatusBadRequest, appErr)
		case KindNotFound:
			RespondError(c, http.StatusNotFound, appErr)
		case KindConflict:
			RespondError(c, http.StatusConflict, appErr)
		case KindAuthorization:
			RespondError(c, http.StatusForbidden, appErr)
		case KindStore:
			ErrorLogger.Printf("store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
			c.JSON(http.StatusServiceUnavailable, JSONResponse{
				Status:  false,
				Message: "storage temporarily unavailable",
			})
		default:
			ErrorLogger.Printf("unclassified error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.JSON(http.StatusInternalServerError, JSONResponse{
				Status:  false,
				Message: "internal error",
			})
		}
		return
	}

	ErrorLogger.Printf("unclassified error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, JSONResponse{
		Status:  false,
		Message: "internal error",
	})
}
