// Package response renders the uniform JSON envelope used by every endpoint:
// {"status": "success"|"error", "results": ..., "message": ..., "count": ...}.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizbank/internal/errs"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the wire shape shared by all endpoints. Endpoint-specific
// payload keys (access_token, uploaded_data, ...) are added via Extra.
type Envelope struct {
	Status  string `json:"status"`
	Results any    `json:"results,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message"`
}

// OK renders a success envelope with results.
func OK(c *gin.Context, results any, message string) {
	c.JSON(http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Results: results,
		Message: message,
	})
}

// OKCount renders a success envelope for list endpoints, including the
// number of returned records.
func OKCount(c *gin.Context, results any, count int, message string) {
	c.JSON(http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Results: results,
		Count:   &count,
		Message: message,
	})
}

// OKExtra renders a success envelope with endpoint-specific top-level keys.
func OKExtra(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"status": StatusSuccess, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Err renders an error envelope with an explicit status code.
func Err(c *gin.Context, httpStatus int, message string, results any) {
	c.JSON(httpStatus, Envelope{
		Status:  StatusError,
		Results: results,
		Message: message,
	})
}

// FromError maps a service-layer error onto the envelope using the shared
// taxonomy. Unknown errors become a generic 400, never exposing internals.
func FromError(c *gin.Context, err error) {
	var (
		conflict     *errs.ConflictError
		notFound     *errs.NotFoundError
		validation   *errs.ValidationError
		unauthorized *errs.UnauthorizedError
		unsupported  *errs.UnsupportedMediaError
		parse        *errs.ParseError
	)
	switch {
	case errors.As(err, &conflict):
		Err(c, http.StatusConflict, conflict.Message, conflict.Existing)
	case errors.As(err, &notFound):
		Err(c, http.StatusNotFound, notFound.Message, nil)
	case errors.As(err, &unauthorized):
		Err(c, http.StatusUnauthorized, unauthorized.Message, nil)
	case errors.As(err, &validation):
		Err(c, http.StatusBadRequest, validation.Message, nil)
	case errors.As(err, &unsupported):
		Err(c, http.StatusUnsupportedMediaType, unsupported.Message, nil)
	case errors.As(err, &parse):
		Err(c, http.StatusBadRequest, parse.Error(), nil)
	default:
		Err(c, http.StatusBadRequest, "Something Went Wrong !!", nil)
	}
}
