package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"busticket/internal/domain"
	"busticket/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorDetails is the machine readable half of an error payload.
type ErrorDetails struct {
	ErrorCode   string `json:"error_code"`
	Description string `json:"description"`
}

// ErrorResponse is the envelope of every non-2xx answer.
type ErrorResponse struct {
	Status       string       `json:"status"`
	Code         int          `json:"code"`
	Message      string       `json:"message"`
	ErrorDetails ErrorDetails `json:"error_details"`
	RequestID    string       `json:"request_id,omitempty"`
	Committed    []string     `json:"committed_bookings,omitempty"`
	Timestamp    string       `json:"timestamp"`
}

func newErrorResponse(c *gin.Context, status int, code, message string) ErrorResponse {
	if code == "" {
		code = strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	return ErrorResponse{
		Status:       "ERROR",
		Code:         status,
		Message:      message,
		ErrorDetails: ErrorDetails{ErrorCode: code, Description: message},
		RequestID:    middleware.GetRequestID(c),
		Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, newErrorResponse(c, status, code, message))
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var partial domain.PartialBookingError
	switch {
	case errors.As(err, &partial):
		resp := newErrorResponse(c, http.StatusConflict, "BOOKING_FAILED", "Could not book all passengers: "+partial.Error())
		resp.Committed = partial.Committed
		c.AbortWithStatusJSON(http.StatusConflict, resp)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, validationCode(err), err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, errorCode(err, "NOT_FOUND"), err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, errorCode(err, "CONFLICT"), err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "internal server error")
	}
}

// errorCode returns the first DomainError code in the chain.
func errorCode(err error, fallback string) string {
	var de domain.DomainError
	if errors.As(err, &de) && de.Code != "" {
		return de.Code
	}
	return fallback
}

func validationCode(err error) string {
	if code := errorCode(err, ""); code != "" {
		return code
	}
	var ve domain.ValidationError
	if !errors.As(err, &ve) {
		return "VALIDATION_ERROR"
	}
	switch {
	case ve.Field == "origin", ve.Field == "destination", ve.Field == "route":
		return "INVALID_ROUTE"
	case ve.Field == "passenger_count":
		return "INVALID_PASSENGER_COUNT"
	case ve.Field == "contact_email":
		return "INVALID_EMAIL"
	case strings.HasPrefix(ve.Field, "passengers"):
		return "INVALID_PASSENGERS"
	case ve.Field == "payment":
		return "INVALID_PAYMENT"
	case ve.Field == "offer_token":
		return "INVALID_OFFER"
	case ve.Field == "journey_id":
		return "INVALID_REQUEST"
	default:
		return "VALIDATION_ERROR"
	}
}
