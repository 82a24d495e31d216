package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Request body is empty")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON request format")
		return false
	}
	return true
}

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// positiveQuery reads a required positive integer query parameter.
func positiveQuery(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing required parameter: "+name)
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", name+" must be an integer")
		return 0, false
	}
	if n < 1 {
		respondError(c, http.StatusBadRequest, "INVALID_PASSENGER_COUNT", name+" must be at least 1")
		return 0, false
	}
	return n, true
}
