package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"pairdiary/services"

	"github.com/gin-gonic/gin"
)

const serviceName = "pairdiary"

// Every response uses the {success, data?, error?} envelope. Internal errors
// are logged and flattened to a generic message; store details never leave
// the server.

func respondOK(c *gin.Context, data interface{}) {
	if data == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal error"
	}
	c.JSON(status, gin.H{"success": false, "error": message})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, fmt.Errorf("%w: invalid %s", services.ErrValidation, name))
		return 0, false
	}
	return id, true
}
