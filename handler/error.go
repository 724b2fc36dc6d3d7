package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jfinfosena/25adso-pap/log"
	"github.com/jfinfosena/25adso-pap/repository"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// StatusFor maps a data-layer error to the HTTP status the API contract
// promises: 404 for missing rows, 400 for uniqueness violations, 409 for
// stock or status conflicts, 500 otherwise.
func StatusFor(err error) int {
	switch {
	case repository.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, repository.ErrInvalidTransition):
		return http.StatusConflict
	case isDuplicate(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isDuplicate(err error) bool {
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	switch status {
	case http.StatusNotFound:
		c.JSON(status, gin.H{"error": "not found"})
	case http.StatusBadRequest:
		c.JSON(status, gin.H{"error": "duplicate value"})
	case http.StatusConflict:
		c.JSON(status, gin.H{"error": err.Error()})
	default:
		log.GetLogger(c.Request.Context()).WithError(err).Errorf("request failed: %s\n", err)
		c.JSON(status, gin.H{"error": "internal error"})
	}
}

// bindJSON decodes the body into obj. Declarative validation failures come
// back as 422 with per-field detail, malformed JSON as 400.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": lo.Map(verrs, fieldError),
		})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return false
}

func fieldError(fe validator.FieldError, _ int) gin.H {
	return gin.H{
		"field": fe.Field(),
		"rule":  fe.Tag(),
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
