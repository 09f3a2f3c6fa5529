package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// currentUser returns the user loaded by the auth middleware.
func currentUser(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(middleware.ContextUser)
	if !exists {
		return nil, apperrors.ErrUnauthorized
	}
	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// parsePathID parses a positive integer path parameter.
//
//nolint:unparam // every route names its id "id" today
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, fieldError(param, "uint", param+" must be a positive integer")
	}
	return uint(id), nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// bindJSON decodes and validates the request body into dst.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindingError(err)
	}
	return nil
}

// bindQuery decodes and validates query parameters into dst.
func bindQuery(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return bindingError(err)
	}
	return nil
}

// queryDate parses a required YYYY-MM-DD query parameter.
func queryDate(c *gin.Context, name string) (models.Date, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return models.Date{}, fieldError(name, "required", name+" is required")
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, fieldError(name, "date", err.Error())
	}
	return d, nil
}

// bindingError turns decoder and validator failures into a 422 carrying
// one entry per failed field.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, apperrors.FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: ruleMessage(fe),
			})
		}
		return apperrors.WithDetails(apperrors.ErrValidation, details)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return fieldError(field, "type", fmt.Sprintf("%s must be of type %s", field, typeErr.Type))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fieldError("body", "json", "request body is not valid JSON")
	}

	if errors.Is(err, io.EOF) {
		return fieldError("body", "required", "request body is required")
	}

	return fieldError("body", "parse", err.Error())
}

func fieldError(field, rule, message string) error {
	return apperrors.WithDetails(apperrors.ErrValidation, []apperrors.FieldError{
		{Field: field, Rule: rule, Message: message},
	})
}

func ruleMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, minMaxUnit(fe, fe.Param()))
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, minMaxUnit(fe, fe.Param()))
	case "email":
		return field + " must be a valid email address"
	case "iso4217":
		return field + " must be a supported ISO 4217 currency code"
	case "transaction_type":
		return field + " must be one of: income, expense"
	case "budget_period":
		return field + " must be one of: monthly, weekly, yearly"
	default:
		return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
}

// minMaxUnit names the unit of a length rule: characters for strings, the
// bare number otherwise.
func minMaxUnit(fe validator.FieldError, param string) string {
	if fe.Kind() == reflect.String {
		return param + " characters"
	}
	return param
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
