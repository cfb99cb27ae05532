package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"food_ordering/internal/logger"
	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func init() {
	// report binding failures with the JSON field names clients send
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func respond(c *gin.Context, status int, msg string, data interface{}) {
	c.JSON(status, gin.H{"msg": msg, "data": data, "status": true})
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg, "status": true})
}

func respondFailure(c *gin.Context, status int, msg string, details []fieldError) {
	body := gin.H{"msg": msg, "status": false}
	if len(details) > 0 {
		body["errors"] = details
	}
	c.JSON(status, body)
}

// respondError maps service errors onto HTTP status codes. Unexpected
// errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var verr *services.ValidationError
	var ferrs validator.ValidationErrors

	switch {
	case errors.As(err, &verr):
		respondFailure(c, http.StatusBadRequest, capitalize(verr.Message), []fieldError{{Field: verr.Field, Message: verr.Message}})
	case errors.As(err, &ferrs):
		respondFailure(c, http.StatusBadRequest, "Invalid request payload", validationDetails(ferrs))
	case errors.Is(err, services.ErrNotFound):
		respondFailure(c, http.StatusNotFound, capitalize(err.Error()), nil)
	case errors.Is(err, services.ErrForbidden):
		respondFailure(c, http.StatusForbidden, capitalize(err.Error()), nil)
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		respondFailure(c, http.StatusUnauthorized, capitalize(err.Error()), nil)
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrRestaurantExists),
		errors.Is(err, services.ErrAlreadyOwner),
		errors.Is(err, services.ErrEmailTaken):
		respondFailure(c, http.StatusBadRequest, capitalize(err.Error()), nil)
	default:
		log.Error("request_failed", logger.RequestID(c.Request.Context()), "unhandled error", err)
		respondFailure(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// bindJSON decodes the body into dest and answers 400 itself on failure.
func bindJSON(c *gin.Context, log *logger.Logger, dest interface{}) bool {
	err := c.ShouldBindJSON(dest)
	if err == nil {
		return true
	}

	var ferrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &ferrs):
		respondError(c, log, ferrs)
	case errors.As(err, &typeErr):
		respondFailure(c, http.StatusBadRequest, "Invalid request payload", []fieldError{{
			Field:   typeErr.Field,
			Message: "expected " + typeErr.Type.String(),
		}})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		respondFailure(c, http.StatusBadRequest, "Malformed JSON body", nil)
	default:
		respondFailure(c, http.StatusBadRequest, "Invalid request payload", []fieldError{{Message: err.Error()}})
	}
	return false
}

func validationDetails(errs validator.ValidationErrors) []fieldError {
	out := make([]fieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fieldError{Field: fieldPath(fe), Message: validationMessage(fe)})
	}
	return out
}

// fieldPath drops the request struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return "ensure this field has at least " + fe.Param() + " characters"
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "failed on the '" + fe.Tag() + "' rule"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// pathID reads a numeric path parameter; anything else is treated as a
// missing resource.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondFailure(c, http.StatusNotFound, "Not found", nil)
		return 0, false
	}
	return uint(id), true
}
