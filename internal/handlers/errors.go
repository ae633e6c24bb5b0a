package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"taskmanager/internal/dto"
	"taskmanager/internal/middleware"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const msgRequired = "This field is required."

// bindJSON decodes and validates the body into obj, writing a 400 on
// failure. An empty body is validated as {}.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error) {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		syntax  *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		fields := dto.FieldErrors{}
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, fields)
	case errors.Is(err, dto.ErrDateFormat):
		c.JSON(http.StatusBadRequest, dto.FieldErrors{
			"due_date": {"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
		})
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid data. Expected a dictionary."})
			return
		}
		if i := strings.IndexByte(field, '.'); i > 0 {
			field = field[:i]
		}
		c.JSON(http.StatusBadRequest, dto.FieldErrors{field: {typeMessage(typeErr.Type)}})
	case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "JSON parse error - " + err.Error()})
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: err.Error()})
	}
}

func fieldMessage(fe validator.FieldError) string {
	if isNumber(fe.Kind()) {
		switch fe.Tag() {
		case "max":
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		case "min":
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		}
	}
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return "This field may not be blank."
	case "len", "hexcolor":
		return "Enter a valid hex color, e.g. #1A2B3C."
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}
	return "Invalid value."
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice:
		return "Expected a list of items."
	}
	return "Invalid value."
}

// respondError maps a service error onto the HTTP contract. Unknown errors
// become a 500 that carries only the request id; the cause goes to the log.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.FieldErrors(verr.Fields))
	case errors.Is(err, service.ErrNotFound):
		notFound(c)
	default:
		internalError(c, err)
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "Not found."})
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	middleware.LoggerFromContext(c).WithError(err).
		WithField("route", c.FullPath()).
		Error("request failed")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Detail:    "Internal server error.",
		RequestID: middleware.RequestIDFromContext(c),
	})
}

// parseID reads a positive integer path parameter; anything else is a 404
// because no such resource can exist.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		notFound(c)
		return 0, false
	}
	return id, true
}
