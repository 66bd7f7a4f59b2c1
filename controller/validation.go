package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"marketplace-backend/pkg/idgen"
)

type validationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Decimals are validated as numbers so gte/lte apply to rates.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", field)
	case "min":
		if isString {
			return fmt.Sprintf("The %s field must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("The %s field must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not exceed %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must not exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s", field, fe.Param())
	case "boolean":
		return fmt.Sprintf("The %s field must be true or false", field)
	default:
		return fmt.Sprintf("The %s field is invalid", field)
	}
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	fields := make(map[string]string, len(errs))
	var first string
	for i, fe := range errs {
		msg := formatFieldError(fe)
		fields[fe.Field()] = msg
		if i == 0 {
			first = msg
		}
	}
	writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{Message: first, Errors: fields})
}

// validate checks dst and writes the 422 response when it fails.
func (b *base) validate(w http.ResponseWriter, dst any) bool {
	err := b.validator.Struct(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		writeValidationErrors(w, verrs)
		return false
	}
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	return false
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler should go on.
func (b *base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", "request body must be valid JSON")
		return false
	}
	return b.validate(w, dst)
}

// pathID reads a ULID path parameter. A value that is not a ULID cannot name a
// stored record, so it gets the notFound response without a lookup.
func (b *base) pathID(w http.ResponseWriter, r *http.Request, key string, notFound error) (string, bool) {
	id := chi.URLParam(r, key)
	if !idgen.Valid(id) {
		respondError(w, r, b.log, notFound)
		return "", false
	}
	return id, true
}
