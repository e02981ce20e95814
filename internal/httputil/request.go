package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			texts := make([]string, 0, len(fieldErrors))
			for _, e := range fieldErrors {
				texts = append(texts, ValidationErrorToText(e))
			}
			return errors.New(strings.Join(texts, ", "))
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// GetURLFields checks which query parameters are set.
//
// queryFields contains the names of all set fields that can be used
// directly in a gorm Where statement. Fields tagged with filterField:"false"
// are processed by the caller and only show up in setFields, which holds
// all set fields.
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := range val.NumField() {
		field := val.Type().Field(i)
		if !url.Query().Has(field.Tag.Get("form")) {
			continue
		}

		setFields = append(setFields, field.Name)
		if field.Tag.Get("filterField") != "false" {
			queryFields = append(queryFields, field.Name)
		}
	}

	return queryFields, setFields
}

// ValidationErrorToText returns a human readable message for a failed
// binding validation.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s must not be greater than %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must not be less than %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}
