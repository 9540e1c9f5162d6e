package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

var validate = validator.New()

func init() {
	// report json names ("customer.name") rather than Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "LOW", "MEDIUM", "HIGH":
			return true
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	return collect(validate.Struct(data), "")
}

// ValidateVar checks a single value against tag, reporting it under field.
// A value of a kind the tag cannot handle is reported as a "type" failure.
func ValidateVar(field string, value interface{}, tag string) (out []*ErrorResponse) {
	defer func() {
		if r := recover(); r != nil {
			out = []*ErrorResponse{{FailedField: field, Tag: "type", Value: fmt.Sprint(r)}}
		}
	}()
	return collect(validate.Var(value, tag), field)
}

func collect(err error, field string) []*ErrorResponse {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{FailedField: field, Tag: "invalid", Value: err.Error()}}
	}
	var out []*ErrorResponse
	for _, fe := range verrs {
		name := fe.Namespace()
		if field != "" {
			name = field
		} else if i := strings.Index(name, "."); i >= 0 {
			name = name[i+1:]
		}
		out = append(out, &ErrorResponse{FailedField: name, Tag: fe.Tag(), Value: fe.Param()})
	}
	return out
}
