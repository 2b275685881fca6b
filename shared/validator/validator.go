package validator

import (
	"fmt"
	"net/http"
	"net/url"
	"tick/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
}

// FormDecoder is implemented by request DTOs that populate themselves from
// form-encoded bodies.
type FormDecoder interface {
	FromForm(values url.Values)
}

// ValidateForm parses the request's form body into the given DTO and then
// performs validation on the struct using the validator package. If the
// struct is invalid according to the validation rules, an error is returned.
// https://github.com/go-playground/validator
func ValidateForm(r *http.Request, data FormDecoder) error {
	if err := r.ParseForm(); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to parse form body: %w", err)) //nolint:wrapcheck
	}

	data.FromForm(r.PostForm)

	return ValidateStruct(data)
}

func ValidateStruct(data any) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
