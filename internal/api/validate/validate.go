package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Field builds a single-field validation error.
func Field(field, msg string) Errs {
	return Errs{{Field: field, Msg: msg}}
}

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-_.]{1,20}$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields under their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		u := fl.Field().String()
		return u != "me" && usernameRe.MatchString(u)
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pastyear", func(fl validator.FieldLevel) bool {
		return int(fl.Field().Int()) <= time.Now().Year()
	})
	return v
}

// Struct validates a request DTO and flattens validator errors into
// per-field messages.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(Errs, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, ErrField{Field: fe.Field(), Msg: message(fe)})
		}
		return out
	}
	return err
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "username":
		return `must start with a letter, contain only letters, digits, "-", "_" or ".", be 2-21 characters and must not be "me"`
	case "slug":
		return "must contain only letters, digits, hyphens and underscores"
	case "pastyear":
		return "must not be in the future"
	}
	return "invalid value"
}
