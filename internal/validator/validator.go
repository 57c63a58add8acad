// Package validator performs client-side form validation. Its errors are
// local to the process and never sent over the network.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/themirmakhmudov/lms-cli/internal/model"
)

// ValidationError is a client-side validation failure with a message fit for
// direct display.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	validate *govalidator.Validate
	trans    ut.Translator
)

// Setup builds the validator instance with English translations and JSON tag
// field names. Call once during startup.
func Setup() {
	validate = govalidator.New()

	// Use JSON tag name for field names in error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validate, trans)
}

// Struct validates a tagged struct and returns a map of field name to
// human-readable message, or nil on success.
func Struct(v any) map[string]string {
	if validate == nil {
		Setup()
	}
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}
	fields["detail"] = err.Error()
	return fields
}

// Registration checks the registration form. Checks run in a fixed order and
// the first failure wins, so the surfaced message matches what the form
// showed: username presence, username length, email presence, email shape,
// password length, then password confirmation.
func Registration(req model.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return &ValidationError{Message: "Username is required"}
	}
	// Length is checked on the trimmed value, matching what gets sent.
	if len(username) < 3 {
		return &ValidationError{Message: "Username must be at least 3 characters long"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return &ValidationError{Message: "Email is required"}
	}
	if !strings.Contains(req.Email, "@") {
		return &ValidationError{Message: "Please enter a valid email address"}
	}
	if len(req.Password) < 6 {
		return &ValidationError{Message: "Password must be at least 6 characters long"}
	}
	if req.Password != req.ConfirmPassword {
		return &ValidationError{Message: "Passwords do not match"}
	}
	return nil
}

// Login checks that both credential fields are non-empty after trimming.
func Login(username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return &ValidationError{Message: "Username and password are required"}
	}
	return nil
}
