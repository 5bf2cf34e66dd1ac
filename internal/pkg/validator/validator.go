package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/georef-api/internal/pkg/utils"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	// Use the client-facing parameter name in messages ("name", not "Name").
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(fmt.Sprintf("register validator translations: %v", err))
	}

	if err := registerAddress(); err != nil {
		panic(fmt.Sprintf("register address validation: %v", err))
	}
}

// registerAddress adds the "address" tag: "<street name> <door number>".
func registerAddress() error {
	err := validate.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		_, _, ok := utils.SplitAddress(fl.Field().String())
		return ok
	})
	if err != nil {
		return err
	}

	return validate.RegisterTranslation("address", trans,
		func(ut ut.Translator) error {
			return ut.Add("address", "{0} must have the form '<street name> <door number>'", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("address", fe.Field())
			return t
		},
	)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// Translate converts a validation error into English messages, one per failed field.
// Errors that are not validation errors are returned as a single message.
func Translate(err error) []string {
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, e.Translate(trans))
	}
	return messages
}
