package service

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"yatube/internal/repository"
)

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var (
	ErrNotFound     = repository.ErrNotFound
	ErrSelfFollow   = repository.ErrSelfFollow
	ErrForbidden    = errors.New("доступ запрещен")
	ErrInvalidCreds = errors.New("неверное имя пользователя или пароль")
)

// ValidationError carries field-level messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// NewValidator returns a validator reporting fields by their `form` tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
	return v
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле."
	case "min":
		return "Слишком короткое значение (минимум " + fe.Param() + ")."
	case "max":
		return "Слишком длинное значение (максимум " + fe.Param() + ")."
	case "email":
		return "Введите правильный адрес электронной почты."
	case "alphanumunicode", "slug":
		return "Допустимы только буквы, цифры, дефис и подчёркивание."
	default:
		return "Некорректное значение."
	}
}

// validateForm runs struct validation and converts failures into a
// *ValidationError. Other errors are returned unchanged.
func validateForm(v *validator.Validate, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), messageFor(fe))
	}
	return verr
}
