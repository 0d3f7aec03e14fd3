package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"customerapp/internal/core/domain"
	"customerapp/internal/core/port"
)

// customerView is the validation shape of a customer. Blank values are
// flattened to "" so omitempty skips them.
type customerView struct {
	CPF   string `json:"cpf" validate:"omitempty,len=11"`
	Name  string `json:"name" validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CustomerValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var _ port.Validator = (*CustomerValidator)(nil)

func NewCustomerValidator() (*CustomerValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return jsonName(field.Tag.Get("json"))
	})

	english := en.New()
	uni := ut.New(english, english)

	translator, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	cv := &CustomerValidator{validate: validate, translator: translator}
	if err := cv.addCustomTranslations(); err != nil {
		return nil, err
	}

	return cv, nil
}

func (cv *CustomerValidator) addCustomTranslations() error {
	messages := map[string]string{
		"len":   domain.MessageInvalidCPF,
		"max":   domain.MessageNameTooLong,
		"email": domain.MessageInvalidEmail,
	}

	for tag, message := range messages {
		tag, message := tag, message
		err := cv.validate.RegisterTranslation(tag, cv.translator, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag)
			return t
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Validate reports every rule the customer breaks. It never mutates the
// customer. An empty result means the customer is valid.
func (cv *CustomerValidator) Validate(customer domain.Customer) []domain.FieldError {
	view := customerView{
		CPF:   blankToEmpty(customer.CPF),
		Name:  blankToEmpty(customer.Name),
		Email: blankToEmpty(customer.Email),
	}

	err := cv.validate.Struct(view)
	if err == nil {
		return nil
	}

	return cv.FormatValidationErrors(err)
}

func (cv *CustomerValidator) FormatValidationErrors(err error) []domain.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []domain.FieldError{{Message: err.Error()}}
	}

	fieldErrors := make([]domain.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors = append(fieldErrors, domain.FieldError{
			Field:   fieldError.Field(),
			Message: fieldError.Translate(cv.translator),
		})
	}

	return fieldErrors
}

func blankToEmpty(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return ""
	}
	return *s
}

func jsonName(tag string) string {
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
