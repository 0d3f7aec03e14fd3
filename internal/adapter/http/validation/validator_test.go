package validation_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"customerapp/internal/adapter/http/validation"
	"customerapp/internal/core/domain"
)

type CustomerValidatorTestSuite struct {
	suite.Suite
	validator *validation.CustomerValidator
}

func (s *CustomerValidatorTestSuite) SetupTest() {
	v, err := validation.NewCustomerValidator()
	s.Require().NoError(err)
	s.validator = v
}

func TestCustomerValidatorTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(CustomerValidatorTestSuite))
}

func str(s string) *string { return &s }

func (s *CustomerValidatorTestSuite) customer(cpf, name, email *string) domain.Customer {
	return domain.Customer{ID: uuid.New(), CPF: cpf, Name: name, Email: email}
}

func (s *CustomerValidatorTestSuite) TestValidate_AllAbsent() {
	errs := s.validator.Validate(s.customer(nil, nil, nil))

	Expect(errs).To(BeEmpty())
}

func (s *CustomerValidatorTestSuite) TestValidate_ValidCustomer() {
	errs := s.validator.Validate(s.customer(str("12345678901"), str("Ana"), str("ana@example.com")))

	Expect(errs).To(BeEmpty())
}

func (s *CustomerValidatorTestSuite) TestValidate_BlankFieldsAreIgnored() {
	errs := s.validator.Validate(s.customer(str("   "), str(""), str(" ")))

	Expect(errs).To(BeEmpty())
}

func (s *CustomerValidatorTestSuite) TestValidate_CPFLength() {
	for _, cpf := range []string{"123", "123456789012", "1234567890"} {
		errs := s.validator.Validate(s.customer(str(cpf), nil, nil))

		Expect(errs).To(Equal([]domain.FieldError{{Field: "cpf", Message: "invalid CPF"}}), cpf)
	}
}

func (s *CustomerValidatorTestSuite) TestValidate_NameLength() {
	Expect(s.validator.Validate(s.customer(nil, str(strings.Repeat("a", 100)), nil))).To(BeEmpty())

	errs := s.validator.Validate(s.customer(nil, str(strings.Repeat("a", 101)), nil))
	Expect(errs).To(Equal([]domain.FieldError{{Field: "name", Message: "name too long"}}))
}

func (s *CustomerValidatorTestSuite) TestValidate_NameCountsCharacters() {
	errs := s.validator.Validate(s.customer(nil, str(strings.Repeat("é", 100)), nil))

	Expect(errs).To(BeEmpty())
}

func (s *CustomerValidatorTestSuite) TestValidate_InvalidEmail() {
	errs := s.validator.Validate(s.customer(nil, nil, str("not-an-email")))

	Expect(errs).To(Equal([]domain.FieldError{{Field: "email", Message: "invalid email"}}))
}

func (s *CustomerValidatorTestSuite) TestValidate_LongEmailHasNoLengthLimit() {
	label := strings.Repeat("b", 60)
	email := strings.Repeat("a", 60) + "@" + strings.Join([]string{label, label, label, label}, ".") + ".com"

	errs := s.validator.Validate(s.customer(nil, nil, &email))

	Expect(len(email)).To(BeNumerically(">", 300))
	Expect(errs).To(BeEmpty())
}

func (s *CustomerValidatorTestSuite) TestValidate_ReportsEveryViolation() {
	errs := s.validator.Validate(s.customer(str("1"), str(strings.Repeat("x", 101)), str("bad")))

	Expect(errs).To(HaveLen(3))
	Expect(errs).To(ContainElements(
		domain.FieldError{Field: "cpf", Message: "invalid CPF"},
		domain.FieldError{Field: "name", Message: "name too long"},
		domain.FieldError{Field: "email", Message: "invalid email"},
	))
}

func (s *CustomerValidatorTestSuite) TestValidate_DoesNotMutate() {
	cpf := "123"
	c := s.customer(&cpf, nil, nil)

	s.validator.Validate(c)

	Expect(*c.CPF).To(Equal("123"))
}
