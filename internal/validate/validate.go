// Package validate holds the pure, synchronous field validation rules for
// intake and emergency-contact forms. Validators return nil when the value is
// acceptable and a *FieldError carrying a structured reason code otherwise, so
// callers dispatch on codes rather than matching message text.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/triageai/triage/internal/model"
)

// Field identifies which form field a validation error belongs to.
type Field int

const (
	FieldName Field = iota
	FieldAge
	FieldGender
	FieldRelationship
	FieldOtherRelationship
	FieldCountryCode
	FieldPhone
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldAge:
		return "age"
	case FieldGender:
		return "gender"
	case FieldRelationship:
		return "relationship"
	case FieldOtherRelationship:
		return "other_relationship"
	case FieldCountryCode:
		return "country_code"
	case FieldPhone:
		return "phone"
	default:
		return "unknown"
	}
}

// Reason categorizes why a field failed validation.
type Reason int

const (
	ReasonRequired Reason = iota
	ReasonInvalidChars
	ReasonNotANumber
	ReasonOutOfRange
	ReasonCountryFirst
	ReasonWrongLength
)

// FieldError is a validation failure for a single field.
type FieldError struct {
	Field  Field
	Reason Reason
	msg    string
}

func (e *FieldError) Error() string { return e.msg }

func fieldErr(f Field, r Reason, msg string) *FieldError {
	return &FieldError{Field: f, Reason: r, msg: msg}
}

// MinCauseLen is the shortest mechanism-of-injury text worth validating
// remotely. Anything shorter clears the previous result instead.
const MinCauseLen = 3

const (
	// AgeMin and AgeMax bound the accepted patient age, inclusive.
	AgeMin = 1
	AgeMax = 120
)

// lettersAndSpaces reports whether s contains only letters and whitespace.
func lettersAndSpaces(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// digitsOnly reports whether s contains only ASCII digits.
func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Name validates free-text name and relationship fields: letters and spaces
// only, non-empty after trimming.
func Name(s string) error {
	if !lettersAndSpaces(s) {
		return fieldErr(FieldName, ReasonInvalidChars, "required, letters and spaces only")
	}
	if strings.TrimSpace(s) == "" {
		return fieldErr(FieldName, ReasonRequired, "required, letters and spaces only")
	}
	return nil
}

// Age parses and validates an age input string. Empty input and out-of-range
// values fail with distinct reasons.
func Age(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fieldErr(FieldAge, ReasonRequired, "age is required")
	}
	if !digitsOnly(s) {
		return 0, fieldErr(FieldAge, ReasonNotANumber, "age must be a number")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fieldErr(FieldAge, ReasonNotANumber, "age must be a number")
	}
	if n < AgeMin || n > AgeMax {
		return 0, fieldErr(FieldAge, ReasonOutOfRange,
			fmt.Sprintf("age must be between %d and %d", AgeMin, AgeMax))
	}
	return n, nil
}

// Gender requires one of the enumerated values.
func Gender(g model.Gender) error {
	if g == model.GenderUnset {
		return fieldErr(FieldGender, ReasonRequired, "select a gender")
	}
	return nil
}

// OtherRelationship validates the companion free-text field that becomes
// mandatory when the relationship is Other. It is irrelevant otherwise.
func OtherRelationship(rel model.Relationship, other string) error {
	if rel != model.RelationshipOther {
		return nil
	}
	if !lettersAndSpaces(other) {
		return fieldErr(FieldOtherRelationship, ReasonInvalidChars, "please specify the relationship")
	}
	if strings.TrimSpace(other) == "" {
		return fieldErr(FieldOtherRelationship, ReasonRequired, "please specify the relationship")
	}
	return nil
}

// Phone validates a digits-only phone number against the ISD table entry for
// the chosen country code. A country code must be chosen first, and the digit
// count must equal the table entry's expected length exactly.
func Phone(countryCode, number string) error {
	if countryCode == "" {
		return fieldErr(FieldCountryCode, ReasonCountryFirst, "select a country code first")
	}
	cc, ok := model.LookupCountryCode(countryCode)
	if !ok {
		return fieldErr(FieldCountryCode, ReasonCountryFirst, "select a country code first")
	}
	if !digitsOnly(number) {
		return fieldErr(FieldPhone, ReasonInvalidChars, "phone number must contain digits only")
	}
	if len(number) != cc.PhoneLength {
		return fieldErr(FieldPhone, ReasonWrongLength,
			fmt.Sprintf("phone number for %s (%s) must be %d digits", cc.Country, cc.Code, cc.PhoneLength))
	}
	return nil
}

// Contact runs the full emergency-contact validation in surfacing order:
// name, relationship/other, phone-needs-country, phone length. The first
// failing field's error is returned; a valid contact returns nil.
func Contact(c model.EmergencyContact) error {
	if err := Name(c.Name); err != nil {
		return err
	}
	if c.Relationship == model.RelationshipUnset {
		return fieldErr(FieldRelationship, ReasonRequired, "select a relationship")
	}
	if err := OtherRelationship(c.Relationship, c.OtherRelationship); err != nil {
		return err
	}
	return Phone(c.CountryCode, c.PhoneNumber)
}
