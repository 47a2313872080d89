// Package model defines the core data types shared across triage.
package model

// Gender is the patient gender recorded during intake.
type Gender int

const (
	GenderUnset Gender = iota
	GenderMale
	GenderFemale
	GenderOther
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	case GenderOther:
		return "other"
	default:
		return ""
	}
}

// Genders lists the selectable values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Symptom is a catalog entry. Severity is an opaque label supplied by the
// assessment service; the intake client never interprets it.
type Symptom struct {
	Name        string `json:"name"`
	Severity    string `json:"severity"`
	Description string `json:"description,omitempty"`
}

// IntakeForm is the patient record built up across the wizard steps.
type IntakeForm struct {
	Age               int
	Gender            Gender
	MechanismOfInjury string
}

// CauseValidationResult is the outcome of a remote mechanism-of-injury check.
// Superseded results are discarded, never merged.
type CauseValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Assessment is the severity result returned by the assessment service.
// Read-only to the intake client.
type Assessment struct {
	SeverityLevel            string   `json:"severity_level"`
	EstimatedTimeToTreatment string   `json:"estimated_time_to_treatment"`
	RecommendedActions       []string `json:"recommended_actions"`
	ConfidenceScore          float64  `json:"confidence_score"`
}

// Relationship of an emergency contact to the patient.
type Relationship int

const (
	RelationshipUnset Relationship = iota
	RelationshipParent
	RelationshipSpouse
	RelationshipSibling
	RelationshipChild
	RelationshipFriend
	RelationshipOther
)

func (r Relationship) String() string {
	switch r {
	case RelationshipParent:
		return "parent"
	case RelationshipSpouse:
		return "spouse"
	case RelationshipSibling:
		return "sibling"
	case RelationshipChild:
		return "child"
	case RelationshipFriend:
		return "friend"
	case RelationshipOther:
		return "other"
	default:
		return ""
	}
}

// Relationships lists the selectable values in display order.
var Relationships = []Relationship{
	RelationshipParent,
	RelationshipSpouse,
	RelationshipSibling,
	RelationshipChild,
	RelationshipFriend,
	RelationshipOther,
}

// EmergencyContact is the record captured by the contact sub-form.
type EmergencyContact struct {
	Name              string       `json:"name"`
	Relationship      Relationship `json:"-"`
	OtherRelationship string       `json:"-"`
	CountryCode       string       `json:"country_code"`
	PhoneNumber       string       `json:"phone_number"`
}

// RelationshipLabel returns the relationship as stored: the free-text variant
// when Other is selected, the enum label otherwise.
func (c EmergencyContact) RelationshipLabel() string {
	if c.Relationship == RelationshipOther {
		return c.OtherRelationship
	}
	return c.Relationship.String()
}

// CountryCode is an entry in the ISD dialing table.
type CountryCode struct {
	Code        string
	Country     string
	PhoneLength int
}

// CountryCodes is the fixed ISD table used for phone validation.
var CountryCodes = []CountryCode{
	{Code: "+1", Country: "United States", PhoneLength: 10},
	{Code: "+44", Country: "United Kingdom", PhoneLength: 10},
	{Code: "+91", Country: "India", PhoneLength: 10},
	{Code: "+86", Country: "China", PhoneLength: 11},
	{Code: "+81", Country: "Japan", PhoneLength: 10},
	{Code: "+49", Country: "Germany", PhoneLength: 10},
	{Code: "+33", Country: "France", PhoneLength: 9},
	{Code: "+39", Country: "Italy", PhoneLength: 10},
	{Code: "+34", Country: "Spain", PhoneLength: 9},
	{Code: "+61", Country: "Australia", PhoneLength: 9},
}

// LookupCountryCode returns the table entry for a dialing code.
func LookupCountryCode(code string) (CountryCode, bool) {
	for _, cc := range CountryCodes {
		if cc.Code == code {
			return cc, true
		}
	}
	return CountryCode{}, false
}
