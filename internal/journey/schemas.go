package journey

import (
	"regexp"

	"github.com/civicforms/lfpappeal/pkg/schema"
)

var (
	companyNumberPattern    = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)
	penaltyReferencePattern = regexp.MustCompile(`^[A-Za-z0-9/]{8,14}$`)
	emailPattern            = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	reasonPattern           = regexp.MustCompile(`^(illness|other)$`)
	yesNoPattern            = regexp.MustCompile(`^(yes|no)$`)
	datePattern             = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var yourDetailsSchema = schema.MustValidator(schema.Rules{
	"name": {
		Required:     true,
		RequiredText: "Enter your full name",
		MaxLength:    100,
	},
	"relationship": {
		Required:     true,
		RequiredText: "Tell us your relationship to the company",
		MaxLength:    100,
	},
	"email": {
		Required:     true,
		RequiredText: "Enter your email address",
		Pattern:      emailPattern,
		PatternText:  "Enter an email address in the correct format, like name@example.com",
	},
})

var penaltyDetailsSchema = schema.MustValidator(schema.Rules{
	"companyNumber": {
		Required:     true,
		RequiredText: "Enter the company number",
		Pattern:      companyNumberPattern,
		PatternText:  "Company number must be 8 characters, like NI000123",
	},
	"penaltyReference": {
		Required:     true,
		RequiredText: "Enter the penalty reference",
		Pattern:      penaltyReferencePattern,
		PatternText:  "Penalty reference is not in a recognised format",
	},
})

var chooseReasonSchema = schema.MustValidator(schema.Rules{
	"reason": {
		Required:     true,
		RequiredText: "Select a reason for the appeal",
		Pattern:      reasonPattern,
		PatternText:  "Select a reason for the appeal",
	},
})

var illnessSchema = schema.MustValidator(schema.Rules{
	"illPerson": {
		Required:     true,
		RequiredText: "Tell us who was ill",
		MaxLength:    100,
	},
	"illnessStart": {
		Required:     true,
		RequiredText: "Enter the date the illness started",
		Pattern:      datePattern,
		PatternText:  "Enter the date in the format 2024-01-31",
	},
	"continuedIllness": {
		Required:     true,
		RequiredText: "Tell us if the illness is continuing",
		Pattern:      yesNoPattern,
		PatternText:  "Tell us if the illness is continuing",
	},
	"illnessEnd": {
		Pattern:     datePattern,
		PatternText: "Enter the date in the format 2024-01-31",
	},
	"description": {
		Required:     true,
		RequiredText: "Tell us how the illness stopped the accounts being filed on time",
		MaxLength:    2000,
	},
})

var otherReasonSchema = schema.MustValidator(schema.Rules{
	"title": {
		Required:     true,
		RequiredText: "Enter a short title for the reason",
		MaxLength:    100,
	},
	"description": {
		Required:     true,
		RequiredText: "Tell us why the accounts were filed late",
		MaxLength:    2000,
	},
})
