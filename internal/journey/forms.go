package journey

import "strings"

// Every step form is flat strings decoded straight from the POST body.
// Interpretation (pointers, booleans, variants) happens in BeforeSave.

type startForm struct{}

type yourDetailsForm struct {
	Name         string `form:"name"`
	Relationship string `form:"relationship"`
	Email        string `form:"email"`
}

type penaltyDetailsForm struct {
	CompanyNumber    string `form:"companyNumber"`
	PenaltyReference string `form:"penaltyReference"`
}

type chooseReasonForm struct {
	Reason string `form:"reason"`
}

// Reason variants the choose-reason step accepts.
const (
	ReasonIllness = "illness"
	ReasonOther   = "other"
)

type illnessForm struct {
	IllPerson        string `form:"illPerson"`
	OtherPerson      string `form:"otherPerson"`
	IllnessStart     string `form:"illnessStart"`
	ContinuedIllness string `form:"continuedIllness"`
	IllnessEnd       string `form:"illnessEnd"`
	Description      string `form:"description"`
}

type otherReasonForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type evidenceForm struct{}

type checkYourAnswersForm struct{}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func sanitizeYourDetails(f yourDetailsForm) yourDetailsForm {
	trimAll(&f.Name, &f.Relationship, &f.Email)
	return f
}

func sanitizePenaltyDetails(f penaltyDetailsForm) penaltyDetailsForm {
	trimAll(&f.CompanyNumber, &f.PenaltyReference)
	f.CompanyNumber = strings.ToUpper(f.CompanyNumber)
	f.PenaltyReference = strings.ToUpper(f.PenaltyReference)
	return f
}

func sanitizeOtherReason(f otherReasonForm) otherReasonForm {
	trimAll(&f.Title, &f.Description)
	return f
}

func sanitizeIllness(f illnessForm) illnessForm {
	trimAll(&f.IllPerson, &f.OtherPerson, &f.IllnessStart, &f.IllnessEnd, &f.Description)
	return f
}
