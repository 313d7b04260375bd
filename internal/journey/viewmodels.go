package journey

import "github.com/civicforms/lfpappeal/pkg/domain"

func withGuidance(template string, data map[string]any) map[string]any {
	g := Guidance(template)
	data["heading"] = g.Heading
	data["guidance"] = g.Body
	return data
}

func yourDetailsViewModel(appeal domain.Appeal) map[string]any {
	return withGuidance("your-details", map[string]any{
		"name":         appeal.CreatedBy.Name,
		"relationship": appeal.CreatedBy.Relationship,
		"email":        appeal.CreatedBy.Email,
	})
}

func penaltyDetailsViewModel(appeal domain.Appeal) map[string]any {
	return withGuidance("penalty-details", map[string]any{
		"companyNumber":    appeal.PenaltyIdentifier.CompanyNumber,
		"penaltyReference": appeal.PenaltyIdentifier.PenaltyReference,
	})
}

func chooseReasonViewModel(appeal domain.Appeal) map[string]any {
	return withGuidance("choose-reason", map[string]any{
		"reason": selectedReason(appeal),
	})
}

func illnessViewModel(appeal domain.Appeal) map[string]any {
	data := map[string]any{}
	if ill := appeal.Reasons.Illness; ill != nil {
		data["illPerson"] = ill.IllPerson
		data["otherPerson"] = ill.OtherPerson
		data["illnessStart"] = ill.IllnessStart
		data["continuedIllness"] = yesNo(ill.ContinuedIllness)
		data["illnessEnd"] = ill.IllnessEnd
		data["description"] = ill.Description
	}
	return withGuidance("illness-details", data)
}

func otherReasonViewModel(appeal domain.Appeal) map[string]any {
	data := map[string]any{}
	if other := appeal.Reasons.Other; other != nil {
		data["title"] = other.Title
		data["description"] = other.Description
	}
	return withGuidance("other-reason", data)
}

func evidenceViewModel(appeal domain.Appeal) map[string]any {
	return withGuidance("evidence", map[string]any{
		"attachments": appeal.Attachments,
	})
}

func checkYourAnswersViewModel(appeal domain.Appeal) map[string]any {
	return withGuidance("check-your-answers", map[string]any{
		"createdBy":         appeal.CreatedBy,
		"penaltyIdentifier": appeal.PenaltyIdentifier,
		"reasonSummary":     reasonSummary(appeal),
		"attachments":       appeal.Attachments,
		"changeParam":       "cm",
	})
}

func confirmationViewModel(appeal domain.Appeal) map[string]any {
	return withGuidance("confirmation", map[string]any{
		"penaltyReference": appeal.PenaltyIdentifier.PenaltyReference,
		"companyName":      appeal.PenaltyIdentifier.CompanyName,
		"email":            appeal.CreatedBy.Email,
	})
}

// selectedReason reports which reason variant, if any, the appeal carries.
func selectedReason(appeal domain.Appeal) string {
	switch {
	case appeal.Reasons.Illness != nil:
		return ReasonIllness
	case appeal.Reasons.Other != nil:
		return ReasonOther
	default:
		return ""
	}
}

// reasonSummary is the one-line reason description shown on the summary
// page and in confirmation emails.
func reasonSummary(appeal domain.Appeal) string {
	switch {
	case appeal.Reasons.Illness != nil:
		return "Illness: " + appeal.Reasons.Illness.Description
	case appeal.Reasons.Other != nil:
		return appeal.Reasons.Other.Title + ": " + appeal.Reasons.Other.Description
	default:
		return ""
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
