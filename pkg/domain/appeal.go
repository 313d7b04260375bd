package domain

// CreatedBy identifies the person submitting the appeal.
type CreatedBy struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Email        string `json:"email,omitempty"`
}

// PenaltyIdentifier ties the appeal to a specific penalty notice.
// CompanyName is resolved by the company-lookup processor, never typed in
// by the user.
type PenaltyIdentifier struct {
	CompanyNumber    string `json:"company_number,omitempty"`
	PenaltyReference string `json:"penalty_reference,omitempty"`
	CompanyName      string `json:"company_name,omitempty"`
}

// OtherReason is the free-text appeal reason.
type OtherReason struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Illness is the structured illness appeal reason.
type Illness struct {
	IllPerson        string `json:"ill_person,omitempty"`
	OtherPerson      string `json:"other_person,omitempty"`
	IllnessStart     string `json:"illness_start,omitempty"`
	ContinuedIllness bool   `json:"continued_illness,omitempty"`
	IllnessEnd       string `json:"illness_end,omitempty"`
	Description      string `json:"description,omitempty"`
}

// Reasons holds at most one populated reason variant.
// A nil pointer means "not yet provided"; controllers check the pointer
// rather than sniffing zero values.
type Reasons struct {
	Other   *OtherReason `json:"other,omitempty"`
	Illness *Illness     `json:"illness,omitempty"`
}

// Attachment is a reference to evidence already uploaded to the file
// transfer service. The bytes themselves never enter the session.
type Attachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// Appeal is the in-progress wizard submission. It lives inside
// ApplicationData and is only ever reached through the session.
type Appeal struct {
	CreatedBy         CreatedBy         `json:"created_by"`
	PenaltyIdentifier PenaltyIdentifier `json:"penalty_identifier"`
	Reasons           Reasons           `json:"reasons"`
	Attachments       []Attachment      `json:"attachments,omitempty"`
}

// Clone returns a deep copy of the appeal so callers can build a candidate
// update without mutating the session copy in place.
func (a Appeal) Clone() Appeal {
	out := a
	if a.Reasons.Other != nil {
		other := *a.Reasons.Other
		out.Reasons.Other = &other
	}
	if a.Reasons.Illness != nil {
		illness := *a.Reasons.Illness
		out.Reasons.Illness = &illness
	}
	if a.Attachments != nil {
		out.Attachments = make([]Attachment, len(a.Attachments))
		copy(out.Attachments, a.Attachments)
	}
	return out
}
