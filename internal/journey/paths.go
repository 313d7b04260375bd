// Package journey wires the late-filing-penalty appeal wizard: its step
// paths, forms, validation schemas, processors and router.
package journey

// Step paths, in canonical visitation order. The entry path doubles as the
// redirect target for sessions with no navigation ledger.
const (
	PathStart            = "/appeal-a-penalty"
	PathYourDetails      = "/appeal-a-penalty/your-details"
	PathPenaltyDetails   = "/appeal-a-penalty/penalty-details"
	PathChooseReason     = "/appeal-a-penalty/choose-reason"
	PathIllnessDetails   = "/appeal-a-penalty/illness-details"
	PathOtherReason      = "/appeal-a-penalty/other-reason"
	PathEvidence         = "/appeal-a-penalty/evidence"
	PathCheckYourAnswers = "/appeal-a-penalty/check-your-answers"
	PathConfirmation     = "/appeal-a-penalty/confirmation"
	PathSignOut          = "/signout"
)
