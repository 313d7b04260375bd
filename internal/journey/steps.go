package journey

import (
	"log/slog"
	"net/http"

	"github.com/civicforms/lfpappeal/internal/logging"
	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/civicforms/lfpappeal/pkg/ports"
	"github.com/civicforms/lfpappeal/pkg/session"
	"github.com/civicforms/lfpappeal/pkg/wizard"
	"github.com/go-chi/chi/v5"
)

// Deps carries everything the journey needs wired in. Nil collaborators
// disable the step behavior that depends on them: no CompanyLookup means
// company names are not resolved, no FileTransfer means the upload action
// is not registered.
type Deps struct {
	Renderer      ports.Renderer
	Bridge        *session.Bridge
	Logger        *slog.Logger
	CompanyLookup ports.CompanyLookup
	EmailSender   ports.EmailSender
	FileTransfer  ports.FileTransfer
	SupportEmail  string
}

func (d *Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return logging.NewNop()
}

// Router builds the wizard's route tree. The session loader middleware must
// already be applied by the caller; every handler here assumes a session is
// attached to the request.
func Router(deps Deps) chi.Router {
	r := chi.NewRouter()
	toSummary := wizard.FixedChangeModeAction(PathCheckYourAnswers)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, PathStart, http.StatusFound)
	})

	mount(r, PathStart, wizard.Guard(wizard.Controller[startForm]{
		Template: "start",
		Nav:      wizard.Static("", PathYourDetails, PathSignOut),
		ViewModelFromAppeal: func(domain.Appeal) map[string]any {
			return withGuidance("start", map[string]any{})
		},
		Renderer: deps.Renderer,
		Bridge:   deps.Bridge,
		Logger:   deps.Logger,
	}, PathStart))

	mount(r, PathYourDetails, wizard.Guard(wizard.Controller[yourDetailsForm]{
		Template:            "your-details",
		Nav:                 wizard.Static(PathStart, PathPenaltyDetails, PathSignOut),
		Validator:           yourDetailsSchema,
		Sanitize:            sanitizeYourDetails,
		ChangeMode:          toSummary,
		ViewModelFromAppeal: yourDetailsViewModel,
		BeforeSave: func(appeal domain.Appeal, f yourDetailsForm) domain.Appeal {
			appeal.CreatedBy = domain.CreatedBy{
				Name:         f.Name,
				Relationship: f.Relationship,
				Email:        f.Email,
			}
			return appeal
		},
		Renderer: deps.Renderer,
		Bridge:   deps.Bridge,
		Logger:   deps.Logger,
	}, PathStart))

	var penaltyProcessors []wizard.Processor
	if deps.CompanyLookup != nil {
		penaltyProcessors = append(penaltyProcessors, CompanyNameProcessor(deps.CompanyLookup))
	}
	mount(r, PathPenaltyDetails, wizard.Guard(wizard.Controller[penaltyDetailsForm]{
		Template:            "penalty-details",
		Nav:                 wizard.Static(PathYourDetails, PathChooseReason, PathSignOut),
		Validator:           penaltyDetailsSchema,
		Sanitize:            sanitizePenaltyDetails,
		Processors:          penaltyProcessors,
		ChangeMode:          toSummary,
		ViewModelFromAppeal: penaltyDetailsViewModel,
		BeforeSave: func(appeal domain.Appeal, f penaltyDetailsForm) domain.Appeal {
			appeal.PenaltyIdentifier.CompanyNumber = f.CompanyNumber
			appeal.PenaltyIdentifier.PenaltyReference = f.PenaltyReference
			return appeal
		},
		Renderer: deps.Renderer,
		Bridge:   deps.Bridge,
		Logger:   deps.Logger,
	}, PathStart))

	mount(r, PathChooseReason, wizard.Guard(wizard.Controller[chooseReasonForm]{
		Template:            "choose-reason",
		Nav:                 reasonNav(PathPenaltyDetails),
		Validator:           chooseReasonSchema,
		ViewModelFromAppeal: chooseReasonViewModel,
		BeforeSave: func(appeal domain.Appeal, f chooseReasonForm) domain.Appeal {
			// Switching variants discards the other variant's answers.
			switch f.Reason {
			case ReasonIllness:
				appeal.Reasons.Other = nil
				if appeal.Reasons.Illness == nil {
					appeal.Reasons.Illness = &domain.Illness{}
				}
			case ReasonOther:
				appeal.Reasons.Illness = nil
				if appeal.Reasons.Other == nil {
					appeal.Reasons.Other = &domain.OtherReason{}
				}
			}
			return appeal
		},
		Renderer: deps.Renderer,
		Bridge:   deps.Bridge,
		Logger:   deps.Logger,
	}, PathStart))

	mount(r, PathIllnessDetails, wizard.Guard(wizard.Controller[illnessForm]{
		Template:            "illness-details",
		Nav:                 wizard.Static(PathChooseReason, PathEvidence, PathSignOut),
		Validator:           illnessSchema,
		Sanitize:            sanitizeIllness,
		ChangeMode:          toSummary,
		ViewModelFromAppeal: illnessViewModel,
		BeforeSave: func(appeal domain.Appeal, f illnessForm) domain.Appeal {
			appeal.Reasons.Other = nil
			appeal.Reasons.Illness = &domain.Illness{
				IllPerson:        f.IllPerson,
				OtherPerson:      f.OtherPerson,
				IllnessStart:     f.IllnessStart,
				ContinuedIllness: f.ContinuedIllness == "yes",
				IllnessEnd:       f.IllnessEnd,
				Description:      f.Description,
			}
			return appeal
		},
		Renderer: deps.Renderer,
		Bridge:   deps.Bridge,
		Logger:   deps.Logger,
	}, PathStart))

	mount(r, PathOtherReason, wizard.Guard(wizard.Controller[otherReasonForm]{
		Template:            "other-reason",
		Nav:                 wizard.Static(PathChooseReason, PathEvidence, PathSignOut),
		Validator:           otherReasonSchema,
		Sanitize:            sanitizeOtherReason,
		ChangeMode:          toSummary,
		ViewModelFromAppeal: otherReasonViewModel,
		BeforeSave: func(appeal domain.Appeal, f otherReasonForm) domain.Appeal {
			appeal.Reasons.Illness = nil
			appeal.Reasons.Other = &domain.OtherReason{
				Title:       f.Title,
				Description: f.Description,
			}
			return appeal
		},
		Renderer: deps.Renderer,
		Bridge:   deps.Bridge,
		Logger:   deps.Logger,
	}, PathStart))

	evidenceActions := map[string]wizard.ActionHandler{
		"remove": RemoveEvidenceHandler(deps.Bridge, deps.logger()),
	}
	if deps.FileTransfer != nil {
		evidenceActions["upload"] = UploadEvidenceHandler(deps.FileTransfer, deps.Bridge, deps.logger())
	}
	mount(r, PathEvidence, wizard.Guard(wizard.Controller[evidenceForm]{
		Template:            "evidence",
		Nav:                 evidenceNav(),
		Actions:             evidenceActions,
		ViewModelFromAppeal: evidenceViewModel,
		Renderer:            deps.Renderer,
		Bridge:              deps.Bridge,
		Logger:              deps.Logger,
	}, PathStart))

	var summaryProcessors []wizard.Processor
	if deps.EmailSender != nil {
		summaryProcessors = append(summaryProcessors, ConfirmationEmailProcessor(deps.EmailSender, deps.SupportEmail))
	}
	mount(r, PathCheckYourAnswers, wizard.Guard(wizard.Controller[checkYourAnswersForm]{
		Template:            "check-your-answers",
		Nav:                 wizard.Static(PathEvidence, PathConfirmation, PathSignOut),
		Processors:          summaryProcessors,
		ViewModelFromAppeal: checkYourAnswersViewModel,
		Renderer:            deps.Renderer,
		Bridge:              deps.Bridge,
		Logger:              deps.Logger,
	}, PathStart))

	confirmation := wizard.Guard(wizard.Controller[struct{}]{
		Template:            "confirmation",
		Nav:                 wizard.Static("", "", PathSignOut),
		ViewModelFromAppeal: confirmationViewModel,
		Renderer:            deps.Renderer,
		Bridge:              deps.Bridge,
		Logger:              deps.Logger,
	}, PathStart)
	r.Get(PathConfirmation, confirmation.Get)

	r.Get(PathSignOut, signOutHandler(deps))

	return r
}

// mount registers a guarded step's GET and POST handlers.
func mount[F any](r chi.Router, path string, ctrl *wizard.GuardedController[F]) {
	r.Get(path, ctrl.Get)
	r.Post(path, ctrl.Post)
}

// reasonNav routes forward from the choose-reason step to whichever detail
// page matches the reason stored on the session.
func reasonNav(previous string) wizard.Navigation {
	return wizard.Navigation{
		PreviousFunc: func(*http.Request) string { return previous },
		NextFunc: func(r *http.Request) string {
			if sess, ok := session.FromRequest(r); ok && selectedReason(sess.App.Appeal) == ReasonIllness {
				return PathIllnessDetails
			}
			return PathOtherReason
		},
		SignOutFunc: func(*http.Request) string { return PathSignOut },
	}
}

// evidenceNav routes backward from the evidence step to the detail page the
// user came through.
func evidenceNav() wizard.Navigation {
	return wizard.Navigation{
		PreviousFunc: func(r *http.Request) string {
			if sess, ok := session.FromRequest(r); ok && selectedReason(sess.App.Appeal) == ReasonIllness {
				return PathIllnessDetails
			}
			return PathOtherReason
		},
		NextFunc:    func(*http.Request) string { return PathCheckYourAnswers },
		SignOutFunc: func(*http.Request) string { return PathSignOut },
	}
}

// signOutHandler deletes the server-side session, expires the cookie and
// returns the user to the start page.
func signOutHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromRequest(r); ok {
			if err := deps.Bridge.Sessions().Delete(r.Context(), sess.Cookie); err != nil {
				deps.logger().Error("session delete failed on sign out", "err", err)
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     deps.Bridge.CookieName(),
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
		http.Redirect(w, r, PathStart, http.StatusFound)
	}
}
