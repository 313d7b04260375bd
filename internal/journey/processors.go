package journey

import (
	"context"
	"fmt"
	"net/http"

	"github.com/civicforms/lfpappeal/pkg/ports"
	"github.com/civicforms/lfpappeal/pkg/session"
	"github.com/civicforms/lfpappeal/pkg/wizard"
)

// CompanyNameProcessor resolves the registered company name for the number
// just posted and writes it onto the session appeal. Failing the lookup
// fails the step: an appeal against an unknown company cannot proceed.
func CompanyNameProcessor(lookup ports.CompanyLookup) wizard.Processor {
	return wizard.ProcessorFunc(func(ctx context.Context, r *http.Request) error {
		sess, ok := session.FromRequest(r)
		if !ok {
			return nil
		}

		number := r.PostFormValue("companyNumber")
		name, err := lookup.CompanyName(ctx, number)
		if err != nil {
			return fmt.Errorf("failed to resolve company %s: %w", number, err)
		}

		sess.App.Appeal.PenaltyIdentifier.CompanyName = name
		return nil
	})
}

// ConfirmationEmailProcessor sends the submission confirmation to the
// appellant and a copy to the internal support address when configured.
// It runs on the check-your-answers POST, after which the wizard redirects
// to the confirmation page.
func ConfirmationEmailProcessor(sender ports.EmailSender, supportEmail string) wizard.Processor {
	return wizard.ProcessorFunc(func(ctx context.Context, r *http.Request) error {
		sess, ok := session.FromRequest(r)
		if !ok {
			return nil
		}
		appeal := sess.App.Appeal

		data := map[string]any{
			"userName":         appeal.CreatedBy.Name,
			"companyNumber":    appeal.PenaltyIdentifier.CompanyNumber,
			"companyName":      appeal.PenaltyIdentifier.CompanyName,
			"penaltyReference": appeal.PenaltyIdentifier.PenaltyReference,
			"reason":           reasonSummary(appeal),
		}

		if err := sender.Send(ctx, ports.Email{
			To:       appeal.CreatedBy.Email,
			Subject:  "Your appeal has been submitted",
			Template: "appeal-submission-confirmation",
			Data:     data,
		}); err != nil {
			return fmt.Errorf("failed to send confirmation email: %w", err)
		}

		if supportEmail != "" {
			if err := sender.Send(ctx, ports.Email{
				To:       supportEmail,
				Subject:  fmt.Sprintf("Appeal submitted: %s", appeal.PenaltyIdentifier.PenaltyReference),
				Template: "appeal-submission-internal",
				Data:     data,
			}); err != nil {
				return fmt.Errorf("failed to send internal copy: %w", err)
			}
		}
		return nil
	})
}
