package ports

import (
	"context"
	"io"

	"github.com/civicforms/lfpappeal/pkg/domain"
)

// CompanyLookup resolves a registered company name from its number.
type CompanyLookup interface {
	CompanyName(ctx context.Context, companyNumber string) (string, error)
}

// Email is an outbound message handed to the email collaborator.
type Email struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

// EmailSender submits a message for delivery. Retry and backoff are the
// sender's concern, not the engine's.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

// FileTransfer uploads evidence files and returns a reference to store on
// the appeal. The bytes never enter the session.
type FileTransfer interface {
	Upload(ctx context.Context, name, contentType string, content io.Reader) (domain.Attachment, error)
}
