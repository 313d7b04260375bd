package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/civicforms/lfpappeal/pkg/ports"
)

// EmailClient submits messages to the transactional email service. Delivery
// is asynchronous on the service side; a 2xx response means accepted, not
// delivered.
type EmailClient struct {
	baseURL string
	http    *http.Client
}

var _ ports.EmailSender = (*EmailClient)(nil)

// NewEmailClient creates an email client against the given base URL.
func NewEmailClient(baseURL string) *EmailClient {
	return &EmailClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type emailRequest struct {
	To        string         `json:"to"`
	Subject   string         `json:"subject"`
	Template  string         `json:"template"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Send submits one message. No retries: a failed send surfaces to the step
// that requested it.
func (c *EmailClient) Send(ctx context.Context, email ports.Email) error {
	body, err := json.Marshal(emailRequest{
		To:        email.To,
		Subject:   email.Subject,
		Template:  email.Template,
		Data:      email.Data,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}
	return nil
}
