package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/civicforms/lfpappeal/pkg/ports"
)

// FileTransferClient uploads evidence files to the file transfer service and
// returns the reference stored on the appeal. File bytes stream through and
// are never buffered into session state.
type FileTransferClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ ports.FileTransfer = (*FileTransferClient)(nil)

// NewFileTransferClient creates an upload client against the given base URL.
func NewFileTransferClient(baseURL, apiKey string) *FileTransferClient {
	return &FileTransferClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type uploadResponse struct {
	ID string `json:"id"`
}

// Upload sends one file as multipart form data and returns the attachment
// reference the service assigned.
func (c *FileTransferClient) Upload(ctx context.Context, name, contentType string, content io.Reader) (domain.Attachment, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("upload", name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return domain.Attachment{}, fmt.Errorf("file transfer service returned status %d", resp.StatusCode)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return domain.Attachment{}, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return domain.Attachment{
		ID:          uploaded.ID,
		Name:        name,
		ContentType: contentType,
	}, nil
}
