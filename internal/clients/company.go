// Package clients holds the HTTP clients for the downstream services the
// appeal journey depends on: company profile lookup, transactional email and
// evidence file transfer.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/civicforms/lfpappeal/pkg/ports"
)

const defaultTimeout = 10 * time.Second

// CompanyClient looks up company profiles from the registry service.
type CompanyClient struct {
	baseURL string
	http    *http.Client
}

var _ ports.CompanyLookup = (*CompanyClient)(nil)

// NewCompanyClient creates a lookup client against the given base URL.
func NewCompanyClient(baseURL string) *CompanyClient {
	return &CompanyClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type companyProfile struct {
	CompanyName string `json:"company_name"`
}

// CompanyName fetches the registered name for a company number. Errors are
// returned verbatim; the caller decides whether the step can proceed.
func (c *CompanyClient) CompanyName(ctx context.Context, companyNumber string) (string, error) {
	endpoint := fmt.Sprintf("%s/company/%s", c.baseURL, url.PathEscape(companyNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build company lookup request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("company lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("company %s not found", companyNumber)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("company lookup returned status %d", resp.StatusCode)
	}

	var profile companyProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return "", fmt.Errorf("failed to decode company profile: %w", err)
	}
	return profile.CompanyName, nil
}
