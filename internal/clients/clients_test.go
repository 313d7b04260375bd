package clients_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/civicforms/lfpappeal/internal/clients"
	"github.com/civicforms/lfpappeal/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyClient_CompanyName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company/NI000123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"company_name": "EXAMPLE TRADING LTD"})
	}))
	defer srv.Close()

	name, err := clients.NewCompanyClient(srv.URL).CompanyName(context.Background(), "NI000123")
	require.NoError(t, err)
	assert.Equal(t, "EXAMPLE TRADING LTD", name)
}

func TestCompanyClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := clients.NewCompanyClient(srv.URL).CompanyName(context.Background(), "XX999999")
	assert.ErrorContains(t, err, "not found")
}

func TestEmailClient_Send(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := clients.NewEmailClient(srv.URL).Send(context.Background(), ports.Email{
		To:       "director@example.com",
		Subject:  "Appeal submitted",
		Template: "confirmation",
		Data:     map[string]any{"companyNumber": "NI000123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "director@example.com", received["to"])
	assert.Equal(t, "confirmation", received["template"])
}

func TestEmailClient_SurfacesServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := clients.NewEmailClient(srv.URL).Send(context.Background(), ports.Email{To: "x@example.com"})
	assert.ErrorContains(t, err, "502")
}

func TestFileTransferClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))

		file, header, err := r.FormFile("upload")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sick-note.pdf", header.Filename)

		body, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "evidence bytes", string(body))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "file-1"})
	}))
	defer srv.Close()

	client := clients.NewFileTransferClient(srv.URL, "secret")
	att, err := client.Upload(context.Background(), "sick-note.pdf", "application/pdf", strings.NewReader("evidence bytes"))
	require.NoError(t, err)
	assert.Equal(t, "file-1", att.ID)
	assert.Equal(t, "sick-note.pdf", att.Name)
	assert.Equal(t, "application/pdf", att.ContentType)
}
