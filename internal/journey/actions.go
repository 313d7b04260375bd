package journey

import (
	"log/slog"
	"net/http"

	"github.com/civicforms/lfpappeal/pkg/ports"
	"github.com/civicforms/lfpappeal/pkg/session"
	"github.com/civicforms/lfpappeal/pkg/wizard"
)

// maxUploadBytes caps evidence uploads at 4MB, matching the file transfer
// service's own limit.
const maxUploadBytes = 4 << 20

// UploadEvidenceHandler handles "?action=upload" on the evidence step: it
// streams the file to the transfer service, appends the returned reference
// to the appeal and redirects back to the evidence page.
func UploadEvidenceHandler(transfer ports.FileTransfer, bridge *session.Bridge, logger *slog.Logger) wizard.ActionHandler {
	return wizard.ActionHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromRequest(r)
		if !ok {
			http.Redirect(w, r, PathStart, http.StatusFound)
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			logger.Warn("evidence upload parse failed", "err", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			logger.Warn("evidence upload missing file", "err", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		defer file.Close()

		attachment, err := transfer.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			logger.Error("evidence upload failed", "err", err, "name", header.Filename)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		attachment.Size = header.Size

		sess.App.Appeal.Attachments = append(sess.App.Appeal.Attachments, attachment)
		if err := bridge.Persist(r.Context(), w, r); err != nil {
			logger.Error("session persist failed after upload", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, PathEvidence, http.StatusFound)
	})
}

// RemoveEvidenceHandler handles "?action=remove&id=..." on the evidence
// step. Removing an unknown id is a no-op redirect, not an error.
func RemoveEvidenceHandler(bridge *session.Bridge, logger *slog.Logger) wizard.ActionHandler {
	return wizard.ActionHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromRequest(r)
		if !ok {
			http.Redirect(w, r, PathStart, http.StatusFound)
			return
		}

		id := r.URL.Query().Get("id")
		kept := sess.App.Appeal.Attachments[:0]
		for _, a := range sess.App.Appeal.Attachments {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		sess.App.Appeal.Attachments = kept

		if err := bridge.Persist(r.Context(), w, r); err != nil {
			logger.Error("session persist failed after removal", "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, PathEvidence, http.StatusFound)
	})
}
