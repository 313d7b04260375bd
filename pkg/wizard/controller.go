package wizard

import (
	"log/slog"
	"net/http"

	"github.com/civicforms/lfpappeal/internal/logging"
	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/civicforms/lfpappeal/pkg/ports"
	"github.com/civicforms/lfpappeal/pkg/schema"
	"github.com/civicforms/lfpappeal/pkg/session"
)

// Controller is the generic GET/POST handler pair behind every wizard step.
// F is the shape of the form the step posts.
//
// GET renders the template with a view model derived from session state.
// POST either dispatches to a named action handler or runs the default
// pipeline: validate, sanitize, run processors in order, apply the appeal
// update, persist the session, redirect to the next step.
//
// Controllers are wired once at startup and hold no per-request state; all
// request-scoped data travels on the request itself.
type Controller[F any] struct {
	// Template is the view rendered on GET and on validation failure.
	Template string

	// Nav supplies the step's previous/next/sign-out URIs.
	Nav Navigator

	// Validator, when set, gates the default POST pipeline.
	Validator *schema.Validator

	// Sanitize, when set, replaces the decoded form before processors run.
	Sanitize func(F) F

	// Processors run sequentially after validation; any failure aborts the
	// pipeline with nothing committed.
	Processors []Processor

	// Actions maps action names to alternate POST handlers.
	Actions map[string]ActionHandler

	// ChangeMode, when set, wraps Nav with change-mode interception.
	ChangeMode ChangeModeAction

	// ViewModel derives GET view data from the whole session. Steps that
	// only need appeal fields use ViewModelFromAppeal instead.
	ViewModel func(sess *session.Session) map[string]any

	// ViewModelFromAppeal derives GET view data from the appeal alone.
	ViewModelFromAppeal func(appeal domain.Appeal) map[string]any

	// BeforeSave computes the updated appeal from the current one and the
	// posted form. Returning the appeal unchanged is the default.
	BeforeSave func(appeal domain.Appeal, form F) domain.Appeal

	// Renderer renders templates; Bridge persists sessions.
	Renderer ports.Renderer
	Bridge   *session.Bridge

	Logger *slog.Logger
}

// navigator returns the step navigator, change-mode wrapped when configured.
func (c *Controller[F]) navigator() Navigator {
	return WithChangeMode(c.Nav, c.ChangeMode)
}

func (c *Controller[F]) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.NewNop()
}

// Get renders the step. Repeated GETs with unchanged session state render
// an identical view model; nothing here mutates the session.
func (c *Controller[F]) Get(w http.ResponseWriter, r *http.Request) {
	data := c.viewModel(r)
	mergeInto(data, c.navigationConfig(r))
	data["templateName"] = c.Template

	c.render(w, r, http.StatusOK, data)
}

// Post dispatches to a named action handler when the request carries an
// "action" query parameter, otherwise runs the default pipeline.
func (c *Controller[F]) Post(w http.ResponseWriter, r *http.Request) {
	if action := r.URL.Query().Get("action"); action != "" {
		handler, ok := c.Actions[action]
		if !ok {
			err := &ConfigError{Action: action}
			c.logger().Error("action dispatch failed", "err", err, "path", r.URL.Path)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		handler.Handle(w, r)
		return
	}

	c.defaultHandler(w, r)
}

// defaultHandler is the validate -> sanitize -> process -> persist ->
// redirect pipeline. Each stage is terminal on failure; later stages only
// run once every earlier stage succeeded, so a failed validation never
// reaches a processor and a failed processor never commits session state.
func (c *Controller[F]) defaultHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.logger().Warn("form parse failed", "err", err, "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	values := formValues(r)

	if c.Validator != nil {
		result := c.Validator.Validate(values)
		if !result.Valid() {
			// Re-render on top of the GET view model so the template sees
			// the same keys, with posted values overlaid for re-display.
			data := c.viewModel(r)
			data["templateName"] = c.Template
			data["validationResult"] = result
			for k, v := range values {
				data[k] = v
			}
			mergeInto(data, c.navigationConfig(r))
			c.render(w, r, http.StatusUnprocessableEntity, data)
			return
		}
	}

	form, err := decodeForm[F](values)
	if err != nil {
		c.logger().Error("form decode failed", "err", err, "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if c.Sanitize != nil {
		form = c.Sanitize(form)

		// Processors read the request body, so the sanitized values replace
		// the raw submission before the chain runs.
		sanitized, err := encodeForm(form)
		if err != nil {
			c.logger().Error("form encode failed", "err", err, "path", r.URL.Path)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		for k, v := range sanitized {
			r.PostForm.Set(k, v)
		}
	}

	ctx := r.Context()
	for _, p := range c.Processors {
		if err := p.Process(ctx, r); err != nil {
			// Propagated verbatim: no retry, no partial commit. The error
			// page is the outer middleware's concern.
			c.logger().Error("processor failed", "err", err, "path", r.URL.Path)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	if sess, ok := session.FromRequest(r); ok {
		appeal := sess.App.Appeal.Clone()
		if c.BeforeSave != nil {
			appeal = c.BeforeSave(appeal, form)
		}
		sess.App.Appeal = appeal

		if err := c.Bridge.Persist(ctx, w, r); err != nil {
			c.logger().Error("session persist failed", "err", err, "path", r.URL.Path)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, c.navigator().Next(r), http.StatusFound)
}

// viewModel reads the session-level hook first, then the appeal-shaped one.
// The two-level indirection lets steps that only care about appeal fields
// skip straight to the appeal hook.
func (c *Controller[F]) viewModel(r *http.Request) map[string]any {
	sess, ok := session.FromRequest(r)

	if c.ViewModel != nil && ok {
		if data := c.ViewModel(sess); data != nil {
			return data
		}
		return map[string]any{}
	}

	var appeal domain.Appeal
	if ok {
		appeal = sess.App.Appeal
	}
	if c.ViewModelFromAppeal != nil {
		if data := c.ViewModelFromAppeal(appeal); data != nil {
			return data
		}
	}
	return map[string]any{}
}

// navigationConfig builds the navigation block every template receives.
func (c *Controller[F]) navigationConfig(r *http.Request) map[string]any {
	nav := c.navigator()
	actions := nav.Actions(IsChangeMode(r))
	if actions == nil {
		actions = map[string]Link{}
	}
	return map[string]any{
		"navigation": map[string]any{
			"back":    Link{Href: nav.Previous(r)},
			"forward": Link{Href: nav.Next(r)},
			"signOut": Link{Href: nav.SignOut(r)},
			"actions": actions,
		},
	}
}

func (c *Controller[F]) render(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if status != http.StatusOK {
		// Headers must precede the status line; the renderer's own header
		// writes would be too late here.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	if err := c.Renderer.Render(w, c.Template, data); err != nil {
		c.logger().Error("render failed", "err", err, "template", c.Template)
	}
}

// formValues flattens the posted body to first-value-wins strings, matching
// the dotted field paths validators use.
func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(r.PostForm))
	for key, vals := range r.PostForm {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}
	return values
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}
