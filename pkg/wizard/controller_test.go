package wizard_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/civicforms/lfpappeal/pkg/schema"
	"github.com/civicforms/lfpappeal/pkg/session"
	"github.com/civicforms/lfpappeal/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorderStore counts store calls and keeps the last write, so tests can
// assert exactly-once persistence and inspect what was committed.
type recorderStore struct {
	mu         sync.Mutex
	storeCalls int
	lastCookie string
	lastData   *domain.ApplicationData
}

func (s *recorderStore) Store(ctx context.Context, cookie string, data *domain.ApplicationData, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeCalls++
	s.lastCookie = cookie
	s.lastData = data.Clone()
	return nil
}

func (s *recorderStore) Load(ctx context.Context, cookie string) (*domain.ApplicationData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastData == nil || s.lastCookie != cookie {
		return nil, domain.ErrSessionNotFound
	}
	return s.lastData.Clone(), nil
}

func (s *recorderStore) Delete(ctx context.Context, cookie string) error { return nil }

func (s *recorderStore) List(ctx context.Context) ([]string, error) { return nil, nil }

// fakeRenderer records what was rendered and emits a marker body.
type fakeRenderer struct {
	templates []string
	lastData  map[string]any
}

func (f *fakeRenderer) Render(w http.ResponseWriter, template string, data map[string]any) error {
	f.templates = append(f.templates, template)
	f.lastData = data
	_, err := fmt.Fprintf(w, "render:%s", template)
	return err
}

type testForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

func newBridge(store *recorderStore) *session.Bridge {
	return session.NewBridge(
		session.NewManager(store),
		session.WithCookieName("test_session"),
	)
}

func getRequest(rawURL string, sess *session.Session) *http.Request {
	r := httptest.NewRequest(http.MethodGet, rawURL, nil)
	if sess != nil {
		r = session.Attach(r, sess)
	}
	return r
}

func postRequest(rawURL string, form url.Values, sess *session.Session) *http.Request {
	r := httptest.NewRequest(http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sess != nil {
		r = session.Attach(r, sess)
	}
	return r
}

func navLinks(t *testing.T, data map[string]any) map[string]any {
	t.Helper()
	nav, ok := data["navigation"].(map[string]any)
	require.True(t, ok, "view data must carry a navigation block")
	return nav
}

func TestController_Get_IdempotentViewModel(t *testing.T) {
	renderer := &fakeRenderer{}
	ctrl := &wizard.Controller[testForm]{
		Template: "other-reason",
		Nav:      wizard.Static("/prev", "/next", "/signout"),
		ViewModelFromAppeal: func(appeal domain.Appeal) map[string]any {
			if appeal.Reasons.Other == nil {
				return map[string]any{}
			}
			return map[string]any{"title": appeal.Reasons.Other.Title}
		},
		Renderer: renderer,
		Bridge:   newBridge(&recorderStore{}),
	}

	sess := session.New("cookie-1")
	sess.App.Appeal.Reasons.Other = &domain.OtherReason{Title: "Flooding"}

	w1 := httptest.NewRecorder()
	ctrl.Get(w1, getRequest("/step", sess))
	first := renderer.lastData

	w2 := httptest.NewRecorder()
	ctrl.Get(w2, getRequest("/step", sess))
	second := renderer.lastData

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, first, second, "repeated GETs must render identical view models")
	assert.Equal(t, "Flooding", second["title"])
	assert.Equal(t, "other-reason", second["templateName"])
}

func TestController_Get_NavigationConfig(t *testing.T) {
	renderer := &fakeRenderer{}
	ctrl := &wizard.Controller[testForm]{
		Template: "step",
		Nav: wizard.Navigation{
			PreviousFunc: func(*http.Request) string { return "/prev" },
			NextFunc:     func(*http.Request) string { return "/next" },
			SignOutFunc:  func(*http.Request) string { return "/signout" },
			ActionsFunc: func(changeMode bool) map[string]wizard.Link {
				return map[string]wizard.Link{"remove": {Href: "/remove"}}
			},
		},
		Renderer: renderer,
		Bridge:   newBridge(&recorderStore{}),
	}

	w := httptest.NewRecorder()
	ctrl.Get(w, getRequest("/step", session.New("c")))

	nav := navLinks(t, renderer.lastData)
	assert.Equal(t, wizard.Link{Href: "/prev"}, nav["back"])
	assert.Equal(t, wizard.Link{Href: "/next"}, nav["forward"])
	assert.Equal(t, wizard.Link{Href: "/signout"}, nav["signOut"])
	assert.Equal(t, map[string]wizard.Link{"remove": {Href: "/remove"}}, nav["actions"])
}

func TestController_Get_ChangeModeOverridesLinks(t *testing.T) {
	renderer := &fakeRenderer{}
	ctrl := &wizard.Controller[testForm]{
		Template:   "step",
		Nav:        wizard.Static("/prev", "/next", "/signout"),
		ChangeMode: wizard.FixedChangeModeAction("/check-your-answers"),
		Renderer:   renderer,
		Bridge:     newBridge(&recorderStore{}),
	}

	w := httptest.NewRecorder()
	ctrl.Get(w, getRequest("/step?cm=1", session.New("c")))

	nav := navLinks(t, renderer.lastData)
	assert.Equal(t, wizard.Link{Href: "/check-your-answers"}, nav["forward"])
	assert.Equal(t, wizard.Link{Href: "/check-your-answers"}, nav["back"])

	// Without the flag the step's own links stand.
	ctrl.Get(httptest.NewRecorder(), getRequest("/step", session.New("c")))
	nav = navLinks(t, renderer.lastData)
	assert.Equal(t, wizard.Link{Href: "/next"}, nav["forward"])
	assert.Equal(t, wizard.Link{Href: "/prev"}, nav["back"])
}

func TestController_Post_InvalidRenders422(t *testing.T) {
	renderer := &fakeRenderer{}
	sanitizeCalled := false
	processorCalled := false

	ctrl := &wizard.Controller[testForm]{
		Template: "other-reason",
		Nav:      wizard.Static("/prev", "/next", "/signout"),
		Validator: schema.MustValidator(schema.Rules{
			"title":       {Required: true},
			"description": {Required: true},
		}),
		Sanitize: func(f testForm) testForm {
			sanitizeCalled = true
			return f
		},
		Processors: []wizard.Processor{
			wizard.ProcessorFunc(func(context.Context, *http.Request) error {
				processorCalled = true
				return nil
			}),
		},
		Renderer: renderer,
		Bridge:   newBridge(&recorderStore{}),
	}

	w := httptest.NewRecorder()
	ctrl.Post(w, postRequest("/step", url.Values{"title": {""}}, session.New("c")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"other-reason"}, renderer.templates, "must re-render the same template")

	result, ok := renderer.lastData["validationResult"].(schema.Result)
	require.True(t, ok)
	assert.Len(t, result.Errors(), 2, "all violations collected in one pass")

	assert.False(t, sanitizeCalled, "sanitize must not run after failed validation")
	assert.False(t, processorCalled, "processors must not run after failed validation")
}

func TestController_Post_EchoesBodyOn422(t *testing.T) {
	renderer := &fakeRenderer{}
	ctrl := &wizard.Controller[testForm]{
		Template: "other-reason",
		Nav:      wizard.Static("/prev", "/next", "/signout"),
		Validator: schema.MustValidator(schema.Rules{
			"title":       {Required: true},
			"description": {Required: true},
		}),
		Renderer: renderer,
		Bridge:   newBridge(&recorderStore{}),
	}

	w := httptest.NewRecorder()
	form := url.Values{"title": {"Flooding at the registered office"}}
	ctrl.Post(w, postRequest("/step", form, session.New("c")))

	assert.Equal(t, "Flooding at the registered office", renderer.lastData["title"],
		"submitted values must be echoed for re-display")
}

func TestController_Post_DefaultPipeline(t *testing.T) {
	store := &recorderStore{}
	renderer := &fakeRenderer{}

	ctrl := &wizard.Controller[testForm]{
		Template: "other-reason",
		Nav:      wizard.Static("/prev", "/next", "/signout"),
		Validator: schema.MustValidator(schema.Rules{
			"title": {Required: true},
		}),
		Sanitize: func(f testForm) testForm {
			f.Title = strings.TrimSpace(f.Title)
			return f
		},
		BeforeSave: func(appeal domain.Appeal, form testForm) domain.Appeal {
			appeal.Reasons.Other = &domain.OtherReason{Title: form.Title, Description: form.Description}
			return appeal
		},
		Renderer: renderer,
		Bridge:   newBridge(store),
	}

	sess := session.New("cookie-from-request")
	w := httptest.NewRecorder()
	ctrl.Post(w, postRequest("/step", url.Values{"title": {"  Flooding  "}}, sess))

	// Redirect to navigation.Next.
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/next", w.Header().Get("Location"))

	// Store called exactly once, keyed by the round-tripped cookie value.
	assert.Equal(t, 1, store.storeCalls)
	assert.Equal(t, "cookie-from-request", store.lastCookie)
	require.NotNil(t, store.lastData.Appeal.Reasons.Other)
	assert.Equal(t, "Flooding", store.lastData.Appeal.Reasons.Other.Title, "sanitized form must be what is saved")

	// Response refreshes the same cookie value the client presented.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test_session", cookies[0].Name)
	assert.Equal(t, "cookie-from-request", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestController_Post_ProcessorsSeeSanitizedBody(t *testing.T) {
	var observed string

	ctrl := &wizard.Controller[testForm]{
		Template: "penalty-details",
		Nav:      wizard.Static("/prev", "/next", "/signout"),
		Sanitize: func(f testForm) testForm {
			f.Title = strings.ToUpper(strings.TrimSpace(f.Title))
			return f
		},
		Processors: []wizard.Processor{
			wizard.ProcessorFunc(func(ctx context.Context, r *http.Request) error {
				observed = r.PostFormValue("title")
				return nil
			}),
		},
		Renderer: &fakeRenderer{},
		Bridge:   newBridge(&recorderStore{}),
	}

	w := httptest.NewRecorder()
	ctrl.Post(w, postRequest("/step", url.Values{"title": {"  ni000123  "}}, session.New("c")))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "NI000123", observed,
		"processors must read the sanitized body, not the raw submission")
}

func TestController_Post_ProcessorsRunSequentially(t *testing.T) {
	store := &recorderStore{}
	var observed string

	first := wizard.ProcessorFunc(func(ctx context.Context, r *http.Request) error {
		sess, _ := session.FromRequest(r)
		sess.App.Appeal.PenaltyIdentifier.CompanyName = "EXAMPLE TRADING LTD"
		return nil
	})
	second := wizard.ProcessorFunc(func(ctx context.Context, r *http.Request) error {
		sess, _ := session.FromRequest(r)
		// Must observe the first processor's write.
		observed = sess.App.Appeal.PenaltyIdentifier.CompanyName
		return nil
	})

	ctrl := &wizard.Controller[testForm]{
		Template:   "penalty-details",
		Nav:        wizard.Static("/prev", "/next", "/signout"),
		Processors: []wizard.Processor{first, second},
		Renderer:   &fakeRenderer{},
		Bridge:     newBridge(store),
	}

	w := httptest.NewRecorder()
	ctrl.Post(w, postRequest("/step", url.Values{}, session.New("c")))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "EXAMPLE TRADING LTD", observed, "second processor must see the first's session write")
}

func TestController_Post_ProcessorFailureCommitsNothing(t *testing.T) {
	store := &recorderStore{}
	secondRan := false

	failing := wizard.ProcessorFunc(func(context.Context, *http.Request) error {
		return fmt.Errorf("company lookup unavailable")
	})
	after := wizard.ProcessorFunc(func(context.Context, *http.Request) error {
		secondRan = true
		return nil
	})

	ctrl := &wizard.Controller[testForm]{
		Template:   "penalty-details",
		Nav:        wizard.Static("/prev", "/next", "/signout"),
		Processors: []wizard.Processor{failing, after},
		Renderer:   &fakeRenderer{},
		Bridge:     newBridge(store),
	}

	w := httptest.NewRecorder()
	ctrl.Post(w, postRequest("/step", url.Values{}, session.New("c")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, secondRan, "a failed processor aborts the chain")
	assert.Zero(t, store.storeCalls, "no partial-success state is committed")
}

func TestController_Post_NamedActionBypassesPipeline(t *testing.T) {
	store := &recorderStore{}
	ctrl := &wizard.Controller[testForm]{
		Template: "evidence-upload",
		Nav:      wizard.Static("/prev", "/next", "/signout"),
		Validator: schema.MustValidator(schema.Rules{
			"title": {Required: true},
		}),
		Actions: map[string]wizard.ActionHandler{
			"upload": wizard.ActionHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			}),
		},
		Renderer: &fakeRenderer{},
		Bridge:   newBridge(store),
	}

	w := httptest.NewRecorder()
	ctrl.Post(w, postRequest("/step?action=upload", url.Values{}, session.New("c")))

	// The named handler owns the response; validation and persistence are
	// bypassed entirely.
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Zero(t, store.storeCalls)
}

func TestController_Post_UnknownActionIsConfigError(t *testing.T) {
	ctrl := &wizard.Controller[testForm]{
		Template: "step",
		Nav:      wizard.Static("/prev", "/next", "/signout"),
		Renderer: &fakeRenderer{},
		Bridge:   newBridge(&recorderStore{}),
	}

	w := httptest.NewRecorder()
	ctrl.Post(w, postRequest("/step?action=nope", url.Values{}, session.New("c")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestController_Post_NoSessionSkipsPersist(t *testing.T) {
	store := &recorderStore{}
	ctrl := &wizard.Controller[testForm]{
		Template: "step",
		Nav:      wizard.Static("/prev", "/next", "/signout"),
		Renderer: &fakeRenderer{},
		Bridge:   newBridge(store),
	}

	w := httptest.NewRecorder()
	ctrl.Post(w, postRequest("/step", url.Values{}, nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/next", w.Header().Get("Location"))
	assert.Zero(t, store.storeCalls)
}
