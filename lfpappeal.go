// Package lfpappeal assembles the late-filing-penalty appeal service: the
// wizard engine, the session layer and the HTTP surface, wired behind a
// single constructor.
package lfpappeal

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/civicforms/lfpappeal/internal/journey"
	"github.com/civicforms/lfpappeal/internal/logging"
	appmw "github.com/civicforms/lfpappeal/internal/middleware"
	"github.com/civicforms/lfpappeal/pkg/adapters/memory"
	"github.com/civicforms/lfpappeal/pkg/persistence/middleware"
	"github.com/civicforms/lfpappeal/pkg/ports"
	"github.com/civicforms/lfpappeal/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is the service version reported by the version command.
const Version = "0.1.0"

// Service is the assembled appeal service. It is an http.Handler; everything
// else is wiring.
type Service struct {
	handler http.Handler
	bridge  *session.Bridge
	logger  *slog.Logger

	store        ports.SessionStore
	maskStore    middleware.Middleware
	sealStore    middleware.Middleware
	renderer     ports.Renderer
	locker       ports.DistributedLocker
	registry     *prometheus.Registry
	ttl          time.Duration
	cookieName   string
	cookieDomain string
	secure       bool

	companyLookup ports.CompanyLookup
	emailSender   ports.EmailSender
	fileTransfer  ports.FileTransfer
	supportEmail  string
}

// Option configures the Service.
type Option func(*Service)

// WithStore replaces the default in-memory session store.
func WithStore(store ports.SessionStore) Option {
	return func(s *Service) { s.store = store }
}

// WithEncryption seals session records with AES-GCM before they reach the
// store. Fallback keys keep old sessions readable during rotation. Sealing
// is always the innermost store layer, so any WithPIIMasking patterns apply
// to the plaintext regardless of option order.
func WithEncryption(activeKey []byte, fallbackKeys ...[]byte) Option {
	return func(s *Service) {
		s.sealStore = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    activeKey,
			FallbackKeys: fallbackKeys,
		})
	}
}

// WithPIIMasking masks values whose JSON keys match the patterns before
// records reach the store. Masking runs before WithEncryption seals the
// record, regardless of option order.
func WithPIIMasking(patterns ...string) Option {
	return func(s *Service) {
		s.maskStore = middleware.NewPIIMiddleware(patterns)
	}
}

// WithRenderer replaces the default embedded-template renderer.
func WithRenderer(r ports.Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

// WithLocker enables distributed session locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Service) { s.locker = locker }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithSessionTTL sets the session expiry.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithCookie configures the session cookie attributes.
func WithCookie(name, domain string, secure bool) Option {
	return func(s *Service) {
		if name != "" {
			s.cookieName = name
		}
		s.cookieDomain = domain
		s.secure = secure
	}
}

// WithCompanyLookup enables company-name resolution on the penalty-details
// step. Without it the step proceeds with the name unresolved.
func WithCompanyLookup(lookup ports.CompanyLookup) Option {
	return func(s *Service) { s.companyLookup = lookup }
}

// WithEmailSender enables submission confirmation emails.
func WithEmailSender(sender ports.EmailSender) Option {
	return func(s *Service) { s.emailSender = sender }
}

// WithFileTransfer enables evidence uploads.
func WithFileTransfer(transfer ports.FileTransfer) Option {
	return func(s *Service) { s.fileTransfer = transfer }
}

// WithSupportEmail sets the internal address copied on every submission.
func WithSupportEmail(email string) Option {
	return func(s *Service) { s.supportEmail = email }
}

// New assembles the service. Defaults: in-memory store, embedded templates,
// no downstream clients, one-hour sessions.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		logger:     logging.NewNop(),
		ttl:        session.DefaultTTL,
		cookieName: session.DefaultCookieName,
		secure:     true,
		registry:   prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = memory.NewStore()
	}
	// Masking first, so it sees plaintext rather than a sealed envelope.
	storeWrap := make([]middleware.Middleware, 0, 2)
	if s.maskStore != nil {
		storeWrap = append(storeWrap, s.maskStore)
	}
	if s.sealStore != nil {
		storeWrap = append(storeWrap, s.sealStore)
	}
	store := middleware.Chain(s.store, storeWrap...)

	if s.renderer == nil {
		rend, err := journey.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to build renderer: %w", err)
		}
		s.renderer = rend
	}

	managerOpts := []session.Option{
		session.WithTTL(s.ttl),
		session.WithLogger(s.logger),
	}
	if s.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(s.locker))
	}
	manager := session.NewManager(store, managerOpts...)

	s.bridge = session.NewBridge(manager,
		session.WithCookieName(s.cookieName),
		session.WithCookieDomain(s.cookieDomain),
		session.WithSecureCookies(s.secure),
		session.WithBridgeLogger(s.logger),
	)

	metrics := appmw.NewMetrics(s.registry)

	r := chi.NewRouter()
	r.Use(appmw.RequestLogger(s.logger))
	r.Use(metrics.Instrument)

	r.Get("/healthcheck", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Group(func(g chi.Router) {
		g.Use(appmw.SessionLoader(s.bridge, s.logger))
		g.Mount("/", journey.Router(journey.Deps{
			Renderer:      s.renderer,
			Bridge:        s.bridge,
			Logger:        s.logger,
			CompanyLookup: s.companyLookup,
			EmailSender:   s.emailSender,
			FileTransfer:  s.fileTransfer,
			SupportEmail:  s.supportEmail,
		}))
	})

	s.handler = r
	return s, nil
}

// Handler returns the assembled HTTP handler.
func (s *Service) Handler() http.Handler {
	return s.handler
}

// Bridge exposes the session bridge, mainly for tests and tooling.
func (s *Service) Bridge() *session.Bridge {
	return s.bridge
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
