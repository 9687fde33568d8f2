package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"outreach/internal/adapters/email"
	"outreach/internal/adapters/http/middleware"
	"outreach/internal/adapters/http/perf"
	donationStore "outreach/internal/adapters/storage/donation"
	eventStore "outreach/internal/adapters/storage/event"
	milestoneStore "outreach/internal/adapters/storage/milestone"
	participantStore "outreach/internal/adapters/storage/participant"
	surveyStore "outreach/internal/adapters/storage/survey"
	"outreach/internal/config"
	"outreach/internal/domain/role"
)

// Stores holds all storage dependencies.
type Stores struct {
	ParticipantStore participantStore.Store
	DonationStore    donationStore.Store
	EventStore       eventStore.Store
	SurveyStore      surveyStore.Store
	MilestoneStore   milestoneStore.Store
}

// parseCSRFKey decodes the configured CSRF secret (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func parseCSRFKey(keyHex string, production bool) []byte {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("OUTREACH_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if production {
		log.Fatal("OUTREACH_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set OUTREACH_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global role policy (set by NewMux)
var rolePolicy role.Policy

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender). A nil sender
// disables donation receipts.
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app. All environment settings arrive
// through cfg; nothing here reads the environment directly.
func NewMux(staticDir string, s *Stores, policy role.Policy, collector *perf.Collector, cfg config.Config) http.Handler {
	stores = s
	rolePolicy = policy
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = cfg.IsProduction()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from config
	csrfKey := parseCSRFKey(cfg.CSRFKey, cfg.IsProduction())

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
