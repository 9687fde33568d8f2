package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "outreach/internal/adapters/email"
	web "outreach/internal/adapters/http"
	"outreach/internal/adapters/http/perf"
	"outreach/internal/adapters/storage"
	donationStore "outreach/internal/adapters/storage/donation"
	eventStore "outreach/internal/adapters/storage/event"
	milestoneStore "outreach/internal/adapters/storage/milestone"
	participantStore "outreach/internal/adapters/storage/participant"
	surveyStore "outreach/internal/adapters/storage/survey"
	"outreach/internal/application/orchestrators"
	"outreach/internal/config"
	"outreach/internal/domain/role"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Role policy: which stored role spellings count as manager
	policy := role.DefaultPolicy()
	if len(cfg.ElevatedRoles) > 0 {
		policy = role.NewPolicy(cfg.ElevatedRoles)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	pStore := participantStore.NewSQLiteStore(timedDB, policy)
	stores := &web.Stores{
		ParticipantStore: pStore,
		DonationStore:    donationStore.NewSQLiteStore(timedDB),
		EventStore:       eventStore.NewSQLiteStore(timedDB),
		SurveyStore:      surveyStore.NewSQLiteStore(timedDB),
		MilestoneStore:   milestoneStore.NewSQLiteStore(timedDB),
	}

	// Seed a manager account on an empty database so the first operator can
	// log in. No-op once any participant exists.
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		seedDeps := orchestrators.CreateAccountDeps{ParticipantStore: pStore}
		if err := orchestrators.ExecuteSeedManager(context.Background(), seedDeps, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to seed manager account: %v", err)
		}
	} else if cfg.IsProduction() {
		log.Println("WARNING: OUTREACH_ADMIN_EMAIL/OUTREACH_ADMIN_PASSWORD not set — no manager account will be seeded")
	}

	// Configure email sender for donation receipts
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if cfg.IsProduction() {
			log.Println("WARNING: OUTREACH_RESEND_KEY is not set — donation receipts are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set OUTREACH_RESEND_KEY for real delivery)")
		}
	}

	web.RateLimitPerSecond = cfg.RateLimitPerSecond
	mux := web.NewMux("static", stores, policy, collector, cfg)

	log.Printf("Outreach %s starting on %s (env=%s, schema=%d)", version, cfg.Addr, cfg.Env, storage.LatestSchemaVersion())

	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// setupLogging routes slog through JSON in production and text in development.
func setupLogging(cfg config.Config) {
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
