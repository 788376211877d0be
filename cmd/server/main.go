package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "github.com/Bhaskar125/gym-management-system/internal/adapters/email"
	web "github.com/Bhaskar125/gym-management-system/internal/adapters/http"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	accountStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/account"
	billStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	dietplanStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/dietplan"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	memberStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/member"
	notificationStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/notification"
	packStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/pack"
	"github.com/Bhaskar125/gym-management-system/internal/application/orchestrators"
	"github.com/Bhaskar125/gym-management-system/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dsn := cfg.Database.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer sqldb.Close()

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConn)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdle)

	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(sqldb); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}
	log.Println("Database initialized successfully!")

	db := docstore.New(sqldb)
	stores := &web.Stores{
		AccountStore:      accountStore.NewDocStore(db),
		MemberStore:       memberStore.NewDocStore(db),
		BillStore:         billStore.NewDocStore(db),
		PackageStore:      packStore.NewDocStore(db),
		DietPlanStore:     dietplanStore.NewDocStore(db),
		NotificationStore: notificationStore.NewDocStore(db),
		DB:                db,
	}

	if cfg.Seed {
		err := orchestrators.ExecuteSeed(context.Background(), orchestrators.SeedStores{
			Packages:      stores.PackageStore,
			Members:       stores.MemberStore,
			Bills:         stores.BillStore,
			Notifications: stores.NotificationStore,
			Accounts:      stores.AccountStore,
		})
		switch {
		case err == nil:
			log.Println("Demo data seeded")
		case errors.Is(err, orchestrators.ErrAlreadySeeded):
			// nothing to do
		default:
			log.Fatalf("failed to seed: %v", err)
		}
	}

	if cfg.Email.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.Email.ResendKey, cfg.Email.From), cfg.Email.From)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.Email.From)
		if cfg.Env == "production" {
			log.Println("WARNING: email.resend_key is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set GYM_EMAIL_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(stores)

	log.Printf("Gym server %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
