package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/email"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/http/middleware"
	accountStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/account"
	billStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	dietplanStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/dietplan"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	memberStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/member"
	notificationStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/notification"
	packStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/pack"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	MemberStore       memberStore.Store
	BillStore         billStore.Store
	PackageStore      packStore.Store
	DietPlanStore     dietplanStore.Store
	NotificationStore notificationStore.Store

	// DB backs the seeding and storage-doctor endpoints.
	DB *docstore.DB
}

// loadCSRFKey reads the CSRF secret from GYM_CSRF_KEY (hex-encoded, 32 bytes).
// In production the key MUST be set; in development a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("GYM_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("GYM_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("GYM_ENV") == "production" {
		log.Fatal("GYM_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set GYM_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("GYM_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Logging -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Logging,
	)
}
