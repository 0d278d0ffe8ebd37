// Command dealscoped is the hosted Dealscope service.
// It serves the tenant-scoped CRM API, the derived insight views,
// and a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/dealscope/dealscope/internal/api"
	"github.com/dealscope/dealscope/internal/platform"
	"github.com/dealscope/dealscope/internal/store"
	"github.com/dealscope/dealscope/internal/tenant"
	"github.com/dealscope/dealscope/pkg/insight"
)

type config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	APIKey      string
	CacheTTL    time.Duration
}

func loadConfig() config {
	// Local development convenience; the file is absent in production.
	_ = godotenv.Load()

	ttl := 60
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}

	return config{
		Port:        envOrDefault("PORT", "8080"),
		DatabaseURL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/dealscope?sslmode=disable"),
		RedisURL:    os.Getenv("REDIS_URL"),
		APIKey:      os.Getenv("API_KEY"),
		CacheTTL:    time.Duration(ttl) * time.Second,
	}
}

func main() {
	cfg := loadConfig()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Initialize services
	tenantSvc := tenant.NewService(db)
	storeSvc := store.NewService(db)
	cache := api.NewCache(cfg.RedisURL)
	handler := api.NewHandler(storeSvc, insight.NewDefaultEngine(), cache, cfg.CacheTTL)

	// Set up HTTP routes
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("POST /api/v1/tenants", createTenantHandler(tenantSvc))
	mux.HandleFunc("GET /api/v1/tenants", listTenantsHandler(tenantSvc))
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.CORS(api.APIKeyAuth(cfg.APIKey)(mux)),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting dealscoped on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func createTenantHandler(svc *tenant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		t, err := svc.EnsureTenant(r.Context(), req.Name)
		if err != nil {
			log.Printf("ensure tenant error: %v", err)
			http.Error(w, "creating tenant failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": t.ID, "name": t.DisplayName})
	}
}

func listTenantsHandler(svc *tenant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenants, err := svc.ListTenants(r.Context())
		if err != nil {
			log.Printf("list tenants error: %v", err)
			http.Error(w, "listing tenants failed", http.StatusInternalServerError)
			return
		}

		type item struct {
			ID        string    `json:"id"`
			Name      string    `json:"name"`
			CreatedAt time.Time `json:"created_at"`
		}
		out := make([]item, 0, len(tenants))
		for _, t := range tenants {
			out = append(out, item{ID: t.ID, Name: t.DisplayName, CreatedAt: t.CreatedAt})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
