package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/minhlp/rental-service/internal/config"
	"github.com/minhlp/rental-service/internal/handler"
	"github.com/minhlp/rental-service/internal/integrations/vcb"
	"github.com/minhlp/rental-service/internal/middleware"
	"github.com/minhlp/rental-service/internal/repository"
	"github.com/minhlp/rental-service/internal/service"
	"github.com/minhlp/rental-service/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	cashbook := service.NewCashbookService(repo, repo, repo, logger)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, cashbook, mailer, logger, cfg)
	h := handler.NewHandler(svc)
	vcbClient := vcb.NewClient(cfg, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Exchange rate endpoint
	r.HandleFunc("/fx-rates", func(w http.ResponseWriter, req *http.Request) {
		if code := req.URL.Query().Get("currency"); code != "" {
			rate, err := vcbClient.GetRate(code)
			if err != nil {
				http.Error(w, fmt.Sprintf("Failed to get rate: %v", err), http.StatusBadGateway)
				return
			}
			json.NewEncoder(w).Encode(rate)
			return
		}
		rates, err := vcbClient.GetRates()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get rates: %v", err), http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(rates)
	}).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/profile", h.Profile).Methods("GET")
	authRouter.HandleFunc("/accounts", h.CreateBankAccount).Methods("POST")
	authRouter.HandleFunc("/accounts", h.ListBankAccounts).Methods("GET")
	authRouter.HandleFunc("/accounts/{id}", h.UpdateBankAccount).Methods("PUT")
	authRouter.HandleFunc("/accounts/{id}", h.DeleteBankAccount).Methods("DELETE")
	authRouter.HandleFunc("/buildings", h.CreateBuilding).Methods("POST")
	authRouter.HandleFunc("/buildings", h.ListBuildings).Methods("GET")
	authRouter.HandleFunc("/buildings/{id}", h.UpdateBuilding).Methods("PUT")
	authRouter.HandleFunc("/buildings/{id}", h.DeleteBuilding).Methods("DELETE")
	authRouter.HandleFunc("/apartments", h.CreateApartment).Methods("POST")
	authRouter.HandleFunc("/apartments", h.ListApartments).Methods("GET")
	authRouter.HandleFunc("/apartments/{id}", h.UpdateApartment).Methods("PUT")
	authRouter.HandleFunc("/apartments/{id}", h.DeleteApartment).Methods("DELETE")
	authRouter.HandleFunc("/contracts", h.CreateContract).Methods("POST")
	authRouter.HandleFunc("/contracts", h.ListContracts).Methods("GET")
	authRouter.HandleFunc("/contracts/{id}", h.UpdateContract).Methods("PUT")
	authRouter.HandleFunc("/contracts/{id}", h.DeleteContract).Methods("DELETE")
	authRouter.HandleFunc("/deposits", h.CreateDeposit).Methods("POST")
	authRouter.HandleFunc("/deposits", h.ListDeposits).Methods("GET")
	authRouter.HandleFunc("/deposits/{id}", h.UpdateDeposit).Methods("PUT")
	authRouter.HandleFunc("/deposits/{id}", h.DeleteDeposit).Methods("DELETE")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/cashbook", h.GetCashbook).Methods("GET")
	authRouter.HandleFunc("/cashbook/snapshots", h.GetCashbookSnapshots).Methods("GET")
	authRouter.HandleFunc("/cashbook/snapshots/run", h.RunSnapshots).Methods("POST")

	// Schedule the nightly snapshot job. The engine is idempotent, so a
	// missed or repeated trigger is harmless.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.SnapshotCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if _, err := svc.RunDailySnapshot(ctx, time.Time{}); err != nil {
			logger.Errorf("Daily snapshot job failed: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("Failed to schedule snapshot job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
