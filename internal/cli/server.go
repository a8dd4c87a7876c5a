package cli

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"academy-quiz-service/internal/app"
	"academy-quiz-service/internal/config"
	"academy-quiz-service/internal/infra/memory"
	pgstore "academy-quiz-service/internal/infra/postgres"
	redisstore "academy-quiz-service/internal/infra/redis"
	transport "academy-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 2*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.BankLoader = memory.NewStaticBankLoader(sampleBank())
	if pool != nil {
		loader = pgstore.NewBankLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var banks app.BankRepository
	if redisClient != nil {
		banks = redisstore.NewBankRepository(redisClient, loader, bankTTL)
	} else {
		banks = memory.NewBankRepository(loader, bankTTL)
	}

	var registry app.SessionRegistry
	if redisClient != nil {
		registry = redisstore.NewSessionRegistry(redisClient, redisTTL)
	} else {
		registry = memory.NewSessionRegistry()
	}

	var accounts app.AccountStore = memory.NewAccountStore()
	var results app.ResultsLog = memory.NewResultsLog()
	if pool != nil {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db := bun.NewDB(sqldb, pgdialect.New())
		defer db.Close()
		accounts = pgstore.NewAccountStore(db)
		results = pgstore.NewResultsLog(pool)
	}

	service := app.NewQuizService(accounts, banks, registry, results, cfg.Security.ViolationLimit)
	apiHandler := transport.NewAPIHandler(service)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/register", apiHandler.Register)
	mux.HandleFunc("/login", apiHandler.Login)
	mux.HandleFunc("/quiz/start", apiHandler.StartQuiz)
	mux.HandleFunc("/quiz/retake", apiHandler.Retake)
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
