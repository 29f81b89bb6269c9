package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "folio-backend/internal/auth"
	"folio-backend/internal/llm"
	"folio-backend/internal/llm/gemini"
	"folio-backend/internal/llm/openai"
	"folio-backend/internal/payments"
	"folio-backend/internal/pipeline"
	"folio-backend/internal/profiles"
	"folio-backend/internal/resumes"
	"folio-backend/internal/shared/config"
	"folio-backend/internal/shared/server"
	"folio-backend/internal/shared/storage/db"
	"folio-backend/internal/shared/storage/object"
	localstore "folio-backend/internal/shared/storage/object/local"
	s3store "folio-backend/internal/shared/storage/object/s3"
	"folio-backend/internal/usernames"
	"folio-backend/internal/users"
)

const cleanupQueueSize = 128

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Cleanup *pipeline.Cleanup

	ResumesRepo   resumes.Repo
	UsernamesRepo usernames.Repo
	PaymentsRepo  payments.Repo
	UsersRepo     users.Repo

	ResumesService   *resumes.Service
	UsernamesService *usernames.Service
	PaymentsService  *payments.Service
	UsersService     *users.Service
	Processor        *pipeline.Processor
	LLM              llm.Client

	ResumesHandler   *resumes.Handler
	PipelineHandler  *pipeline.Handler
	UsernamesHandler *usernames.Handler
	ProfilesHandler  *profiles.Handler
	PaymentsHandler  *payments.Handler
	UsersHandler     *users.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		GoogleAuth:       app.GoogleAuth,
		UsersHandler:     app.UsersHandler,
		ResumesHandler:   app.ResumesHandler,
		PipelineHandler:  app.PipelineHandler,
		UsernamesHandler: app.UsernamesHandler,
		ProfilesHandler:  app.ProfilesHandler,
		PaymentsHandler:  app.PaymentsHandler,
	})

	return app, nil
}

// Close releases background workers and connections.
func (a *App) Close() {
	if a.Cleanup != nil {
		a.Cleanup.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	var client llm.Client = llm.PlaceholderClient{}
	switch cfg.LLMProvider {
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: GEMINI_API_KEY empty; structuring falls back to placeholder data")
				return client, nil
			}
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		client = geminiClient
	case "openai":
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		client = openaiClient
	}
	return llm.WithRetry(client, 1), nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.UsernamesRepo = &usernames.PGRepo{DB: app.DB}
		app.PaymentsRepo = &payments.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.UsernamesRepo = usernames.NewMemoryRepo()
		app.PaymentsRepo = payments.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	llmClient, err := buildLLM(context.Background(), app.Config)
	if err != nil {
		return err
	}
	app.LLM = llmClient

	app.Cleanup = pipeline.NewCleanup(app.Store, cleanupQueueSize)

	app.PaymentsService = &payments.Service{Repo: app.PaymentsRepo}
	app.UsernamesService = &usernames.Service{Repo: app.UsernamesRepo}
	app.UsersService = users.NewService(app.UsersRepo)
	app.ResumesService = &resumes.Service{
		Repo:          app.ResumesRepo,
		Store:         app.Store,
		Subscriptions: app.PaymentsService,
		Cleaner:       app.Cleanup,
	}
	app.Processor = pipeline.NewProcessor(app.ResumesRepo, app.Store, app.LLM, app.UsernamesService, app.Cleanup)

	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)

	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.PipelineHandler = pipeline.NewHandler(app.Processor)
	app.UsernamesHandler = usernames.NewHandler(app.UsernamesService, app.Config.PublicBaseURL)
	app.ProfilesHandler = profiles.NewHandler(app.UsernamesService, app.ResumesRepo)
	app.PaymentsHandler = payments.NewHandler(app.PaymentsService, app.Config.PaymentWebhookSecret)
	app.UsersHandler = users.NewHandler(app.UsersService)

	return nil
}
