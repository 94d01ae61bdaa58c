package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-forge/internal/compile"
	"resume-forge/internal/extraction"
	"resume-forge/internal/generations"
	"resume-forge/internal/llm"
	openai "resume-forge/internal/llm/openai"
	"resume-forge/internal/services/health"
	"resume-forge/internal/shared/config"
	"resume-forge/internal/shared/server"
	"resume-forge/internal/shared/storage/db"
	"resume-forge/internal/usage"
	"resume-forge/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	UsersRepo users.Repo
	UsageRepo usage.Repo

	UsageService      *usage.Service
	Summarizer        *usage.Summarizer
	GenerationService *generations.Service

	GenerationHandler *generations.Handler
	UsageHandler      *usage.Handler
	Health            *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		GenerationHandler: app.GenerationHandler,
		UsageHandler:      app.UsageHandler,
		Health:            app.Health,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) error {
	var usersRepo users.Repo
	var usageRepo usage.Repo

	if app.DB != nil {
		usersRepo = &users.PGRepo{DB: app.DB}
		usageRepo = &usage.PGRepo{DB: app.DB}
	} else {
		memUsers := users.NewMemoryRepo()
		seedAllowList(memUsers)
		usersRepo = memUsers
		usageRepo = usage.NewMemoryRepo()
	}

	usageSvc := usage.NewService(usageRepo, usersRepo)

	policy := llm.DefaultPolicy(app.Config.PrimaryModel, app.Config.FallbackModel)
	llmClient := llm.Client(llm.PlaceholderClient{})
	llmConfigured := false
	if app.Config.LLMProvider == "openai" && strings.TrimSpace(app.Config.OpenAIAPIKey) != "" {
		openaiClient, err := openai.NewClient(app.Config.OpenAIAPIKey)
		if err != nil {
			return err
		}
		llmClient = openaiClient
		llmConfigured = true
	} else if isDevLike(app.Config.Env) {
		log.Printf("bootstrap: no LLM provider configured; extraction calls will fail")
	} else {
		return errors.New("OPENAI_API_KEY is required")
	}

	compiler, err := buildCompiler(app.Config)
	if err != nil {
		return err
	}

	extractor := extraction.NewAdapter(llmClient, policy)
	generationSvc := generations.NewService(extractor, compiler, usageSvc)

	var summarizer *usage.Summarizer
	if llmConfigured {
		summarizer = &usage.Summarizer{Client: llmClient, Policy: policy, Svc: usageSvc}
	}

	app.UsersRepo = usersRepo
	app.UsageRepo = usageRepo
	app.UsageService = usageSvc
	app.Summarizer = summarizer
	app.GenerationService = generationSvc
	app.GenerationHandler = generations.NewHandler(generationSvc, app.Config.Env)
	app.UsageHandler = usage.NewHandler(usageSvc, summarizer)
	app.Health = health.NewService(app.DB)

	return nil
}

func buildCompiler(cfg config.Config) (generations.Compiler, error) {
	if strings.TrimSpace(cfg.CompileServiceURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: COMPILE_SERVICE_URL empty; compilation will fail")
			return placeholderCompiler{}, nil
		}
		return nil, errors.New("COMPILE_SERVICE_URL is required")
	}
	return compile.NewClient(cfg.CompileServiceURL)
}

// seedAllowList pre-approves emails from ALLOWLIST_EMAILS for memory-backed
// dev runs, since there is no signup flow to create users.
func seedAllowList(repo *users.MemoryRepo) {
	raw := strings.TrimSpace(os.Getenv("ALLOWLIST_EMAILS"))
	if raw == "" {
		return
	}
	for _, email := range strings.Split(raw, ",") {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		repo.AddUser(email, "")
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type placeholderCompiler struct{}

func (placeholderCompiler) Compile(ctx context.Context, markup, target, fileStem string) ([]byte, error) {
	_ = ctx
	_ = markup
	_ = target
	_ = fileStem
	return nil, errors.New("compile service not configured")
}
