package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/answers"
	"docqa-backend/internal/documents"
	"docqa-backend/internal/extract"
	"docqa-backend/internal/qa"
	"docqa-backend/internal/qa/huggingface"
	"docqa-backend/internal/qa/openai"
	"docqa-backend/internal/services/health"
	"docqa-backend/internal/shared/config"
	"docqa-backend/internal/shared/server"
	"docqa-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	QA               qa.Client
	DocumentsRepo    *documents.MemoryRepo
	DocumentsService *documents.Service
	AnswersService   *answers.Service
	DocumentsHandler *documents.Handler
	AnswersHandler   *answers.Handler
	Health           *health.Service
}

// Build wires the QA client, services, handlers and router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.SetLevel(cfg.LogLevel)

	qaClient, err := NewQAClient(cfg)
	if err != nil {
		return nil, err
	}

	docRepo := newDocumentsRepo(cfg)
	docSvc := documents.NewService(docRepo, extract.New())
	answerSvc := answers.NewService(docSvc, qaClient)

	app := &App{
		Config:           cfg,
		QA:               qaClient,
		DocumentsRepo:    docRepo,
		DocumentsService: docSvc,
		AnswersService:   answerSvc,
		DocumentsHandler: documents.NewHandler(docSvc, cfg.MaxUploadBytes),
		AnswersHandler:   answers.NewHandler(answerSvc),
		Health:           health.NewService(cfg.QAProvider, cfg.ModelName),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		AnswerHandler:   app.AnswersHandler,
		Health:          app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":      cfg.Env,
		"provider": cfg.QAProvider,
		"model":    cfg.ModelName,
		"legacy":   cfg.LegacyStatusCodes,
		"sessions": cfg.SessionsEnabled,
	})
	return app, nil
}

// newDocumentsRepo holds the single default slot unless sessions are enabled,
// in which case slots are capped by count and idle age.
func newDocumentsRepo(cfg config.Config) *documents.MemoryRepo {
	if !cfg.SessionsEnabled {
		return documents.NewMemoryRepo(1, 0)
	}
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	return documents.NewMemoryRepo(cfg.SessionMaxDocuments, ttl)
}

// NewQAClient builds the QA adapter selected by QA_PROVIDER.
func NewQAClient(cfg config.Config) (qa.Client, error) {
	timeout := time.Duration(cfg.QATimeoutSeconds) * time.Second
	switch cfg.QAProvider {
	case "", config.ProviderHuggingFace:
		client, err := huggingface.NewClient(cfg.HFAPIURL, cfg.ModelName, cfg.HFAPIToken, timeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI:
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.ModelName, cfg.OpenAIBaseURL, timeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported QA provider: %s", cfg.QAProvider)
	}
}
