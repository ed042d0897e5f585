package main

import (
	"log"
	"log/slog"

	"github.com/vbonduro/checklister/internal/categorize"
	claudecat "github.com/vbonduro/checklister/internal/categorize/claude"
	openaicat "github.com/vbonduro/checklister/internal/categorize/openai"
	"github.com/vbonduro/checklister/internal/checklist"
	"github.com/vbonduro/checklister/internal/config"
	"github.com/vbonduro/checklister/internal/db"
	"github.com/vbonduro/checklister/internal/logging"
	"github.com/vbonduro/checklister/internal/ocr"
	"github.com/vbonduro/checklister/internal/service"
	"github.com/vbonduro/checklister/internal/store"
	"github.com/vbonduro/checklister/internal/taxonomy"
	"github.com/vbonduro/checklister/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	tax, err := loadTaxonomy(cfg)
	if err != nil {
		logger.Error("failed to load taxonomy", "path", cfg.TaxonomyPath, "error", err)
		return
	}

	persist, closePersist, err := newPersistence(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize persistence", "backend", cfg.PersistBackend, "error", err)
		return
	}
	defer closePersist()

	checklistStore := checklist.NewStore(persist, tax, logger)
	fallback := categorize.NewRuleCategorizer(tax)
	remote, backend := newCategorizer(cfg, tax, logger)
	extractor := newExtractor(cfg, logger)

	svc := service.NewListService(checklistStore, remote, backend, fallback, extractor, logger)
	server := web.NewServer(svc, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func loadTaxonomy(cfg *config.Config) (*taxonomy.Taxonomy, error) {
	if cfg.TaxonomyPath == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.Load(cfg.TaxonomyPath)
}

func newPersistence(cfg *config.Config, logger *slog.Logger) (checklist.PersistenceAdapter, func(), error) {
	switch cfg.PersistBackend {
	case "file":
		logger.Info("using file persistence", "path", cfg.StatePath)
		return checklist.NewFileAdapter(cfg.StatePath), func() {}, nil
	case "memory":
		logger.Info("using in-memory persistence")
		return checklist.NewMemoryAdapter(), func() {}, nil
	default:
		logger.Info("using sqlite persistence", "path", cfg.DBPath)
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}
		return store.NewItemStore(database), closeDB, nil
	}
}

// newCategorizer returns the configured remote backend, or nil when none is
// set up. The rule-based fallback handles everything in that case.
func newCategorizer(cfg *config.Config, tax *taxonomy.Taxonomy, logger *slog.Logger) (categorize.Categorizer, string) {
	sentinel := tax.Sentinel
	switch cfg.AIBackend {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("OPENAI_API_KEY is required when AI_BACKEND=openai, using rule fallback only")
			return nil, ""
		}
		logger.Info("using OpenAI categorization backend", "model", cfg.OpenAIModel)
		return openaicat.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, sentinel), "openai"
	case "claude":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("ANTHROPIC_API_KEY is required when AI_BACKEND=claude, using rule fallback only")
			return nil, ""
		}
		logger.Info("using Claude categorization backend", "model", cfg.ClaudeModel)
		return claudecat.NewClient(cfg.AnthropicAPIKey, cfg.ClaudeModel, sentinel), "claude"
	default:
		logger.Info("no AI backend configured, using rule-based categorization")
		return nil, ""
	}
}

func newExtractor(cfg *config.Config, logger *slog.Logger) ocr.Extractor {
	switch cfg.OCRBackend {
	case "claude":
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("ANTHROPIC_API_KEY is required when OCR_BACKEND=claude, image ingestion disabled")
			return nil
		}
		logger.Info("using Claude OCR backend", "model", cfg.ClaudeModel)
		return ocr.NewClaudeExtractor(cfg.AnthropicAPIKey, cfg.ClaudeModel)
	default:
		logger.Info("no OCR backend configured, image ingestion disabled")
		return nil
	}
}
