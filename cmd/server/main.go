package main

import (
	"fmt"
	"log"

	"testreport/internal/analyzer"
	_ "testreport/internal/analyzer/claude"
	_ "testreport/internal/analyzer/gemini"
	_ "testreport/internal/analyzer/openai"
	"testreport/internal/config"
	"testreport/internal/email/noop"
	"testreport/internal/email/ses"
	"testreport/internal/extractor"
	"testreport/internal/handler"
	"testreport/internal/port"
	"testreport/internal/repository/postgres"
	"testreport/internal/router"
	"testreport/internal/service"
	s3storage "testreport/internal/storage/s3"
	"testreport/internal/translate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	reportRepo := postgres.NewReportRepo(db)
	resultRepo := postgres.NewTestResultRepo(db)
	summaryRepo := postgres.NewSummaryRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize collaborators
	extractorClient := extractor.NewClient(&cfg.Extractor)
	emailSender, err := buildEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}
	failureAnalyzer := buildFailureAnalyzer(&cfg.Analyzer)
	aiTranslator := buildAITranslator(&cfg.Analyzer)

	// Initialize services
	reportSvc := service.NewReportService(
		reportRepo, resultRepo, summaryRepo,
		s3Client, extractorClient, emailSender, failureAnalyzer,
		&cfg.S3, &cfg.Upload, &cfg.Email,
	)
	translationSvc := service.NewTranslationService(aiTranslator)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	reportH := handler.NewReportHandler(reportSvc)
	translateH := handler.NewTranslateHandler(translationSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	aiH := handler.NewAIHandler(&cfg.Analyzer, failureAnalyzer)
	healthH := handler.NewHealthHandler(db, cfg.Extractor.BaseURL)

	// Setup router
	r := router.Setup(cfg, reportH, translateH, statsH, aiH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildFailureAnalyzer assembles the provider chain from the configured
// tiers. Misconfigured tiers are skipped with a log line; the rule-based
// terminal analyzer makes an empty chain still functional.
func buildFailureAnalyzer(cfg *config.AnalyzerConfig) *analyzer.Fallback {
	var analyzers []port.FailureAnalyzer
	var names []string
	for _, provider := range cfg.Providers() {
		a, err := analyzer.New(provider)
		if err != nil {
			log.Printf("skipping analyzer provider %s: %v", provider.Provider, err)
			continue
		}
		analyzers = append(analyzers, a)
		names = append(names, provider.Provider)
	}
	return analyzer.NewFallback(analyzers, names)
}

// buildAITranslator returns the AI translator when a claude tier with an
// API key is configured, nil otherwise. A nil translator means the
// translation endpoint runs on the offline dictionary alone.
func buildAITranslator(cfg *config.AnalyzerConfig) port.Translator {
	for _, provider := range cfg.Providers() {
		if provider.Provider == "claude" && provider.APIKey != "" {
			return translate.NewAITranslator(provider)
		}
	}
	return nil
}

func buildEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	default:
		return noop.NewNoopSender(), nil
	}
}
