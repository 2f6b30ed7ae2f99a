package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"

	"honeypot-agent/handler"
	"honeypot-agent/internal/detect"
	"honeypot-agent/internal/integrations/callback"
	"honeypot-agent/internal/integrations/groq"
	"honeypot-agent/internal/integrations/paramstore"
	"honeypot-agent/internal/intel"
	"honeypot-agent/internal/report"
	"honeypot-agent/internal/repository"
	"honeypot-agent/internal/usecase"
)

// defaultAPIKey is the shared-secret fallback when HONEYPOT_API_KEY is
// unset, kept for compatibility with existing test harnesses.
const defaultAPIKey = "mySecretKey123"

// appConfig is the process-wide configuration, resolved once here and
// passed to constructors; request handling never reads the environment.
type appConfig struct {
	apiKey      string
	groqAPIKey  string
	groqModel   string
	groqBaseURL string
	paramPrefix string
	callbackURL string
	reportTable string
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	// ---- Configuration (read only here) ----
	cfg := appConfig{
		apiKey:      envOr("HONEYPOT_API_KEY", defaultAPIKey),
		groqAPIKey:  os.Getenv("GROQ_API_KEY"),
		groqModel:   envOr("GROQ_MODEL", groq.DefaultModel),
		groqBaseURL: envOr("GROQ_BASE_URL", groq.DefaultBaseURL),
		paramPrefix: strings.TrimRight(os.Getenv("PARAM_PREFIX"), "/"),
		callbackURL: os.Getenv("CALLBACK_URL"),
		reportTable: os.Getenv("REPORT_TABLE"),
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// ---- AWS SDK config ----
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Provider credential: env first, SSM fallback ----
	var params paramstore.Getter
	if cfg.paramPrefix != "" {
		ps, psErr := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if psErr != nil {
			logger.Error("failed to create paramstore client", "err", psErr)
			os.Exit(1)
		}
		params = ps
	}
	groqKey, err := paramstore.ResolveSecret(ctx, params, cfg.groqAPIKey, cfg.paramPrefix+"/groq-api-key")
	if err != nil {
		// Start degraded rather than crash; /health reports the state.
		logger.Warn("failed to resolve provider credential", "err", err)
		groqKey = ""
	}
	if groqKey == "" {
		logger.Warn("no provider credential configured; chat requests will fail")
	}

	// ---- Clients ----
	llm := groq.NewClient(groqKey,
		groq.WithModel(cfg.groqModel),
		groq.WithBaseURL(cfg.groqBaseURL),
	)

	var sinks []report.Sink
	if cfg.callbackURL != "" {
		cb, cbErr := callback.NewClient(cfg.callbackURL)
		if cbErr != nil {
			logger.Error("failed to create callback client", "err", cbErr)
			os.Exit(1)
		}
		sinks = append(sinks, cb)
	}
	if cfg.reportTable != "" {
		store, storeErr := repository.NewReportStore(awsdynamodb.NewFromConfig(awsCfg), cfg.reportTable)
		if storeErr != nil {
			logger.Error("failed to create report store", "err", storeErr)
			os.Exit(1)
		}
		sinks = append(sinks, store)
	}
	reporter := report.NewReporter(logger, sinks...)

	// ---- Handler ----
	engage, err := usecase.NewEngageService(llm, detect.NewEngine(), intel.NewExtractor(), reporter)
	if err != nil {
		logger.Error("failed to create engage service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(engage, cfg.apiKey, handler.HealthInfo{
		ProviderKeyConfigured: llm.KeyConfigured(),
		CallbackConfigured:    cfg.callbackURL != "",
		ReportStoreConfigured: cfg.reportTable != "",
	}, logger)
	if err != nil {
		logger.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
