package bootstrap

import (
	"log"
	"os"
	"path/filepath"

	"hs-chat-be/internal/config"
	"hs-chat-be/internal/controller"
	"hs-chat-be/internal/pkg/logger"
	"hs-chat-be/internal/service"
	"hs-chat-be/pkg/llm/openai"
	"hs-chat-be/pkg/retrieval"
	"hs-chat-be/pkg/retrieval/fetch"
	"hs-chat-be/pkg/retrieval/websearch"
	"hs-chat-be/pkg/scenario"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	ScenarioController controller.IScenarioController

	// Exposed so main.go can release pooled workers on shutdown.
	Orchestrator *retrieval.Orchestrator
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Generation service
	if cfg.Ai.OpenAIAPIKey == "" {
		log.Printf("[WARN] OPENAI_API_KEY is not set; chat turns will fail authentication")
	}
	llmProvider := openai.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.Model)
	log.Printf("[INFO] Using LLM Provider: OpenAI (%s)", cfg.Ai.Model)

	retrievalLog := initFileLogger("retrieval.log")
	classifier := scenario.NewClassifier(llmProvider, initFileLogger("classifier.log"))

	// 3. Retrieval pipeline
	searcher := websearch.NewAdapter(cfg.Retrieval.PreferredDomain, cfg.Retrieval.OrgName, retrievalLog)
	fetcher := fetch.NewFetcher(cfg.Retrieval.ProxyHost)
	orchestrator := retrieval.NewOrchestrator(
		searcher,
		fetcher,
		cfg.Retrieval.PreferredDomain,
		cfg.Retrieval.MaxResults,
		cfg.Retrieval.MaxChars,
		retrievalLog,
	)

	// 4. Services
	chatService := service.NewChatService(
		llmProvider,
		classifier,
		orchestrator,
		sysLogger,
		cfg.Ai.Temperature,
		cfg.Ai.MaxTokens,
		cfg.Ai.MaxRetries,
	)

	// 5. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService, sysLogger, cfg.Ai.OpenAIAPIKey != ""),
		ScenarioController: controller.NewScenarioController(),
		Orchestrator:       orchestrator,
	}
}

// initFileLogger opens a dedicated log file under ./logs so the noisy
// pipeline traces stay out of the application log.
func initFileLogger(name string) *log.Logger {
	logPath := filepath.Join(".", "logs", name)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "["+name+"] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
