package bootstrap

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/Ines207/ARI/internal/config"
	"github.com/Ines207/ARI/internal/controller"
	"github.com/Ines207/ARI/internal/pkg/logger"
	"github.com/Ines207/ARI/internal/pkg/serverutils"
	"github.com/Ines207/ARI/internal/repository/filestore"
	"github.com/Ines207/ARI/internal/repository/memory"
	"github.com/Ines207/ARI/internal/service"
	"github.com/Ines207/ARI/pkg/embedding"
	"github.com/Ines207/ARI/pkg/index"
	"github.com/Ines207/ARI/pkg/llm/factory"
)

type Container struct {
	AuthController controller.IAuthController
	ChatController controller.IChatController

	Logger logger.ILogger
}

// NewContainer wires the whole process: providers and the document index are
// initialized once here and shared read-only across requests.
func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Document index: reuse the persisted snapshot when present, otherwise
	// build once from the corpus. An empty corpus is fatal.
	indexLogger := initIndexLogger()
	indexAdapter := index.NewAdapter(embeddingProvider, index.Config{
		ChunkSize:     cfg.Corpus.ChunkSize,
		ChunkOverlap:  cfg.Corpus.ChunkOverlap,
		RetryAttempts: cfg.Retry.MaxAttempts,
		RetryDelay:    cfg.Retry.Delay,
	}, indexLogger)
	if err := indexAdapter.Open(context.Background(), cfg.Corpus.Dir, cfg.Corpus.IndexDir); err != nil {
		log.Fatalf("[FATAL] Failed to initialize document index: %v", err)
	}
	log.Printf("[INFO] Document index ready: %d chunks", indexAdapter.Len())

	// Stores
	userStore := filestore.NewUserStore(cfg.Store.UserStorePath)
	stateRepo := memory.NewSessionStateRepository()

	// Services
	sessionService := service.NewSessionService(userStore)
	authService := service.NewAuthService(userStore, sessionService, cfg.Auth, sysLogger)
	chatService := service.NewChatService(
		userStore,
		sessionService,
		indexAdapter,
		llmProvider,
		stateRepo,
		cfg.Retry,
		cfg.Retrieval,
		sysLogger,
	)

	jwtGuard := serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret)

	return &Container{
		AuthController: controller.NewAuthController(authService),
		ChatController: controller.NewChatController(chatService, sessionService, jwtGuard),
		Logger:         sysLogger,
	}
}

func initIndexLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "index.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[INDEX] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
