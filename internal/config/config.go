package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Auth      AuthConfig
	Store     StoreConfig
	Corpus    CorpusConfig
	Retrieval RetrievalConfig
	Retry     RetryConfig
	Ai        AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

type StoreConfig struct {
	// Path of the whole-document JSON user store.
	UserStorePath string
}

type CorpusConfig struct {
	// Directory of source documents the index is built from.
	Dir string
	// Directory the persisted index snapshot lives in.
	IndexDir     string
	ChunkSize    int
	ChunkOverlap int
}

type RetrievalConfig struct {
	// TopK is the number of chunks handed to the prompt; FetchK is the larger
	// candidate pool the diversity selection draws from.
	TopK   int
	FetchK int
}

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	LLMProvider       string // "ollama" or "huggingface"
	LLMModel          string
	GeminiAPIKey      string
	HuggingFaceAPIKey string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/ari.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "default_secret"),
			TokenExpiry: getEnvAsDuration("JWT_TOKEN_EXPIRY", 24*time.Hour),
		},
		Store: StoreConfig{
			UserStorePath: getEnv("USER_STORE_PATH", "data/users.json"),
		},
		Corpus: CorpusConfig{
			Dir:          getEnv("CORPUS_DIR", "corpus"),
			IndexDir:     getEnv("INDEX_DIR", "data/index"),
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 150),
		},
		Retrieval: RetrievalConfig{
			TopK:   getEnvAsInt("RETRIEVAL_TOP_K", 4),
			FetchK: getEnvAsInt("RETRIEVAL_FETCH_K", 12),
		},
		Retry: RetryConfig{
			MaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			Delay:       getEnvAsDuration("RETRY_DELAY", 2*time.Second),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
