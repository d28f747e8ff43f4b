package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Serper   SerperConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Analysis AnalysisConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

type SerperConfig struct {
	APIKey     string
	BaseURL    string
	NumResults int
	Timeout    time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency      int
	RetryMaxAttempts int
}

// AnalysisConfig holds the text budgets of the pipeline: validation bounds
// for incoming text and the per-input truncation budget used when composing
// the completion prompt.
type AnalysisConfig struct {
	CVMinLength      int
	JDMinLength      int
	MaxTextLength    int
	CVPromptBudget   int
	JDPromptBudget   int
	MinExtractedText int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "skillbridge"),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.3),
			MaxOutputTokens: int32(getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 2048)),
		},
		Serper: SerperConfig{
			APIKey:     getEnv("SERPER_API_KEY", ""),
			BaseURL:    getEnv("SERPER_BASE_URL", "https://google.serper.dev/videos"),
			NumResults: getEnvAsInt("SERPER_NUM_RESULTS", 5),
			Timeout:    getEnvAsDuration("SERPER_TIMEOUT", "15s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:      getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
		},
		Analysis: AnalysisConfig{
			CVMinLength:      getEnvAsInt("CV_MIN_LENGTH", 100),
			JDMinLength:      getEnvAsInt("JD_MIN_LENGTH", 50),
			MaxTextLength:    getEnvAsInt("MAX_TEXT_LENGTH", 50000),
			CVPromptBudget:   getEnvAsInt("CV_PROMPT_BUDGET", 2800),
			JDPromptBudget:   getEnvAsInt("JD_PROMPT_BUDGET", 1800),
			MinExtractedText: getEnvAsInt("MIN_EXTRACTED_TEXT", 50),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
