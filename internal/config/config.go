package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Matcher MatcherConfig
	Data    DataConfig
	Gemini  GeminiConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MatcherConfig struct {
	// Strategy selects the similarity scorer: token_set, tfidf or embedding.
	Strategy                 string
	FuzzyThreshold           int
	MaxSuggestions           int
	MaxProfessionSuggestions int
	MaxRoles                 int
	FallbackOnEmpty          bool
	MaxFileSize              int64
	MaxTextLength            int
	PDFPageLimit             int
}

type DataConfig struct {
	RulesPath string
	RolesPath string
}

type GeminiConfig struct {
	APIKey         string
	EmbedCacheSize int
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
		Matcher: MatcherConfig{
			Strategy:                 getEnv("SCORER_STRATEGY", "token_set"),
			FuzzyThreshold:           getEnvAsInt("FUZZY_THRESHOLD", 80),
			MaxSuggestions:           getEnvAsInt("MAX_SUGGESTIONS", 8),
			MaxProfessionSuggestions: getEnvAsInt("MAX_PROFESSION_SUGGESTIONS", 6),
			MaxRoles:                 getEnvAsInt("MAX_ROLES", 4),
			FallbackOnEmpty:          getEnvAsBool("SUGGESTION_FALLBACK", true),
			MaxFileSize:              getEnvAsInt64("MAX_FILE_SIZE", 2*1024*1024),
			MaxTextLength:            getEnvAsInt("MAX_TEXT_LENGTH", 512*1024),
			PDFPageLimit:             getEnvAsInt("PDF_PAGE_LIMIT", 5),
		},
		Data: DataConfig{
			RulesPath: getEnv("RULES_PATH", "./configs/rules.yaml"),
			RolesPath: getEnv("ROLES_PATH", "./configs/roles.yaml"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			EmbedCacheSize: getEnvAsInt("EMBED_CACHE_SIZE", 128),
		},
	}
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
