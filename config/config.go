package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port                  string
	DBPath                string
	StagingDir            string
	AssistantAPIKey       string
	AssistantControlURL   string
	AssistantDataURL      string
	AssistantModel        string
	AssistantRegion       string
	AssistantInstructions string
	AuthSecret            string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:                  get("PORT", "8080"),
		DBPath:                get("DB_PATH", "docpal.db"),
		StagingDir:            get("STAGING_DIR", ""),
		AssistantAPIKey:       get("ASSISTANT_API_KEY", ""),
		AssistantControlURL:   get("ASSISTANT_CONTROL_URL", "https://api.pinecone.io"),
		AssistantDataURL:      get("ASSISTANT_DATA_URL", "https://prod-1-data.ke.pinecone.io"),
		AssistantModel:        get("ASSISTANT_MODEL", "gpt-4o"),
		AssistantRegion:       get("ASSISTANT_REGION", "us"),
		AssistantInstructions: get("ASSISTANT_INSTRUCTIONS", "Use American English for spelling and grammar."),
		AuthSecret:            get("AUTH_SECRET", ""),
	}
	return cfg
}
