package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Env var names consumed at the boundary. All values are opaque strings;
// the only validation anywhere is a presence check at the point of use.
const (
	portEnvVar       = "PORT"
	envVar           = "ENV"
	logLevelEnvVar   = "LOG_LEVEL"
	authSecretEnvVar = "AUTH_SECRET"
	apiKeyEnvVar     = "OPENAI_API_KEY"
	workflowIDEnvVar = "CHATKIT_WORKFLOW_ID"
	apiBaseEnvVar    = "CHATKIT_API_BASE"
	usersFileEnvVar  = "USERS_FILE"
)

const defaultChatKitBase = "https://api.openai.com"

// Config holds everything the server reads from the environment. It is
// resolved once at startup and passed by value into the handlers; nothing
// reads ambient env vars at request time.
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	UsersFile string

	// AuthSecret signs session tokens. Empty means the deployment is
	// misconfigured; protected endpoints answer 500 until it is set.
	AuthSecret string

	// Hosted chat-workflow provider
	OpenAIAPIKey string
	WorkflowID   string
	ChatKitBase  string
}

// Load reads an optional .env file and resolves the configuration.
// A missing .env is not an error; real environments set vars directly.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         port(),
		Env:          GetEnv(envVar, "DEV"),
		LogLevel:     GetEnv(logLevelEnvVar, "debug"),
		UsersFile:    GetEnv(usersFileEnvVar, "data/users.json"),
		AuthSecret:   GetEnv(authSecretEnvVar, ""),
		OpenAIAPIKey: GetEnv(apiKeyEnvVar, ""),
		WorkflowID:   GetEnv(workflowIDEnvVar, ""),
		ChatKitBase:  GetEnv(apiBaseEnvVar, defaultChatKitBase),
	}
}

func port() string {
	p := GetEnv(portEnvVar, "8080")
	if p != "" && p[0] != ':' {
		p = fmt.Sprintf(":%s", p)
	}
	return p
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
