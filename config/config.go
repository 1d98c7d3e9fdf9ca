package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/sakyarasadi/tourguideBackend/constant"
)

// Configuration keys. Each key is bound to the environment variable of the
// same name (upper-cased), so the whole service can be configured without a
// config file. An optional config.yaml may pre-seed values; env always wins.
const (
	DefaultConfigName = "config.yaml"
	TypeYaml          = "yaml"

	OSConfigPath = "CONFIG_PATH"

	// Runtime mode and security
	AppEnv    = "flask_env"
	SecretKey = "secret_key"
	Port      = "port"

	// Bot identity
	BotName        = "bot_name"
	BotVersion     = "bot_version"
	BotDescription = "bot_description"

	// Logging
	LogLevel = "log_level"

	// CORS
	CorsOrigins = "cors_origins"

	// LLM
	GeminiAPIKey   = "gemini_flash_api_key"
	LLMModel       = "llm_model"
	LLMTemperature = "llm_temperature"
	LLMBaseURL     = "llm_base_url"
	EmbeddingModel = "embedding_model"

	// Firebase
	FirebaseCredentialsJSON = "firebase_credentials_json"
	FirebaseCredentialsPath = "firebase_credentials_path"
	FirebaseProjectID       = "firebase_project_id"
	FirebaseStorageBucket   = "firebase_storage_bucket"

	// Firestore collection names
	FirestoreCollectionMessages = "firestore_collection_messages"
	FirestoreCollectionSessions = "firestore_collection_sessions"
	FirestoreCollectionCounters = "firestore_collection_counters"

	// Redis
	RedisHost          = "redis_host"
	RedisPort          = "redis_port"
	RedisPassword      = "redis_password"
	RedisDb            = "redis_db"
	RedisSessionPrefix = "redis_session_prefix"

	// Conversation and retrieval tuning
	MaxConversationHistoryMessages = "max_conversation_history_messages"
	RagTopK                        = "rag_top_k"
	SessionTTLSeconds              = "session_ttl_seconds"

	// Knowledge base
	KnowledgeDir    = "knowledge_dir"
	KnowledgeDBPath = "knowledge_db_path"
)

// Variables that must be present for the service to run at full capacity.
var requiredKeys = []string{
	AppEnv,
	SecretKey,
	GeminiAPIKey,
	FirebaseProjectID,
	FirebaseStorageBucket,
	RedisHost,
	RedisPort,
	CorsOrigins,
}

var instance *config
var once sync.Once

type config struct {
	*viper.Viper
}

func GetInstance() *config {
	once.Do(func() {
		configInstance := &config{Viper: viper.New()}

		// Optional file config: only loaded when present. The deployment
		// contract is environment variables, the file is a local convenience.
		configPath := DefaultConfigName
		if envConfigPath := os.Getenv(OSConfigPath); !strings.EqualFold(envConfigPath, constant.EmptyString) {
			configPath = fmt.Sprintf("%v/%v", envConfigPath, DefaultConfigName)
		}
		if _, err := os.Stat(configPath); err == nil {
			configInstance.SetConfigType(TypeYaml)
			configInstance.SetConfigFile(configPath)
			if err := configInstance.ReadInConfig(); err != nil {
				panic("read config file error: " + err.Error())
			}
			log.Infof("loaded config file %s", configPath)
		}

		configInstance.AutomaticEnv()
		for _, key := range allKeys() {
			// Bind every key to its upper-cased env name, e.g.
			// gemini_flash_api_key <- GEMINI_FLASH_API_KEY.
			_ = configInstance.BindEnv(key, strings.ToUpper(key))
		}
		setDefaults(configInstance.Viper)

		instance = configInstance
	})
	return instance
}

func allKeys() []string {
	return []string{
		AppEnv, SecretKey, Port,
		BotName, BotVersion, BotDescription,
		LogLevel, CorsOrigins,
		GeminiAPIKey, LLMModel, LLMTemperature, LLMBaseURL, EmbeddingModel,
		FirebaseCredentialsJSON, FirebaseCredentialsPath,
		FirebaseProjectID, FirebaseStorageBucket,
		FirestoreCollectionMessages, FirestoreCollectionSessions, FirestoreCollectionCounters,
		RedisHost, RedisPort, RedisPassword, RedisDb, RedisSessionPrefix,
		MaxConversationHistoryMessages, RagTopK, SessionTTLSeconds,
		KnowledgeDir, KnowledgeDBPath,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(AppEnv, "development")
	v.SetDefault(Port, 8080)
	v.SetDefault(BotName, "AI Assistant Bot")
	v.SetDefault(BotVersion, "1.0.1")
	v.SetDefault(BotDescription, "AI-powered chatbot service")
	v.SetDefault(LogLevel, "info")
	v.SetDefault(LLMModel, "gemini-2.5-flash")
	v.SetDefault(LLMTemperature, 0.0)
	// Gemini exposes an OpenAI-compatible surface; the LLM client speaks that.
	v.SetDefault(LLMBaseURL, "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault(EmbeddingModel, "text-embedding-004")
	v.SetDefault(FirestoreCollectionMessages, "messages")
	v.SetDefault(FirestoreCollectionSessions, "sessions")
	v.SetDefault(FirestoreCollectionCounters, "counters")
	v.SetDefault(RedisPort, 6379)
	v.SetDefault(RedisDb, 0)
	v.SetDefault(RedisSessionPrefix, "bot_chat_session:")
	v.SetDefault(MaxConversationHistoryMessages, 10)
	v.SetDefault(RagTopK, 4)
	v.SetDefault(SessionTTLSeconds, 60*60*24)
	v.SetDefault(KnowledgeDir, "knowledge")
	v.SetDefault(KnowledgeDBPath, "knowledge/index")
}

// Validate reports every missing required variable at once so a broken
// deployment fails with a single actionable message. One of the two Firebase
// credential variables must be set in addition to the plain required list.
func (c *config) Validate() error {
	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(c.GetString(key)) == constant.EmptyString {
			missing = append(missing, strings.ToUpper(key))
		}
	}
	if strings.TrimSpace(c.GetString(FirebaseCredentialsJSON)) == constant.EmptyString &&
		strings.TrimSpace(c.GetString(FirebaseCredentialsPath)) == constant.EmptyString {
		missing = append(missing, strings.ToUpper(FirebaseCredentialsJSON)+" or "+strings.ToUpper(FirebaseCredentialsPath))
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *config) GetString(key string) string {
	return c.Viper.GetString(key)
}

func (c *config) GetStringOrDefault(key string, defaultValue string) string {
	if c.IsSet(key) {
		return c.GetString(key)
	}

	return defaultValue
}

func (c *config) GetInt(key string) int {
	return c.Viper.GetInt(key)
}

func (c *config) GetIntOrDefault(key string, defaultValue int) int {
	if c.IsSet(key) {
		return c.GetInt(key)
	}

	return defaultValue
}

func (c *config) GetBool(key string) bool {
	return c.Viper.GetBool(key)
}

func (c *config) GetFloat64(key string) float64 {
	return c.Viper.GetFloat64(key)
}

func (c *config) GetFloat64OrDefault(key string, defaultValue float64) float64 {
	if c.IsSet(key) {
		return c.GetFloat64(key)
	}

	return defaultValue
}

// CorsOriginList splits the comma separated CORS_ORIGINS value.
func (c *config) CorsOriginList() []string {
	raw := c.GetString(CorsOrigins)
	if strings.TrimSpace(raw) == constant.EmptyString {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != constant.EmptyString {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// IsDevelopment reports whether the service runs in development mode.
func (c *config) IsDevelopment() bool {
	return strings.EqualFold(c.GetString(AppEnv), "development")
}
