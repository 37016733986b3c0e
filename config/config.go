package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultCorpusURL       = "https://raw.githubusercontent.com/erickbytes/positivipy/main/Positive_Thoughts_Manually_Cleaned.csv"
	DefaultLanguageTool    = "https://api.languagetool.org"
	DefaultTranslateURL    = "https://translate.googleapis.com/translate_a/single"
	DefaultFallbackQuote   = "Every day is a fresh start."
	DefaultGenerationTries = 5
)

type AppConfig struct {
	Env      string
	HTTPAddr string
	LogLevel string

	Corpus     CorpusConfig
	Generator  GeneratorConfig
	Grammar    GrammarConfig
	Translate  TranslateConfig
	Postgres   PostgresConfig
	Dynamo     DynamoConfig
	Kafka      KafkaConfig
	Valkey     ValkeyConfig
	Sinks      []string
	HTTPClient HTTPClientConfig

	// sinks the event consumer replays Kafka events into
	ReplaySinks []string
}

type CorpusConfig struct {
	URL      string
	CacheTTL time.Duration

	// optional client-credentials flow for private corpus endpoints
	OAuthTokenURL     string
	OAuthClientID     string
	OAuthClientSecret string
}

type GeneratorConfig struct {
	MaxAttempts      int
	FallbackQuote    string
	ModelCacheTTL    time.Duration
	ModelCacheSize   int
	PositivityFilter bool
}

type GrammarConfig struct {
	Provider        string // languagetool, openai or none
	LanguageToolURL string
	Language        string
	RatePerMinute   int
	HealthInterval  time.Duration
	OpenAIKey       string
	OpenAIModel     string
}

type TranslateConfig struct {
	Provider string // gtx, google or none
	GtxURL   string
	APIKey   string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Migrate  bool
}

// DSN builds the pgx connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Name)
}

type DynamoConfig struct {
	Region      string
	Endpoint    string
	QuotesTable string
	VotesTable  string
}

type KafkaConfig struct {
	Broker  string
	Topic   string
	GroupID string
}

type ValkeyConfig struct {
	Address  string
	Password string
	UseTLS   bool
}

type HTTPClientConfig struct {
	Timeout    time.Duration
	MaxRetries int
}

func Load() AppConfig {
	return AppConfig{
		Env:      getEnv("APP_ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Corpus: CorpusConfig{
			URL:               getEnv("CORPUS_URL", DefaultCorpusURL),
			CacheTTL:          getEnvDuration("CORPUS_CACHE_TTL", 0),
			OAuthTokenURL:     getEnv("CORPUS_OAUTH_TOKEN_URL", ""),
			OAuthClientID:     getEnv("CORPUS_OAUTH_CLIENT_ID", ""),
			OAuthClientSecret: getEnv("CORPUS_OAUTH_CLIENT_SECRET", ""),
		},
		Generator: GeneratorConfig{
			MaxAttempts:      getEnvInt("GENERATION_MAX_ATTEMPTS", DefaultGenerationTries),
			FallbackQuote:    getEnv("GENERATION_FALLBACK_QUOTE", DefaultFallbackQuote),
			ModelCacheTTL:    getEnvDuration("MODEL_CACHE_TTL", 0),
			ModelCacheSize:   getEnvInt("MODEL_CACHE_SIZE", 4),
			PositivityFilter: getEnvBool("POSITIVITY_FILTER", false),
		},
		Grammar: GrammarConfig{
			Provider:        getEnv("GRAMMAR_PROVIDER", "languagetool"),
			LanguageToolURL: getEnv("LANGUAGETOOL_URL", DefaultLanguageTool),
			Language:        getEnv("GRAMMAR_LANGUAGE", "en-US"),
			RatePerMinute:   getEnvInt("LANGUAGETOOL_RATE_PER_MINUTE", 20),
			HealthInterval:  getEnvDuration("GRAMMAR_HEALTH_INTERVAL", 15*time.Second),
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Translate: TranslateConfig{
			Provider: getEnv("TRANSLATE_PROVIDER", "gtx"),
			GtxURL:   getEnv("TRANSLATE_GTX_URL", DefaultTranslateURL),
			APIKey:   getEnv("GOOGLE_TRANSLATE_API_KEY", ""),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
			Migrate:  getEnvBool("DB_MIGRATE", false),
		},
		Dynamo: DynamoConfig{
			Region:      getEnv("AWS_REGION", "us-west-2"),
			Endpoint:    getEnv("AWS_ENDPOINT", ""),
			QuotesTable: getEnv("DYNAMO_QUOTES_TABLE", "Quotes"),
			VotesTable:  getEnv("DYNAMO_VOTES_TABLE", "Votes"),
		},
		Kafka: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:29092"),
			Topic:   getEnv("KAFKA_QUOTE_EVENTS_TOPIC", "positivipy.events"),
			GroupID: getEnv("KAFKA_GROUP_ID", "positivipy-recorder"),
		},
		Valkey: ValkeyConfig{
			Address:  getEnv("VALKEY_INIT_ADDRESS", ""),
			Password: getEnv("VALKEY_PASSWORD", ""),
			UseTLS:   getEnvBool("VALKEY_TLS", false),
		},
		Sinks:       getEnvList("SINKS", []string{"postgres"}),
		ReplaySinks: getEnvList("REPLAY_SINKS", []string{"postgres"}),
		HTTPClient: HTTPClientConfig{
			Timeout:    getEnvDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second),
			MaxRetries: getEnvInt("HTTP_CLIENT_MAX_RETRIES", 3),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
