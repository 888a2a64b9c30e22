package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/zhouzirui/persona-voice/backend/internal/service/ai"
	"github.com/zhouzirui/persona-voice/backend/internal/service/voice"
	"github.com/zhouzirui/persona-voice/backend/internal/store"
)

// 可选的服务提供方与存储后端
const (
	ProviderArk        = "ark"
	ProviderGemini     = "gemini"
	ProviderElevenLabs = "elevenlabs"
	ProviderVolcengine = "volcengine"
	ProviderNone       = "none"

	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Log    LogConfig
	LLM    LLMConfig
	TTS    TTSConfig
	Local  LocalSpeechConfig
	Store  StoreConfig
}

// Load 从环境变量加载配置。.env 文件由调用方提前载入。
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses configuration from an explicit variable set. Used by tests and tools.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.Contains(strings.TrimSpace(c.Server.Port), " ") {
		return fmt.Errorf("invalid PORT value: %q", c.Server.Port)
	}
	if !oneOf(c.LLM.Provider, ProviderArk, ProviderGemini, ProviderNone) {
		return fmt.Errorf("invalid LLM_PROVIDER value: %q", c.LLM.Provider)
	}
	if !oneOf(c.TTS.Provider, ProviderElevenLabs, ProviderVolcengine, ProviderNone) {
		return fmt.Errorf("invalid TTS_PROVIDER value: %q", c.TTS.Provider)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("invalid STORE_BACKEND value: %q", c.Store.Backend)
	}
	return nil
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SSEHeartbeat    time.Duration `env:"SSE_HEARTBEAT" envDefault:"15s"`
}

// Addr 返回监听地址，允许直接传入 ":8080" 或 "127.0.0.1:8080"。
func (c ServerConfig) Addr() string {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
	// Dir 非空时额外写入 Dir/app.log
	Dir string `env:"LOG_DIR"`
}

// LLMConfig 描述大模型相关配置。
type LLMConfig struct {
	Provider string        `env:"LLM_PROVIDER" envDefault:"ark"`
	Timeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"10s"`

	ArkAPIKey    string `env:"ARK_API_KEY"`
	ArkAccessKey string `env:"ARK_ACCESS_KEY"`
	ArkSecretKey string `env:"ARK_SECRET_KEY"`
	ArkModel     string `env:"ARK_MODEL"`
	ArkBaseURL   string `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkRegion    string `env:"ARK_REGION" envDefault:"cn-beijing"`
	ArkMaxTokens int    `env:"ARK_MAX_TOKENS" envDefault:"512"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`
}

// Ark 转换为方舟客户端配置。
func (c LLMConfig) Ark() ai.ArkConfig {
	return ai.ArkConfig{
		APIKey:    c.ArkAPIKey,
		AccessKey: c.ArkAccessKey,
		SecretKey: c.ArkSecretKey,
		Model:     c.ArkModel,
		BaseURL:   c.ArkBaseURL,
		Region:    c.ArkRegion,
		MaxTokens: c.ArkMaxTokens,
	}
}

// Gemini 转换为 Gemini 客户端配置。
func (c LLMConfig) Gemini() ai.GeminiConfig {
	return ai.GeminiConfig{
		APIKey:  c.GeminiAPIKey,
		Model:   c.GeminiModel,
		BaseURL: c.GeminiBaseURL,
	}
}

// TTSConfig 描述远程语音合成配置
type TTSConfig struct {
	Provider string        `env:"TTS_PROVIDER" envDefault:"elevenlabs"`
	Timeout  time.Duration `env:"TTS_TIMEOUT" envDefault:"30s"`

	ElevenLabsAPIKey  string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsBaseURL string `env:"ELEVENLABS_BASE_URL"`
	ElevenLabsModel   string `env:"ELEVENLABS_MODEL"`

	VolcengineAppID       string `env:"VOLCENGINE_APP_ID"`
	VolcengineAccessToken string `env:"VOLCENGINE_ACCESS_TOKEN"`
	VolcengineURL         string `env:"VOLCENGINE_TTS_URL"`
	VolcengineSpeaker     string `env:"VOLCENGINE_SPEAKER"`
}

// ElevenLabs 转换为 ElevenLabs 客户端配置。
func (c TTSConfig) ElevenLabs() voice.ElevenLabsConfig {
	return voice.ElevenLabsConfig{
		APIKey:  c.ElevenLabsAPIKey,
		BaseURL: c.ElevenLabsBaseURL,
		Model:   c.ElevenLabsModel,
		Timeout: c.Timeout,
	}
}

// Volcengine 转换为火山引擎客户端配置。
func (c TTSConfig) Volcengine() voice.VolcengineConfig {
	return voice.VolcengineConfig{
		AppID:       c.VolcengineAppID,
		AccessToken: c.VolcengineAccessToken,
		URL:         c.VolcengineURL,
		Speaker:     c.VolcengineSpeaker,
		Timeout:     c.Timeout,
	}
}

// LocalSpeechConfig 描述本地 espeak-ng 合成
type LocalSpeechConfig struct {
	Enabled bool   `env:"LOCAL_TTS_ENABLED" envDefault:"true"`
	Binary  string `env:"ESPEAK_BINARY" envDefault:"espeak-ng"`
}

// StoreConfig 描述会话历史的存储后端
type StoreConfig struct {
	Backend        string        `env:"STORE_BACKEND" envDefault:"memory"`
	PersistTimeout time.Duration `env:"PERSIST_TIMEOUT" envDefault:"5s"`

	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisTTL      time.Duration `env:"REDIS_TTL" envDefault:"168h"`

	DatabaseURL string `env:"DATABASE_URL"`
}

// Redis 转换为 Redis 连接配置。
func (c StoreConfig) Redis() store.RedisConfig {
	return store.RedisConfig{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		TTL:      c.RedisTTL,
	}
}
