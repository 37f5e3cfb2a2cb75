package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Blob driver identifiers.
const (
	BlobDriverVercel     = "vercel"
	BlobDriverFilesystem = "filesystem"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Admin   AdminConfig
	Blob    BlobConfig
	Outline OutlineConfig
	Export  ExportConfig
	CORS    CORSConfig
	Log     LogConfig
}

// AdminConfig carries the admin credential material. One verifier is
// selected: bcrypt when TokenHash is set, a constant-time comparison
// when Token is set, JWT when only JWTSecret is set.
type AdminConfig struct {
	Token     string
	TokenHash string
	JWTSecret string
}

// BlobConfig selects and configures the backing object store.
type BlobConfig struct {
	Driver string

	// Vercel driver.
	ReadWriteToken string
	APIBaseURL     string
	StoreBaseURL   string

	// Filesystem driver.
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	PublicBaseURL   string
}

// OutlineConfig configures the LLM outline-draft provider.
type OutlineConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// ExportConfig tunes document generation.
type ExportConfig struct {
	BrandName    string
	BrandTagline string
	BrandDomain  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Admin = AdminConfig{
		Token:     v.GetString("ADMIN_TOKEN"),
		TokenHash: v.GetString("ADMIN_TOKEN_HASH"),
		JWTSecret: v.GetString("ADMIN_JWT_SECRET"),
	}

	cfg.Blob = BlobConfig{
		Driver:          strings.ToLower(v.GetString("BLOB_DRIVER")),
		ReadWriteToken:  v.GetString("BLOB_READ_WRITE_TOKEN"),
		APIBaseURL:      v.GetString("BLOB_API_BASE_URL"),
		StoreBaseURL:    v.GetString("BLOB_STORE_BASE_URL"),
		StorageDir:      v.GetString("BLOB_STORAGE_DIR"),
		SignedURLSecret: v.GetString("BLOB_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("BLOB_SIGNED_URL_TTL"), 30*time.Minute),
		PublicBaseURL:   v.GetString("PUBLIC_BASE_URL"),
	}

	cfg.Outline = OutlineConfig{
		APIKey:  v.GetString("OPENAI_API_KEY"),
		Model:   v.GetString("OUTLINE_MODEL"),
		BaseURL: v.GetString("OUTLINE_BASE_URL"),
		Timeout: parseDuration(v.GetString("OUTLINE_TIMEOUT"), 60*time.Second),
	}

	cfg.Export = ExportConfig{
		BrandName:    v.GetString("EXPORT_BRAND_NAME"),
		BrandTagline: v.GetString("EXPORT_BRAND_TAGLINE"),
		BrandDomain:  v.GetString("EXPORT_BRAND_DOMAIN"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "")

	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("ADMIN_TOKEN_HASH", "")
	v.SetDefault("ADMIN_JWT_SECRET", "")

	v.SetDefault("BLOB_DRIVER", BlobDriverVercel)
	v.SetDefault("BLOB_READ_WRITE_TOKEN", "")
	v.SetDefault("BLOB_API_BASE_URL", "https://api.vercel.com/v2/blob")
	v.SetDefault("BLOB_STORE_BASE_URL", "https://blob.vercel-storage.com")
	v.SetDefault("BLOB_STORAGE_DIR", "./blobdata")
	v.SetDefault("BLOB_SIGNED_URL_SECRET", "dev_blob_secret")
	v.SetDefault("BLOB_SIGNED_URL_TTL", "30m")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OUTLINE_MODEL", "gpt-4o-mini")
	v.SetDefault("OUTLINE_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OUTLINE_TIMEOUT", "60s")

	v.SetDefault("EXPORT_BRAND_NAME", "Legacy Learning Consulting")
	v.SetDefault("EXPORT_BRAND_TAGLINE", "Learning Strategy")
	v.SetDefault("EXPORT_BRAND_DOMAIN", "legacylearningconsulting.com")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
