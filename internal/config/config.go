package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid marks a configuration that cannot start the service
var ErrInvalid = errors.New("invalid configuration")

// Store backends
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

// Cache backends
const (
	CacheRedis = "redis"
	CacheNone  = "none"
)

// HeuristicWeights weight the no-model fallback score
type HeuristicWeights struct {
	Attendance      float64
	GPA             float64
	FinancialStress float64
	FamilySupport   float64
}

// Config is the full service configuration
type Config struct {
	HTTPPort    string
	CORSOrigins []string

	StoreBackend  string
	MongoURI      string
	MongoDatabase string
	SQLitePath    string

	CacheBackend string
	RedisAddr    string

	JWTSecret string
	TokenTTL  time.Duration

	ModelPath        string
	ModelRequired    bool
	HeuristicWeights HeuristicWeights

	AlertQueueSize   int
	AnalyticsRefresh string
	AnalyticsTTL     time.Duration

	AI *AIConfig
}

// SetDefaults registers every default and the legacy environment names
// on v. Keys map to RISKWATCH_* variables.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix("RISKWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.port", "8080")
	v.SetDefault("cors.origins", []string{"*"})
	v.SetDefault("store.backend", StoreMongo)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("mongo.database", "riskwatch")
	v.SetDefault("sqlite.path", "riskwatch.db")
	v.SetDefault("cache.backend", CacheRedis)
	v.SetDefault("redis.uri", "localhost:6379")
	v.SetDefault("auth.jwt_secret", "dev-secret-change-in-production")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("model.path", "model.json")
	v.SetDefault("model.required", false)
	v.SetDefault("heuristic.weights.attendance", 0.4)
	v.SetDefault("heuristic.weights.gpa", 0.4)
	v.SetDefault("heuristic.weights.financial_stress", 0.2)
	v.SetDefault("heuristic.weights.family_support", 0.2)
	v.SetDefault("alert.queue_size", 64)
	v.SetDefault("analytics.refresh", "@every 5m")
	v.SetDefault("analytics.ttl", 5*time.Minute)
	setAIDefaults(v)

	// Names used by existing deployments
	_ = v.BindEnv("http.port", "RISKWATCH_HTTP_PORT", "PORT")
	_ = v.BindEnv("mongo.uri", "RISKWATCH_MONGO_URI", "MONGO_URI")
	_ = v.BindEnv("redis.uri", "RISKWATCH_REDIS_URI", "REDIS_URI")
	_ = v.BindEnv("auth.jwt_secret", "RISKWATCH_AUTH_JWT_SECRET", "JWT_SECRET")
}

// Load reads configuration from v, which must have had SetDefaults applied
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTPPort:      v.GetString("http.port"),
		CORSOrigins:   v.GetStringSlice("cors.origins"),
		StoreBackend:  strings.ToLower(v.GetString("store.backend")),
		MongoURI:      v.GetString("mongo.uri"),
		MongoDatabase: v.GetString("mongo.database"),
		SQLitePath:    v.GetString("sqlite.path"),
		CacheBackend:  strings.ToLower(v.GetString("cache.backend")),
		RedisAddr:     strings.TrimPrefix(v.GetString("redis.uri"), "redis://"),
		JWTSecret:     v.GetString("auth.jwt_secret"),
		TokenTTL:      v.GetDuration("auth.token_ttl"),
		ModelPath:     v.GetString("model.path"),
		ModelRequired: v.GetBool("model.required"),
		HeuristicWeights: HeuristicWeights{
			Attendance:      v.GetFloat64("heuristic.weights.attendance"),
			GPA:             v.GetFloat64("heuristic.weights.gpa"),
			FinancialStress: v.GetFloat64("heuristic.weights.financial_stress"),
			FamilySupport:   v.GetFloat64("heuristic.weights.family_support"),
		},
		AlertQueueSize:   v.GetInt("alert.queue_size"),
		AnalyticsRefresh: v.GetString("analytics.refresh"),
		AnalyticsTTL:     v.GetDuration("analytics.ttl"),
		AI:               loadAIConfig(v),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreMongo, StoreSQLite:
	default:
		return fmt.Errorf("%w: store.backend %q (want mongo or sqlite)", ErrInvalid, c.StoreBackend)
	}
	switch c.CacheBackend {
	case CacheRedis, CacheNone:
	default:
		return fmt.Errorf("%w: cache.backend %q (want redis or none)", ErrInvalid, c.CacheBackend)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is empty", ErrInvalid)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: auth.token_ttl must be positive", ErrInvalid)
	}
	if c.ModelRequired && c.ModelPath == "" {
		return fmt.Errorf("%w: model.required is set but model.path is empty", ErrInvalid)
	}
	w := c.HeuristicWeights
	if w.Attendance < 0 || w.GPA < 0 || w.FinancialStress < 0 || w.FamilySupport < 0 {
		return fmt.Errorf("%w: heuristic weights must be >= 0", ErrInvalid)
	}
	if w.Attendance+w.GPA+w.FinancialStress+w.FamilySupport <= 0 {
		return fmt.Errorf("%w: heuristic weights sum to zero", ErrInvalid)
	}
	return c.AI.Validate()
}
