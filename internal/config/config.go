// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Cache   CacheConfig
	Metrics MetricsConfig
	Engine  EngineConfig
	Report  ReportConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	AnalyticsTTLSeconds int
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// EngineConfig holds the random seed and the defaults the HTTP and CLI
// boundaries apply to omitted request fields. CurrentStock, ShelfLifeDays and
// DemandPrediction are placeholders until the integrator wires real sources.
type EngineConfig struct {
	Seed                    uint64
	DefaultLocation         string
	DefaultTemperatureC     float64
	DefaultLeadTimeDays     int
	DefaultCurrentStock     int
	DefaultShelfLifeDays    float64
	DefaultDemandPrediction float64
	CostPerKg               float64
	BatchWorkers            int
}

// ReportConfig holds the baseline figures the analytics report is built from.
type ReportConfig struct {
	WasteReductionKg           float64
	FoodRedirectedKg           float64
	Beneficiaries              int
	EnergySavedKWh             float64
	WasteReductionPct          float64
	ResourceEfficiencyPct      float64
	CircularEconomyInitiatives int
}

var (
	once     sync.Once
	instance *Config
)

// Load reads configuration from the environment (and a .env file if present)
// once per process.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.New()
		v.AutomaticEnv()
		instance = FromViper(v)
	})

	return instance
}

// FromViper builds a Config from v after registering defaults on it.
func FromViper(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Cache: CacheConfig{
			Enabled:             v.GetBool("CACHE_ENABLED"),
			RedisURL:            v.GetString("REDIS_URL"),
			RedisHost:           v.GetString("REDIS_HOST"),
			RedisPort:           v.GetString("REDIS_PORT"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			AnalyticsTTLSeconds: v.GetInt("CACHE_ANALYTICS_TTL_SECONDS"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
		Engine: EngineConfig{
			Seed:                    v.GetUint64("ENGINE_SEED"),
			DefaultLocation:         v.GetString("ENGINE_DEFAULT_LOCATION"),
			DefaultTemperatureC:     v.GetFloat64("ENGINE_DEFAULT_TEMPERATURE_C"),
			DefaultLeadTimeDays:     v.GetInt("ENGINE_DEFAULT_LEAD_TIME_DAYS"),
			DefaultCurrentStock:     v.GetInt("ENGINE_DEFAULT_CURRENT_STOCK"),
			DefaultShelfLifeDays:    v.GetFloat64("ENGINE_DEFAULT_SHELF_LIFE_DAYS"),
			DefaultDemandPrediction: v.GetFloat64("ENGINE_DEFAULT_DEMAND_PREDICTION"),
			CostPerKg:               v.GetFloat64("ENGINE_COST_PER_KG"),
			BatchWorkers:            v.GetInt("ENGINE_BATCH_WORKERS"),
		},
		Report: ReportConfig{
			WasteReductionKg:           v.GetFloat64("REPORT_WASTE_REDUCTION_KG"),
			FoodRedirectedKg:           v.GetFloat64("REPORT_FOOD_REDIRECTED_KG"),
			Beneficiaries:              v.GetInt("REPORT_BENEFICIARIES"),
			EnergySavedKWh:             v.GetFloat64("REPORT_ENERGY_SAVED_KWH"),
			WasteReductionPct:          v.GetFloat64("REPORT_WASTE_REDUCTION_PCT"),
			ResourceEfficiencyPct:      v.GetFloat64("REPORT_RESOURCE_EFFICIENCY_PCT"),
			CircularEconomyInitiatives: v.GetInt("REPORT_CIRCULAR_ECONOMY_INITIATIVES"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_ANALYTICS_TTL_SECONDS", 60)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")

	// 0 seeds every call from runtime entropy
	v.SetDefault("ENGINE_SEED", 0)
	v.SetDefault("ENGINE_DEFAULT_LOCATION", "store1")
	v.SetDefault("ENGINE_DEFAULT_TEMPERATURE_C", 4.0)
	v.SetDefault("ENGINE_DEFAULT_LEAD_TIME_DAYS", 3)
	v.SetDefault("ENGINE_DEFAULT_CURRENT_STOCK", 100)
	v.SetDefault("ENGINE_DEFAULT_SHELF_LIFE_DAYS", 7.0)
	v.SetDefault("ENGINE_DEFAULT_DEMAND_PREDICTION", 150.0)
	v.SetDefault("ENGINE_COST_PER_KG", 4.5)
	v.SetDefault("ENGINE_BATCH_WORKERS", 4)

	v.SetDefault("REPORT_WASTE_REDUCTION_KG", 5000.0)
	v.SetDefault("REPORT_FOOD_REDIRECTED_KG", 2450.0)
	v.SetDefault("REPORT_BENEFICIARIES", 1200)
	v.SetDefault("REPORT_ENERGY_SAVED_KWH", 45000.0)
	v.SetDefault("REPORT_WASTE_REDUCTION_PCT", 32.5)
	v.SetDefault("REPORT_RESOURCE_EFFICIENCY_PCT", 28.7)
	v.SetDefault("REPORT_CIRCULAR_ECONOMY_INITIATIVES", 5)
}
