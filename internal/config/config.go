package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Redis     Redis     `mapstructure:",squash"`
	Dashboard Dashboard `mapstructure:",squash"`
	Sync      Sync      `mapstructure:",squash"`
	Ingestion Ingestion `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN             string        `mapstructure:"-"`
	Driver          string        `mapstructure:"database_driver"`
	Password        string        `mapstructure:"database_password"`
	URL             string        `mapstructure:"database_url"`
	User            string        `mapstructure:"database_user"`
	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"database_conn_max_idle_time"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type App struct {
	LogLevel         string `mapstructure:"log_level"`
	LogFormat        string `mapstructure:"log_format"`
	BusinessTimezone string `mapstructure:"business_timezone"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Dashboard agrupa os parâmetros do caminho de leitura das métricas
type Dashboard struct {
	CampaignLimit   int    `mapstructure:"dashboard_campaign_limit"`
	TopCampaigns    int    `mapstructure:"dashboard_top_campaigns"`
	DefaultPlatform string `mapstructure:"dashboard_default_platform"`
	Currency        string `mapstructure:"dashboard_currency"`
	Locale          string `mapstructure:"dashboard_locale"`
	// visões sem acesso por ViewTTL são encerradas
	ViewTTL         time.Duration `mapstructure:"dashboard_view_ttl"`
	MaxViewsPerUser int           `mapstructure:"dashboard_max_views_per_user"`
}

// Sync agrupa os parâmetros do agendador de sincronização
type Sync struct {
	Enabled         bool          `mapstructure:"sync_enabled"`
	TodayThrottle   time.Duration `mapstructure:"sync_today_throttle"`
	DefaultThrottle time.Duration `mapstructure:"sync_default_throttle"`
	TodayInterval   time.Duration `mapstructure:"sync_today_interval"`
	MaxDays         int           `mapstructure:"sync_max_days"`
	StateBackend    string        `mapstructure:"sync_state_backend"`
	StateKeyPrefix  string        `mapstructure:"sync_state_key_prefix"`
}

type Ingestion struct {
	URL     string        `mapstructure:"ingestion_url"`
	Token   string        `mapstructure:"ingestion_token"`
	Timeout time.Duration `mapstructure:"ingestion_timeout"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("BUSINESS_TIMEZONE", "America/Sao_Paulo")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "5m")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("DASHBOARD_CAMPAIGN_LIMIT", 1000)
	viper.SetDefault("DASHBOARD_TOP_CAMPAIGNS", 5)
	viper.SetDefault("DASHBOARD_DEFAULT_PLATFORM", "meta")
	viper.SetDefault("DASHBOARD_CURRENCY", "BRL")
	viper.SetDefault("DASHBOARD_LOCALE", "pt-BR")
	viper.SetDefault("DASHBOARD_VIEW_TTL", "30m")
	viper.SetDefault("DASHBOARD_MAX_VIEWS_PER_USER", 10)

	viper.SetDefault("SYNC_ENABLED", true)
	viper.SetDefault("SYNC_TODAY_THROTTLE", "15s")  // Dados de hoje mudam rápido
	viper.SetDefault("SYNC_DEFAULT_THROTTLE", "60s") // Demais filtros
	viper.SetDefault("SYNC_TODAY_INTERVAL", "5m")    // Ressincronização periódica do filtro "hoje"
	viper.SetDefault("SYNC_MAX_DAYS", 30)
	viper.SetDefault("SYNC_STATE_BACKEND", "redis")
	viper.SetDefault("SYNC_STATE_KEY_PREFIX", "dashboard:last_sync:")

	viper.SetDefault("INGESTION_URL", "http://localhost:54321/functions/v1/sync-insights")
	viper.SetDefault("INGESTION_TOKEN", "")
	viper.SetDefault("INGESTION_TIMEOUT", "0s")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if _, err := time.LoadLocation(config.App.BusinessTimezone); err != nil {
		return nil, fmt.Errorf("fuso horário de negócio inválido %q: %w", config.App.BusinessTimezone, err)
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Location retorna o fuso horário de negócio já validado em NewConfig
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
