package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	HTTPPort        int           `yaml:"http_port" validate:"required,min=1,max=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"required"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`

	Pg Pg `yaml:"pg"`

	JwtTTL time.Duration `yaml:"jwt_ttl" validate:"required"`

	// thread view pagination: first prefix length, growth per "load more", hard cap
	PageSize      int `yaml:"page_size" validate:"required,min=1"`
	PageIncrement int `yaml:"page_increment" validate:"required,min=1"`
	MaxPageSize   int `yaml:"max_page_size" validate:"required,gtefield=PageSize"`

	ThreadTitleMaxLen int `yaml:"thread_title_max_len" validate:"required,min=1"`
	PostTextMaxLen    int `yaml:"post_text_max_len" validate:"required,min=1"`

	RateLimits RateLimits `yaml:"rate_limits"`
}

type Pg struct {
	Host            string        `yaml:"host" validate:"required"`
	Port            int           `yaml:"port" validate:"required"`
	User            string        `yaml:"user" validate:"required"`
	Dbname          string        `yaml:"dbname" validate:"required"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Requests per second allowed per identity. Zero disables the limit.
type RateLimits struct {
	ReadPerIP    float64 `yaml:"read_per_ip"`
	WritePerUser float64 `yaml:"write_per_user"`
	VotePerUser  float64 `yaml:"vote_per_user"`
	Global       float64 `yaml:"global"`
}

type Private struct {
	PgPassword string `yaml:"pg_password" validate:"required"`
	JwtKey     string `yaml:"jwt_key" validate:"required,min=16"`
}

const (
	envPgPassword = "FORUM_PG_PASSWORD"
	envJwtKey     = "FORUM_JWT_KEY"
	envHTTPPort   = "FORUM_HTTP_PORT"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) PgPassword() string {
	return s.private.PgPassword
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// applyEnv overrides secrets and deployment knobs from the environment.
// A .env file in the config folder is loaded first; variables already set in
// the process environment win over it.
func applyEnv(configFolder string, public *Public, private *Private) {
	envFile := path.Join(configFolder, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			panic(fmt.Sprintf("can't load %s: %v", envFile, err))
		}
	}

	if v := os.Getenv(envPgPassword); v != "" {
		private.PgPassword = v
	}
	if v := os.Getenv(envJwtKey); v != "" {
		private.JwtKey = v
	}
	if v := os.Getenv(envHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Sprintf("%s is not a number: %q", envHTTPPort, v))
		}
		public.HTTPPort = port
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	// private.yaml is optional when every secret comes from the environment
	var private Private
	if _, err := os.Stat(path.Join(configFolder, "private.yaml")); err == nil {
		mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	}

	applyEnv(configFolder, &public, &private)

	if err := validate.Struct(public); err != nil {
		panic("invalid public config: " + err.Error())
	}
	if err := validate.Struct(private); err != nil {
		panic("invalid private config: " + err.Error())
	}

	return &Config{public, private}
}
