package config

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HTTPPort           int           `yaml:"http_port" validate:"required"`
	JwtTTL             time.Duration `yaml:"jwt_ttl" validate:"required"`
	DefaultPageSize    int           `yaml:"default_page_size" validate:"required,min=1,max=100"`
	DefaultSearchLimit int           `yaml:"default_search_limit" validate:"required,min=1"`
	MaxSearchLimit     int           `yaml:"max_search_limit" validate:"required,gtefield=DefaultSearchLimit"`
	MaxTitleLength     int           `yaml:"max_title_length" validate:"required,min=1"`
	MaxBodyLength      int           `yaml:"max_body_length" validate:"required,min=1"`
	AllowedEmailDomain string        `yaml:"allowed_email_domain"` // regex; empty allows any domain
	CorsAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
	PostRatePerSecond  float64       `yaml:"post_rate_per_second" validate:"required,gt=0"`
	PostBurst          int           `yaml:"post_burst" validate:"required,min=1"`
	SearchRatePerIP    float64       `yaml:"search_rate_per_ip" validate:"required,gt=0"`
	SearchBurst        int           `yaml:"search_burst" validate:"required,min=1"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password" validate:"required"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key" validate:"required"`
	Pg     Pg     `yaml:"pg"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

// jwt_ttl is written in seconds
func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL * time.Second
}

// EmailDomainPattern compiles allowed_email_domain. Call it once at startup
// and hand the result to whoever needs it.
func (p *Public) EmailDomainPattern() (*regexp.Regexp, error) {
	if p.AllowedEmailDomain == "" {
		return nil, nil
	}
	re, err := regexp.Compile(p.AllowedEmailDomain)
	if err != nil {
		return nil, fmt.Errorf("invalid allowed_email_domain: %w", err)
	}
	return re, nil
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err = yaml.UnmarshalStrict(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(output); err != nil {
		panic(fmt.Sprintf("invalid config file %s: %v", configPath, err))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{Public: public, Private: private}
}
