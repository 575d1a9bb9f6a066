package config

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Surfaces maps the named notification destinations the engine posts to.
// Empty values mean the destination is not configured; operations that
// require one fail with a configuration error.
type Surfaces struct {
	Audit       string `mapstructure:"audit"`
	Movements   string `mapstructure:"movements"`
	Hearings    string `mapstructure:"hearings"`
	Intimations string `mapstructure:"intimations"`
	Debug       string `mapstructure:"debug"`
}

// Mail holds the sendgrid mirror settings for issued intimations.
type Mail struct {
	SendgridAPIKey string `mapstructure:"sendgrid_api_key"`
	FromEmail      string `mapstructure:"from_email"`
	RegistryEmail  string `mapstructure:"registry_email"`
}

// Blob holds the cloudinary credentials for transcript/document uploads.
type Blob struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
}

// Config holds the project config values
type Config struct {
	URL          string `mapstructure:"db_uri"`
	DatabaseName string `mapstructure:"db_name"`
	BaseURL      string `mapstructure:"base_url"`
	Port         string `mapstructure:"port"`

	// APIKey is the shared secret required by every route. When APIKeyHash
	// is set it takes precedence and incoming keys are compared against the
	// bcrypt hash instead.
	APIKey     string `mapstructure:"api_key"`
	APIKeyHash string `mapstructure:"api_key_hash"`
	JWTSecret  string `mapstructure:"jwt_secret"`

	// Roles maps role keys (judge, defender, admin) to the credential
	// identifiers the chat platform reports for an actor.
	Roles map[string]string `mapstructure:"roles"`

	// Instances maps an instance number (string key, viper limitation) to
	// the discussion-area surface reference for that instance.
	Instances map[string]string `mapstructure:"instances"`

	Surfaces Surfaces `mapstructure:"surfaces"`
	Mail     Mail     `mapstructure:"mail"`
	Blob     Blob     `mapstructure:"blob"`
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/process-api")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "3000")
	v.SetDefault("db_name", "doj")
	v.SetDefault("blob.folder", "processos")

	if err := v.ReadInConfig(); err != nil {
		// env-only deployments are fine, a missing file is not fatal
		zap.S().Infow("no config file found, relying on environment", "error", err)
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		zap.S().With(err).Error("failed to unmarshal config")
	}
	return c
}

// InstanceSurface returns the discussion-area surface reference configured
// for the given instance, or "" if none is configured.
func (c *Config) InstanceSurface(instance int) string {
	if c.Instances == nil {
		return ""
	}
	return c.Instances[strconv.Itoa(instance)]
}

// RoleCredential returns the credential identifier configured for a role
// key, or "" if the role is unknown.
func (c *Config) RoleCredential(roleKey string) string {
	if c.Roles == nil {
		return ""
	}
	return c.Roles[roleKey]
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
