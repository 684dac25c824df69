package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// defaultAPIURL endpoint de producción del backend; se usa si API_URL no está definida.
const defaultAPIURL = "http://inventory-api-env.eba-hh4nwx6q.us-east-1.elasticbeanstalk.com/api"

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP del panel.
type HTTPConfig struct {
	Host         string
	Port         int
	TemplatesDir string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig configuración del cliente hacia el backend de inventario.
type BackendConfig struct {
	APIURL         string
	TimeoutSeconds int
}

// Timeout devuelve el timeout del cliente HTTP saliente.
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig configuración de la sesión local.
type SessionConfig struct {
	TokenFile string // ruta del archivo donde persiste el bearer token
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_URL, HTTP_PORT, TOKEN_FILE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "production"),
			Name:     getString(v, "APP_NAME", "inventory-panel"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 3000),
			TemplatesDir: getString(v, "TEMPLATES_DIR", "./web/templates"),
		},
		Backend: BackendConfig{
			APIURL:         strings.TrimRight(getString(v, "API_URL", defaultAPIURL), "/"),
			TimeoutSeconds: getInt(v, "HTTP_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			TokenFile: getString(v, "TOKEN_FILE", defaultTokenFile()),
		},
	}

	return cfg, nil
}

// defaultTokenFile ubica el token bajo el directorio de configuración del
// usuario; si no se puede resolver, cae al directorio de trabajo.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".inventory-panel/auth_token"
	}
	return filepath.Join(dir, "inventory-panel", "auth_token")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
