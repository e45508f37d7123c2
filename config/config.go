package config

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "organics",
		Location: "Asia/Kolkata",
		Workdir:  "/var/organics",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 3000,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "organics",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/organics/organics.log",
	},
}

func setEnvStrValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		*val = cast.ToInt(v)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		*val = v == "true" || v == "1" || v == "on"
	}
}

// LoadConfig reads the YAML config file when it exists and applies
// ORGANICS_* environment overrides on top. A missing or empty path yields
// the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(errors.Wrap(err, "parse config file"))
			}
		}
	}

	setEnvStrValue("ORGANICS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("ORGANICS_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvStrValue("ORGANICS_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("ORGANICS_WEB_PORT", &cfg.Web.Port)

	setEnvStrValue("ORGANICS_DB_TYPE", &cfg.Database.Type)
	setEnvStrValue("ORGANICS_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("ORGANICS_DB_PORT", &cfg.Database.Port)
	setEnvStrValue("ORGANICS_DB_NAME", &cfg.Database.Name)
	setEnvStrValue("ORGANICS_DB_USER", &cfg.Database.User)
	setEnvStrValue("ORGANICS_DB_PWD", &cfg.Database.Passwd)

	setEnvStrValue("ORGANICS_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("ORGANICS_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvStrValue("ORGANICS_LOGGER_FILENAME", &cfg.Logger.Filename)

	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = path.Join(cfg.System.Workdir, "organics.log")
	}

	return cfg
}
