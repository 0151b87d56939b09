package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host          string `yaml:"host" json:"host"`
	Port          int    `yaml:"port" json:"port"`
	Secret        string `yaml:"secret" json:"secret"`
	SessionDays   int    `yaml:"session_days" json:"session_days"`
	SecureCookies bool   `yaml:"secure_cookies" json:"secure_cookies"`
}

type DBConfig struct {
	Type    string `yaml:"type" json:"type"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Name    string `yaml:"name" json:"name"`
	User    string `yaml:"user" json:"user"`
	Passwd  string `yaml:"passwd" json:"passwd"`
	MaxConn int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int   `yaml:"idle_conn" json:"idle_conn"`
	Debug   bool   `yaml:"debug" json:"debug"`
}

// AdminConfig is the bootstrap operator account, provisioned once if absent.
type AdminConfig struct {
	Name     string `yaml:"name" json:"name"`
	Email    string `yaml:"email" json:"email"`
	Password string `yaml:"password" json:"password"`
	BcryptCost int  `yaml:"bcrypt_cost" json:"bcrypt_cost"`
}

// MediaConfig points at a cloudinary-style unsigned upload endpoint.
type MediaConfig struct {
	UploadURL string `yaml:"upload_url" json:"upload_url"`
	Preset    string `yaml:"preset" json:"preset"`
	Folder    string `yaml:"folder" json:"folder"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	NotifyTo string `yaml:"notify_to" json:"notify_to"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SystemConfig `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Admin    AdminConfig  `yaml:"admin" json:"admin"`
	Media    MediaConfig  `yaml:"media" json:"media"`
	Smtp     SmtpConfig   `yaml:"smtp" json:"smtp"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = AppConfig{
	System: SystemConfig{
		Appid:    "bioquip",
		Location: "Asia/Kolkata",
		Workdir:  "/var/bioquip",
		Debug:    false,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          1816,
		Secret:        "9b6de5cc-bioquip-1816-8d3c-2f86e1295cf2",
		SessionDays:   7,
		SecureCookies: true,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "bioquip",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Admin: AdminConfig{
		Name:       "Super Admin",
		Email:      "admin@example.com",
		Password:   "admin123",
		BcryptCost: 10,
	},
	Media: MediaConfig{
		Folder: "products",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/bioquip/bioquip.log",
	},
}

// LoadConfig reads the YAML file at path when it exists, otherwise starts
// from defaults; a handful of environment variables override either source
// so containers can run without a config file.
func LoadConfig(path string) *AppConfig {
	cfg := DefaultAppConfig
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, &cfg)
		}
	}

	setEnvString(&cfg.System.Workdir, "BIOQUIP_WORKDIR")
	setEnvString(&cfg.Web.Host, "BIOQUIP_WEB_HOST")
	setEnvInt(&cfg.Web.Port, "BIOQUIP_WEB_PORT")
	setEnvString(&cfg.Web.Secret, "BIOQUIP_WEB_SECRET")
	setEnvString(&cfg.Database.Type, "BIOQUIP_DB_TYPE")
	setEnvString(&cfg.Database.Host, "BIOQUIP_DB_HOST")
	setEnvInt(&cfg.Database.Port, "BIOQUIP_DB_PORT")
	setEnvString(&cfg.Database.Name, "BIOQUIP_DB_NAME")
	setEnvString(&cfg.Database.User, "BIOQUIP_DB_USER")
	setEnvString(&cfg.Database.Passwd, "BIOQUIP_DB_PASSWD")
	setEnvString(&cfg.Admin.Email, "BIOQUIP_ADMIN_EMAIL")
	setEnvString(&cfg.Admin.Password, "BIOQUIP_ADMIN_PASSWORD")
	setEnvString(&cfg.Media.UploadURL, "BIOQUIP_MEDIA_UPLOAD_URL")
	setEnvString(&cfg.Media.Preset, "BIOQUIP_MEDIA_PRESET")

	return &cfg
}

func setEnvString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func setEnvInt(dst *int, name string) {
	if v := os.Getenv(name); v != "" {
		if i := cast.ToInt(v); i != 0 {
			*dst = i
		}
	}
}
