package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPHost        string
	HTTPPort        int
	DataFile        string
	ReadOnlyFS      bool
	StaticDir       string
	ShutdownTimeout time.Duration
	NotifyTimeout   time.Duration
	LogLevel        string
}

// Mail holds the SMTP transport settings for outbound notifications. It is
// deliberately not part of Config: MailFromEnv reads the environment on every
// call so credential changes apply without a restart.
type Mail struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

// Configured reports whether enough is set to attempt a send.
func (m Mail) Configured() bool {
	return m.Host != "" && m.From != ""
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLINIBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3000)
	v.SetDefault("data.file", "data/appointments.json")
	v.SetDefault("data.read_only_fs", false)
	v.SetDefault("static.dir", "web")
	v.SetDefault("shutdown.timeout", "10s")
	v.SetDefault("notify.timeout", "15s")
	v.SetDefault("log.level", "info")

	_ = v.BindEnv("http.host", "CLINIBOOK_HTTP_HOST", "HTTP_HOST")
	_ = v.BindEnv("http.port", "CLINIBOOK_HTTP_PORT", "HTTP_PORT", "PORT")
	_ = v.BindEnv("data.file", "CLINIBOOK_DATA_FILE", "DATA_FILE")
	_ = v.BindEnv("data.read_only_fs", "CLINIBOOK_READ_ONLY_FS", "READ_ONLY_FS")
	_ = v.BindEnv("static.dir", "CLINIBOOK_STATIC_DIR", "STATIC_DIR")
	_ = v.BindEnv("shutdown.timeout", "CLINIBOOK_SHUTDOWN_TIMEOUT", "SHUTDOWN_TIMEOUT")
	_ = v.BindEnv("notify.timeout", "CLINIBOOK_NOTIFY_TIMEOUT", "NOTIFY_TIMEOUT")
	_ = v.BindEnv("log.level", "CLINIBOOK_LOG_LEVEL", "LOG_LEVEL")

	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown.timeout"))
	if err != nil {
		return Config{}, err
	}
	notifyTimeout, err := time.ParseDuration(v.GetString("notify.timeout"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPHost:        strings.TrimSpace(v.GetString("http.host")),
		HTTPPort:        v.GetInt("http.port"),
		DataFile:        v.GetString("data.file"),
		ReadOnlyFS:      v.GetBool("data.read_only_fs"),
		StaticDir:       v.GetString("static.dir"),
		ShutdownTimeout: shutdownTimeout,
		NotifyTimeout:   notifyTimeout,
		LogLevel:        v.GetString("log.level"),
	}, nil
}

// MailFromEnv reads the mail transport settings fresh from the environment.
// Called at dispatch time, never cached.
func MailFromEnv() Mail {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SMTP_PORT", 587)

	_ = v.BindEnv("SMTP_HOST")
	_ = v.BindEnv("SMTP_PORT")
	_ = v.BindEnv("SMTP_USER")
	_ = v.BindEnv("SMTP_PASS")
	_ = v.BindEnv("MAIL_FROM")
	_ = v.BindEnv("ADMIN_EMAIL")

	from := v.GetString("MAIL_FROM")
	if from == "" {
		from = v.GetString("SMTP_USER")
	}

	return Mail{
		Host:       v.GetString("SMTP_HOST"),
		Port:       v.GetInt("SMTP_PORT"),
		Username:   v.GetString("SMTP_USER"),
		Password:   v.GetString("SMTP_PASS"),
		From:       from,
		AdminEmail: v.GetString("ADMIN_EMAIL"),
	}
}
