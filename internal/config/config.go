// Package config loads the process-wide configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the immutable configuration loaded once at startup.
type Config struct {
	Port string
	Env  string // development, production

	// Outbound mail
	GmailUser     string
	GmailPassword string
	Subject       string
	BodyTemplate  string
	SMTPHost      string
	SMTPPort      int
	SMTPTimeout   time.Duration

	// Model artifacts
	ImageModelURL       string
	TabularModelPath    string
	AccountEncoderPath  string
	Account1EncoderPath string
	PaymentEncoderPath  string
	ELAQuality          int

	UploadDir     string
	SessionSecret string
}

// Load reads config.json with environment-variable overrides. Credentials
// may come from either source; a .env file is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_timeout", "15s")
	v.SetDefault("image_model_url", "http://localhost:8501/v1/models/invoice_cnn")
	v.SetDefault("tabular_model_path", "model/fraud_model.txt")
	v.SetDefault("account_encoder_path", "model/account_encoder.json")
	v.SetDefault("account1_encoder_path", "model/account1_encoder.json")
	v.SetDefault("payment_encoder_path", "model/payment_encoder.json")
	v.SetDefault("ela_quality", 90)
	v.SetDefault("upload_dir", "static/uploads")
	v.SetDefault("session_secret", "supersecretkey")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := &Config{
		Port:                v.GetString("port"),
		Env:                 v.GetString("env"),
		GmailUser:           v.GetString("gmail_user"),
		GmailPassword:       v.GetString("gmail_password"),
		Subject:             v.GetString("subject"),
		BodyTemplate:        v.GetString("body_template"),
		SMTPHost:            v.GetString("smtp_host"),
		SMTPPort:            v.GetInt("smtp_port"),
		SMTPTimeout:         v.GetDuration("smtp_timeout"),
		ImageModelURL:       v.GetString("image_model_url"),
		TabularModelPath:    v.GetString("tabular_model_path"),
		AccountEncoderPath:  v.GetString("account_encoder_path"),
		Account1EncoderPath: v.GetString("account1_encoder_path"),
		PaymentEncoderPath:  v.GetString("payment_encoder_path"),
		ELAQuality:          v.GetInt("ela_quality"),
		UploadDir:           v.GetString("upload_dir"),
		SessionSecret:       v.GetString("session_secret"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GmailUser == "" {
		return fmt.Errorf("gmail_user is required")
	}
	if c.GmailPassword == "" {
		return fmt.Errorf("gmail_password is required")
	}
	if c.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if c.BodyTemplate == "" {
		return fmt.Errorf("body_template is required")
	}
	if c.ImageModelURL == "" {
		return fmt.Errorf("image_model_url is required")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
