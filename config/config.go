package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	PublicURL         string `mapstructure:"PUBLIC_URL"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisEmailQueueDB int    `mapstructure:"REDIS_EMAIL_QUEUE_DB"`

	// Stripe configuration.
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	StripePublicKey string `mapstructure:"STRIPE_PUBLIC_KEY"`

	// PayPal IPN configuration.
	PaypalServerURL string `mapstructure:"PAYPAL_SERVER_URL"`
	PaypalReturnURL string `mapstructure:"PAYPAL_RETURN_URL"`
	PaypalEmail     string `mapstructure:"PAYPAL_EMAIL"`

	// Outbound email configuration.
	SendgridAPIKey  string `mapstructure:"SENDGRID_API_KEY"`
	MembershipEmail string `mapstructure:"MEMBERSHIP_EMAIL"`
	SendEmails      bool   `mapstructure:"SEND_EMAILS"`

	// Renewal reminder job configuration.
	RenewalCronSpec string `mapstructure:"RENEWAL_CRON_SPEC"`
	RenewalLeadDays int    `mapstructure:"RENEWAL_LEAD_DAYS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("PUBLIC_URL", "http://localhost:8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_EMAIL_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "membership")
	viper.SetDefault("SEND_EMAILS", true)
	viper.SetDefault("MEMBERSHIP_EMAIL", "membership@pirateparty.org.au")
	// Every day at 07:30.
	viper.SetDefault("RENEWAL_CRON_SPEC", "00 30 7 * * *")
	viper.SetDefault("RENEWAL_LEAD_DAYS", 90)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// PaypalSandbox reports whether the configured IPN endpoint is the sandbox one.
func PaypalSandbox() bool {
	return strings.Contains(AppConfig.PaypalServerURL, ".sandbox.")
}
