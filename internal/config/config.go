/**
 * @description
 * This file handles configuration management for the payment-monitor-service.
 * It loads settings from environment variables, providing defaults for the
 * monitoring schedule and tuning knobs, and validates the required secrets
 * so a misconfigured instance refuses to start.
 */
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all configuration for the payment monitor service.
type Config struct {
	ServerPort          string `mapstructure:"SERVER_PORT"`
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	MailerServiceURL    string `mapstructure:"MAILER_SERVICE_URL"`
	HostingAPIURL       string `mapstructure:"HOSTING_API_URL"`
	HostingAPIKey       string `mapstructure:"HOSTING_API_KEY"`
	RabbitMQURL         string `mapstructure:"RABBITMQ_URL"`
	AdminEventExchange  string `mapstructure:"ADMIN_EVENT_EXCHANGE"`
	MonitorTriggerToken string `mapstructure:"MONITOR_TRIGGER_TOKEN"`
	OperatorJWTSecret   string `mapstructure:"OPERATOR_JWT_SECRET"`
	MonitorSchedule     string `mapstructure:"MONITOR_SCHEDULE"`
	MonitorWorkerCount  int    `mapstructure:"MONITOR_WORKER_COUNT"`
	MonitorPassTimeout  int    `mapstructure:"MONITOR_PASS_TIMEOUT_SECONDS"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8085")
	viper.SetDefault("ADMIN_EVENT_EXCHANGE", "monitoring.events")
	viper.SetDefault("MONITOR_SCHEDULE", "0 6 * * *") // Daily at 06:00.
	viper.SetDefault("MONITOR_WORKER_COUNT", 16)
	viper.SetDefault("MONITOR_PASS_TIMEOUT_SECONDS", 300)
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("MAILER_SERVICE_URL")
	_ = viper.BindEnv("HOSTING_API_URL")
	_ = viper.BindEnv("HOSTING_API_KEY")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("ADMIN_EVENT_EXCHANGE")
	_ = viper.BindEnv("MONITOR_TRIGGER_TOKEN")
	_ = viper.BindEnv("OPERATOR_JWT_SECRET")
	_ = viper.BindEnv("MONITOR_SCHEDULE")
	_ = viper.BindEnv("MONITOR_WORKER_COUNT")
	_ = viper.BindEnv("MONITOR_PASS_TIMEOUT_SECONDS")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.MonitorTriggerToken == "" {
		return errors.New("MONITOR_TRIGGER_TOKEN is required")
	}
	if c.OperatorJWTSecret == "" {
		return errors.New("OPERATOR_JWT_SECRET is required")
	}
	if c.MailerServiceURL == "" {
		return errors.New("MAILER_SERVICE_URL is required")
	}
	if c.HostingAPIURL == "" {
		return errors.New("HOSTING_API_URL is required")
	}
	if c.MonitorWorkerCount <= 0 {
		return errors.New("MONITOR_WORKER_COUNT must be positive")
	}
	return nil
}
