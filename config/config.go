package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/zeeshansheikh0001/calorie-tracker-sub001/models"
)

// Config collects everything read from the environment. It is built once
// in main and handed to the components that need it; nothing reads the
// environment after startup.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// VAPID sender identity for web push. All three are required.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string // mailto: or https: contact

	// Shared secret the external cron scheduler presents to the trigger
	// endpoint.
	CronSecret string

	JWTSecret string

	// IANA name of the zone reminder times are interpreted in. The app
	// stores a single zone for all users; per-user zones are not
	// supported.
	Timezone string

	HTTPAddr         string
	LogLevel         string
	SchedulerEnabled bool
}

func Load() (Config, error) {
	// .env is optional outside local dev.
	_ = godotenv.Load()

	cfg := Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubject:    os.Getenv("VAPID_SUBJECT"),

		CronSecret: os.Getenv("CRON_SECRET"),
		JWTSecret:  os.Getenv("JWT_SECRET"),

		Timezone:         os.Getenv("REMINDER_TIMEZONE"),
		HTTPAddr:         os.Getenv("HTTP_ADDR"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		SchedulerEnabled: os.Getenv("SCHEDULER_ENABLED") == "true",
	}

	if cfg.VAPIDSubject == "" {
		cfg.VAPIDSubject = "mailto:admin@calorie-tracker.app"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		return cfg, fmt.Errorf("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY must be set")
	}
	if cfg.CronSecret == "" {
		return cfg, fmt.Errorf("CRON_SECRET must be set")
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

// Location resolves the configured reminder timezone, defaulting to the
// host zone when unset.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c Config) dsn() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// OpenDB connects to Postgres and migrates the schema.
func OpenDB(c Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.dsn()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ReminderRule{},
		&models.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
