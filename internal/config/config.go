package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr     string
	Env      string
	LogLevel logrus.Level

	Mongo      MongoConfig
	JWTSecret  string
	Cloudinary CloudinaryConfig

	CORSAllowedOrigins []string

	// BusinessLocation is the timezone shop opening hours are evaluated in.
	BusinessLocation        *time.Location
	HoursOvernightCarryOver bool
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Enabled reports whether every credential needed to talk to Cloudinary is set.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr: GetString("ADDR", ":8080"),
		Env:  GetString("ENV", "development"),
		Mongo: MongoConfig{
			URI:      GetString("MONGO_URI", "mongodb://localhost:27017"),
			Database: GetString("MONGO_DATABASE", "vendora"),
			Timeout:  GetDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		JWTSecret: GetString("JWT_SECRET", ""),
		Cloudinary: CloudinaryConfig{
			CloudName: GetString("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    GetString("CLOUDINARY_API_KEY", ""),
			APISecret: GetString("CLOUDINARY_API_SECRET", ""),
			Folder:    GetString("CLOUDINARY_FOLDER", "vendora/products"),
		},
		CORSAllowedOrigins:      GetList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		HoursOvernightCarryOver: GetBool("HOURS_OVERNIGHT_CARRYOVER", false),
	}

	level, err := logrus.ParseLevel(GetString("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	tz := GetString("BUSINESS_TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", tz, err)
	}
	cfg.BusinessLocation = loc

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func GetString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	return strings.TrimSpace(val)
}

func GetInt(key string, fallback int) int {
	val, err := strconv.Atoi(GetString(key, ""))
	if err != nil {
		return fallback
	}
	return val
}

func GetBool(key string, fallback bool) bool {
	val, err := strconv.ParseBool(GetString(key, ""))
	if err != nil {
		return fallback
	}
	return val
}

// GetDuration accepts Go duration strings ("15s") or a bare number of seconds.
func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := GetString(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs := GetInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func GetList(key string, fallback []string) []string {
	raw := GetString(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
