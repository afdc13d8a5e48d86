package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CapacityBand ограничивает вместимость комнаты сверху для групп до MaxGroupSize человек
type CapacityBand struct {
	MaxGroupSize int
	MaxCapacity  int
}

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string
	LogLevel      string

	APIBaseURL string
	APIToken   string
	APITimeout time.Duration

	RedisURL   string
	SessionTTL time.Duration

	AdminTelegramIDs []int64

	HTTPAddr      string
	WebhookURL    string
	WebhookSecret string

	OnlineBranchID      int64
	RoomCapacityBands   []CapacityBand
	DigestHour          int
	Timezone            string
	Location            *time.Location
	ParticipantDebounce time.Duration
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   getEnv("ENV", "development"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		APIBaseURL:    strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		APIToken:      os.Getenv("API_TOKEN"),
		RedisURL:      os.Getenv("REDIS_URL"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8081"),
		WebhookURL:    os.Getenv("WEBHOOK_URL"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		Timezone:      getEnv("TIMEZONE", "Asia/Bangkok"),
	}

	var err error
	if cfg.APITimeout, err = getEnvDuration("API_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ParticipantDebounce, err = getEnvDuration("PARTICIPANT_DEBOUNCE", 300*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.OnlineBranchID, err = getEnvInt64("ONLINE_BRANCH_ID", 3); err != nil {
		return nil, err
	}

	digestHour, err := getEnvInt64("DIGEST_HOUR", 20)
	if err != nil {
		return nil, err
	}
	if digestHour < 0 || digestHour > 23 {
		return nil, fmt.Errorf("DIGEST_HOUR must be within 0..23, got %d", digestHour)
	}
	cfg.DigestHour = int(digestHour)

	if cfg.AdminTelegramIDs, err = ParseIDList(os.Getenv("ADMIN_TELEGRAM_IDS")); err != nil {
		return nil, fmt.Errorf("parse ADMIN_TELEGRAM_IDS: %w", err)
	}

	if cfg.RoomCapacityBands, err = ParseCapacityBands(getEnv("ROOM_CAPACITY_BANDS", DefaultCapacityBands)); err != nil {
		return nil, fmt.Errorf("parse ROOM_CAPACITY_BANDS: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required but not set")
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required but not set")
	}
	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsBootstrapAdmin сообщает, указан ли пользователь в ADMIN_TELEGRAM_IDS
func (c *Config) IsBootstrapAdmin(telegramID int64) bool {
	for _, id := range c.AdminTelegramIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// UseWebhook is true when the bot should receive updates over HTTP instead of long polling.
func (c *Config) UseWebhook() bool {
	return c.WebhookURL != ""
}

// DefaultCapacityBands: <=2 -> 4, <=6 -> 6, <=10 -> 10, больше 10 - без верхней границы
const DefaultCapacityBands = "2:4,6:6,10:10"

// ParseCapacityBands разбирает строку вида "2:4,6:6,10:10"
func ParseCapacityBands(raw string) ([]CapacityBand, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var bands []CapacityBand
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pair := strings.SplitN(part, ":", 2)
		if len(pair) != 2 {
			return nil, fmt.Errorf("band %q: expected size:capacity", part)
		}
		size, err := strconv.Atoi(strings.TrimSpace(pair[0]))
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("band %q: invalid group size", part)
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(pair[1]))
		if err != nil || capacity < size {
			return nil, fmt.Errorf("band %q: capacity must be a number >= group size", part)
		}
		bands = append(bands, CapacityBand{MaxGroupSize: size, MaxCapacity: capacity})
	}

	sort.Slice(bands, func(i, j int) bool {
		return bands[i].MaxGroupSize < bands[j].MaxGroupSize
	})

	return bands, nil
}

// ParseIDList разбирает список telegram id через запятую
func ParseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}
