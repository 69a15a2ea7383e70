package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	RedisAddr string
	RedisDB   int
	RedisPass string

	BackendBase    string
	BackendRPS     int
	BackendTimeout time.Duration
	BackendStrict  bool

	NotificationTTL    time.Duration
	HotelTZ            *time.Location
	CopyrightStartYear int

	PrerenderDir     string
	PrerenderWorkers int
}

// Load reads the environment, after applying ./.env when it exists.
func Load() Config { return LoadFiles(".env") }

// LoadFiles is Load with explicit dotenv files. Variables already set in the
// environment win over the files; missing files are skipped.
func LoadFiles(files ...string) Config {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", f).Msg("dotenv file not loaded")
		}
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		BackendBase:    env("BACKEND_BASE_URL", "http://localhost:5000"),
		BackendRPS:     atoi("BACKEND_RPS", 20),
		BackendTimeout: time.Duration(atoi("BACKEND_TIMEOUT_SECONDS", 20)) * time.Second,
		BackendStrict:  envBool("BACKEND_STRICT_STATUS", false),

		NotificationTTL:    time.Duration(atoi("NOTIFICATION_TTL_SECONDS", 5)) * time.Second,
		HotelTZ:            time.Local,
		CopyrightStartYear: atoi("COPYRIGHT_START_YEAR", 2021),

		PrerenderDir:     env("PRERENDER_DIR", "./public"),
		PrerenderWorkers: atoi("PRERENDER_WORKERS", 4),
	}
	if tz := os.Getenv("HOTEL_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Warn().Err(err).Str("tz", tz).Msg("unknown HOTEL_TZ, using local time")
		} else {
			c.HotelTZ = loc
		}
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
