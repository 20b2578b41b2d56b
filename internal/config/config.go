package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	LogFile      string
	MaxUploadMB  int

	// сопоставление
	MatchThreshold float64
	ReviewWorkers  int

	// API склада; пустой URL: commit недоступен
	InventoryURL     string
	InventoryToken   string
	InventoryTimeout time.Duration

	// каталог из выгрузки, если API склада не задан
	CatalogFile      string
	CatalogHeaderRow int

	// кэш поиска; пустой адрес: без кэша
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SearchCacheTTL time.Duration
}

// Load reads the environment. A .env file in the working directory is applied
// first; variables already set win.
func Load() Config {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() Config {
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         getenvInt("PORT", 8082),
		AllowOrigins: splitList(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFile:      getenv("LOG_FILE", "logs/oficina-import.log"),
		MaxUploadMB:  getenvInt("MAX_UPLOAD_MB", 32),

		MatchThreshold: getenvFloat("MATCH_THRESHOLD", 0.6),
		ReviewWorkers:  getenvInt("REVIEW_WORKERS", 4),

		InventoryURL:     strings.TrimRight(getenv("INVENTORY_URL", ""), "/"),
		InventoryToken:   getenv("INVENTORY_TOKEN", ""),
		InventoryTimeout: getenvSeconds("INVENTORY_TIMEOUT_SEC", 10),

		CatalogFile:      getenv("CATALOG_FILE", ""),
		CatalogHeaderRow: getenvInt("CATALOG_HEADER_ROW", 1),

		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		RedisDB:        getenvInt("REDIS_DB", 0),
		SearchCacheTTL: getenvSeconds("SEARCH_CACHE_TTL_SEC", 300),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	n, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(k string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(getenv(k, ""), ",", "."), 64)
	if err != nil {
		return def
	}
	return f
}

func getenvSeconds(k string, def int) time.Duration {
	return time.Duration(getenvInt(k, def)) * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
