package app

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"libtool/db"
)

// Aliases so main can register ad-hoc handlers without importing gin.
type Ctx = gin.Context
type H = gin.H

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config
}

// Config is read from environment variables.
type Config struct {
	RedisAddr     string
	RedisPwd      string
	WebOrigins    []string
	StatsCacheTTL time.Duration
	SweepInterval time.Duration
}

func MustNew() *App {
	cfg := loadConfig()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigins)

	return &App{Router: r, DB: dbConn, RDB: rdb, Config: cfg}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	originsCSV := get("WEB_ORIGINS", "http://localhost:5173")
	var origins []string
	for _, o := range strings.Split(originsCSV, ",") {
		if s := strings.TrimSpace(o); s != "" {
			origins = append(origins, s)
		}
	}

	ttl := 30 * time.Second
	if sec, err := strconv.Atoi(get("STATS_CACHE_TTL_SECONDS", "30")); err == nil && sec > 0 {
		ttl = time.Duration(sec) * time.Second
	}

	// 0 disables the periodic sweep; the startup sweep and the manual
	// /api/issues/check-overdue trigger always remain.
	var sweep time.Duration
	if sec, err := strconv.Atoi(get("SWEEP_INTERVAL_SECONDS", "0")); err == nil && sec > 0 {
		sweep = time.Duration(sec) * time.Second
	}

	return Config{
		RedisAddr:     get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:      os.Getenv("REDIS_PASSWORD"),
		WebOrigins:    origins,
		StatsCacheTTL: ttl,
		SweepInterval: sweep,
	}
}
