package config

import (
	"main/utils"
	"time"
)

// Storage backends for journal entries. The backend is chosen once at
// startup; everything downstream only sees the EntryStore interface.
const (
	StorageFile  = "file"
	StorageMongo = "mongo"
)

type AppConfig struct {
	Port           string
	StorageBackend string
	EntriesFile    string
	RedisURL       string
	SessionTTL     time.Duration
	Database       DatabaseConfig
}

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
}

func Load() AppConfig {
	return AppConfig{
		Port:           utils.GetEnvAsString("PORT", "8080"),
		StorageBackend: utils.GetEnvAsString("STORAGE_BACKEND", StorageFile),
		EntriesFile:    utils.GetEnvAsString("ENTRIES_FILE", "journal.json"),
		RedisURL:       utils.GetEnvAsString("REDIS_URL", ""),
		SessionTTL:     utils.GetEnvAsDuration("SESSION_CACHE_TTL", 30*time.Minute),
		Database:       LoadDatabaseConfig(),
	}
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "journal"),
	}
}
