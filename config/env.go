package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Env is the process bootstrap read from environment variables and flags.
// It only selects where the configuration document lives and how the
// process behaves; the document itself is loaded through storage.Gateway.
type Env struct {
	StorageMode string
	MongoURI    string
	MongoDB     string
	MongoCol    string
	LogLevel    string
	SessionPath string

	CacheTTL         int64
	CacheNumCounters int64
	CacheMaxCost     int64
}

func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.String("storage-mode", "", "config storage backend (file or mongodb)")
	flags.String("mongo-uri", "", "mongodb connection string")
	flags.String("mongo-db", "", "mongodb database name")
	flags.String("mongo-col", "", "mongodb collection name")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("session-path", "", "sqlite session database path for bot accounts")

	viper.BindPFlag("storage.mode", flags.Lookup("storage-mode"))
	viper.BindPFlag("mongo.uri", flags.Lookup("mongo-uri"))
	viper.BindPFlag("mongo.db", flags.Lookup("mongo-db"))
	viper.BindPFlag("mongo.col", flags.Lookup("mongo-col"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("session.path", flags.Lookup("session-path"))
}

// LoadEnv reads the bootstrap settings. Environment variables use the
// TELEFWD_ prefix with dots replaced by underscores, e.g.
// TELEFWD_STORAGE_MODE, TELEFWD_MONGO_URI.
func LoadEnv() *Env {
	viper.SetEnvPrefix("TELEFWD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("storage.mode", "file")
	viper.SetDefault("mongo.db", "telefwd-config")
	viper.SetDefault("mongo.col", "telefwd-instance-0")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("session.path", "data/session.db")

	viper.SetDefault("cache.ttl", 3600)
	viper.SetDefault("cache.num_counters", 10000)
	viper.SetDefault("cache.max_cost", 1<<20)

	return &Env{
		StorageMode:      viper.GetString("storage.mode"),
		MongoURI:         viper.GetString("mongo.uri"),
		MongoDB:          viper.GetString("mongo.db"),
		MongoCol:         viper.GetString("mongo.col"),
		LogLevel:         viper.GetString("log.level"),
		SessionPath:      viper.GetString("session.path"),
		CacheTTL:         viper.GetInt64("cache.ttl"),
		CacheNumCounters: viper.GetInt64("cache.num_counters"),
		CacheMaxCost:     viper.GetInt64("cache.max_cost"),
	}
}
