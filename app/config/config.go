package config

import (
	"os"
	"time"

	"github.com/address-classifier/internal/matcher"
	"gopkg.in/yaml.v3"
)

type ServerCfg struct {
	Port             string `yaml:"port" json:"port"`
	Mode             string `yaml:"mode" json:"mode"` // debug | release
	RequestTimeoutMs int    `yaml:"request_timeout_ms" json:"request_timeout_ms"`
}

type CacheCfg struct {
	Backend    string `yaml:"backend" json:"backend"` // memory | redis | hybrid
	MemorySize int    `yaml:"memory_size" json:"memory_size"`
	TTLHours   int    `yaml:"ttl_hours" json:"ttl_hours"`
	RedisURL   string `yaml:"redis_url" json:"redis_url"`
	KeyPrefix  string `yaml:"key_prefix" json:"key_prefix"`
}

type MongoCfg struct {
	URI      string `yaml:"uri" json:"uri"`
	Database string `yaml:"database" json:"database"`
}

type ReviewCfg struct {
	Enabled    bool    `yaml:"enabled" json:"enabled"`
	Threshold  float64 `yaml:"threshold" json:"threshold"` // dưới ngưỡng này thì đẩy vào review queue
	Collection string  `yaml:"collection" json:"collection"`
}

type AppCfg struct {
	Server        ServerCfg      `yaml:"server" json:"server"`
	GazetteerPath string         `yaml:"gazetteer_path" json:"gazetteer_path"`
	Cache         CacheCfg       `yaml:"cache" json:"cache"`
	Mongo         MongoCfg       `yaml:"mongo" json:"mongo"`
	Review        ReviewCfg      `yaml:"review" json:"review"`
	Matcher       matcher.Config `yaml:"matcher" json:"matcher"`
}

var C AppCfg

// Load đọc config từ file yaml. Section matcher vắng mặt thì dùng mặc định
// của engine chứ không phải zero value.
func Load(path string) error {
	C.Matcher = matcher.DefaultConfig()
	C.Server = ServerCfg{Port: "8080", Mode: "release", RequestTimeoutMs: 1500}
	C.Cache = CacheCfg{Backend: "memory", MemorySize: 10000, TTLHours: 24, KeyPrefix: "addr_classifier:"}
	C.Review = ReviewCfg{Enabled: false, Threshold: 0.5, Collection: "classification_review"}
	C.GazetteerPath = "data/gazetteer.json"

	readErr := func() error {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(b, &C)
	}()

	// ENV overrides áp dụng kể cả khi thiếu file config
	if v := os.Getenv("APP_PORT"); v != "" {
		C.Server.Port = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		C.Cache.RedisURL = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		C.Mongo.URI = v
	}
	if v := os.Getenv("GAZETTEER_PATH"); v != "" {
		C.GazetteerPath = v
	}
	return readErr
}

func RequestTimeout() time.Duration {
	if C.Server.RequestTimeoutMs <= 0 {
		return 1500 * time.Millisecond
	}
	return time.Duration(C.Server.RequestTimeoutMs) * time.Millisecond
}
