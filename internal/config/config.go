package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/startup-radar/internal/domain/evaluation"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey         string  `yaml:"apiKey"`
		Model          string  `yaml:"model"`
		Enabled        bool    `yaml:"enabled"`
		TimeoutSeconds int     `yaml:"timeoutSeconds"`
		RatePerSecond  float64 `yaml:"ratePerSecond"`
		Burst          int     `yaml:"burst"`
	} `yaml:"openai"`

	Scoring struct {
		TaxonomyPath    string             `yaml:"taxonomyPath"`
		MinConfidence   int                `yaml:"minConfidence"`
		AllowCrossTopic bool               `yaml:"allowCrossTopic"`
		Workers         int                `yaml:"workers"`
		Competitors     []string           `yaml:"competitors"`
		Weights         evaluation.Weights `yaml:"weights"`
	} `yaml:"scoring"`

	Recommend struct {
		FeedSize           int     `yaml:"feedSize"`
		ColdStartThreshold int     `yaml:"coldStartThreshold"`
		DiversityRatio     float64 `yaml:"diversityRatio"`
	} `yaml:"recommend"`

	Auth struct {
		// APIKeys maps tenant -> key
		APIKeys map[string]string `yaml:"apiKeys"`
	} `yaml:"auth"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.OpenAI.TimeoutSeconds == 0 {
		c.OpenAI.TimeoutSeconds = 30
	}
	if c.OpenAI.RatePerSecond == 0 {
		c.OpenAI.RatePerSecond = 2
	}
	if c.OpenAI.Burst == 0 {
		c.OpenAI.Burst = 4
	}
	if c.Scoring.TaxonomyPath == "" {
		c.Scoring.TaxonomyPath = "taxonomy.yaml"
	}
	if c.Scoring.Workers == 0 {
		c.Scoring.Workers = 4
	}
	if c.Recommend.FeedSize == 0 {
		c.Recommend.FeedSize = 20
	}
	if c.Recommend.ColdStartThreshold == 0 {
		c.Recommend.ColdStartThreshold = 10
	}
	if c.Recommend.DiversityRatio == 0 {
		c.Recommend.DiversityRatio = 0.2
	}
	// weights default wholesale when the block is left unset
	if c.Scoring.Weights.RawMax == 0 {
		c.Scoring.Weights = evaluation.DefaultWeights()
	}
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	ssl := c.Database.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		ssl,
	)
}
