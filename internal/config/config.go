package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Mongo struct {
		URI      string        `yaml:"uri" default:"mongodb://localhost:27017"`
		Database string        `yaml:"database" default:"hiring"`
		Timeout  time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"mongo"`

	Scraper struct {
		BaseURL        string        `yaml:"base_url" default:"https://api.apify.com/v2"`
		Token          string        `yaml:"token"`
		ActorID        string        `yaml:"actor_id" default:"curious_coder~linkedin-profile-scraper"`
		WebhookBaseURL string        `yaml:"webhook_base_url"`
		Timeout        time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"scraper"`

	Screening struct {
		APIKey         string        `yaml:"api_key"`
		Model          string        `yaml:"model" default:"claude-sonnet-4-20250514"`
		MaxTokens      int           `yaml:"max_tokens" default:"2000"`
		Temperature    float32       `yaml:"temperature" default:"0.1"`
		ScoreThreshold int           `yaml:"score_threshold" default:"10"`
		Timeout        time.Duration `yaml:"timeout" default:"120s"`
	} `yaml:"screening"`

	Email struct {
		APIKey      string        `yaml:"api_key"`
		FromAddress string        `yaml:"from_address" default:"hiring@voidr.co"`
		Timeout     time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"email"`

	Chat struct {
		BaseURL   string        `yaml:"base_url" default:"https://api.roam.ai/v1"`
		APIKey    string        `yaml:"api_key"`
		ChannelID string        `yaml:"channel_id"`
		Timeout   time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"chat"`

	BackgroundTasks struct {
		MaxWorkers  int           `yaml:"max_workers" default:"10"`
		QueueSize   int           `yaml:"queue_size" default:"100"`
		TaskTimeout time.Duration `yaml:"task_timeout" default:"300s"`
		MaxTaskAge  time.Duration `yaml:"max_task_age" default:"24h"`
	} `yaml:"background_tasks"`

	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute" default:"10"`
		Burst             int `yaml:"burst" default:"10"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Mongo.URI = "mongodb://localhost:27017"
	config.Mongo.Database = "hiring"
	config.Mongo.Timeout = 10 * time.Second

	config.Scraper.BaseURL = "https://api.apify.com/v2"
	config.Scraper.ActorID = "curious_coder~linkedin-profile-scraper"
	config.Scraper.Timeout = 30 * time.Second

	config.Screening.Model = "claude-sonnet-4-20250514"
	config.Screening.MaxTokens = 2000
	config.Screening.Temperature = 0.1
	config.Screening.ScoreThreshold = 10
	config.Screening.Timeout = 120 * time.Second

	config.Email.FromAddress = "hiring@voidr.co"
	config.Email.Timeout = 30 * time.Second

	config.Chat.BaseURL = "https://api.roam.ai/v1"
	config.Chat.Timeout = 30 * time.Second

	config.BackgroundTasks.MaxWorkers = 10
	config.BackgroundTasks.QueueSize = 100
	config.BackgroundTasks.TaskTimeout = 300 * time.Second
	config.BackgroundTasks.MaxTaskAge = 24 * time.Hour

	config.RateLimit.RequestsPerMinute = 10
	config.RateLimit.Burst = 10

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, config.validate()
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		c.Mongo.URI = uri
	}

	if db := os.Getenv("MONGODB_DATABASE"); db != "" {
		c.Mongo.Database = db
	}

	if token := os.Getenv("APIFY_TOKEN"); token != "" {
		c.Scraper.Token = token
	}

	if actorID := os.Getenv("APIFY_ACTOR_ID"); actorID != "" {
		c.Scraper.ActorID = actorID
	}

	if baseURL := os.Getenv("WEBHOOK_BASE_URL"); baseURL != "" {
		c.Scraper.WebhookBaseURL = baseURL
	}

	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		c.Screening.APIKey = apiKey
	}

	if model := os.Getenv("SCREENING_MODEL"); model != "" {
		c.Screening.Model = model
	}

	if threshold := os.Getenv("SCORE_THRESHOLD"); threshold != "" {
		if t, err := strconv.Atoi(threshold); err == nil {
			c.Screening.ScoreThreshold = t
		}
	}

	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		c.Email.APIKey = apiKey
	}

	if from := os.Getenv("RESEND_FROM_EMAIL"); from != "" {
		c.Email.FromAddress = from
	}

	if apiKey := os.Getenv("ROAM_API_KEY"); apiKey != "" {
		c.Chat.APIKey = apiKey
	}

	if channelID := os.Getenv("ROAM_CHANNEL_ID"); channelID != "" {
		c.Chat.ChannelID = channelID
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if rpm := os.Getenv("RATE_LIMIT_RPM"); rpm != "" {
		if v, err := strconv.Atoi(rpm); err == nil {
			c.RateLimit.RequestsPerMinute = v
		}
	}
}

// validate checks invariants that would otherwise surface as confusing
// runtime failures
func (c *Config) validate() error {
	if c.Scraper.WebhookBaseURL == "" {
		return fmt.Errorf("scraper webhook base URL is required (set WEBHOOK_BASE_URL)")
	}
	if c.Screening.ScoreThreshold < 0 {
		return fmt.Errorf("score threshold must not be negative")
	}
	return nil
}
