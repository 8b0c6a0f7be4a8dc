package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // computed after load, not read from file
	} `yaml:"server"`
	Gemini struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"gemini"`
	Scraper struct {
		URLs       []string `yaml:"urls"`
		TimeoutSec int      `yaml:"timeout_sec"`
		UserAgent  string   `yaml:"user_agent"`
	} `yaml:"scraper"`
	Storage struct {
		CatalogFile    string `yaml:"catalog_file"`
		FinancialsFile string `yaml:"financials_file"`
		QuizFile       string `yaml:"quiz_file"`
	} `yaml:"storage"`
	Formatter struct {
		MaxChars int `yaml:"max_chars"`
	} `yaml:"formatter"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
	Scheduler struct {
		ScrapeHour       int  `yaml:"scrape_hour"`
		ScrapeMin        int  `yaml:"scrape_min"`
		CheckIntervalSec int  `yaml:"check_interval_sec"`
		DebugEnabled     bool `yaml:"debug_enabled"`
		DebugIntervalSec int  `yaml:"debug_interval_sec"`
	} `yaml:"scheduler"`
}

// DefaultScrapeURLs is the fixed list of Toyota model pages the scraper
// walks when config.yaml does not supply its own list.
var DefaultScrapeURLs = []string{
	"https://www.toyota.com/corollacross/",
	"https://www.toyota.com/rav4/",
	"https://www.toyota.com/rav4pluginhybrid/",
	"https://www.toyota.com/bz/",
	"https://www.toyota.com/highlander/",
	"https://www.toyota.com/grandhighlander/",
	"https://www.toyota.com/4runner/",
	"https://www.toyota.com/crownsignia/",
	"https://www.toyota.com/landcruiser/",
	"https://www.toyota.com/sequoia/",
	"https://www.toyota.com/corolla/",
	"https://www.toyota.com/corollahatchback/",
	"https://www.toyota.com/prius/",
	"https://www.toyota.com/priuspluginhybrid/",
	"https://www.toyota.com/camry/",
	"https://www.toyota.com/gr86/",
	"https://www.toyota.com/grcorolla/",
	"https://www.toyota.com/grsupra/",
	"https://www.toyota.com/sienna/",
	"https://www.toyota.com/crown/",
	"https://www.toyota.com/mirai/",
	"https://www.toyota.com/tacoma/",
	"https://www.toyota.com/tundra/",
}

func Load() *Config {
	// Load .env first; a missing .env just falls through to the
	// process environment.
	_ = godotenv.Load()

	var cfg Config

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")
		applyDefaults(&cfg)
		applyEnvOverrides(&cfg)
		cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)
		return &cfg
	}

	return loadFromEnv()
}

func loadFromEnv() *Config {
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	log.Println("configuration loaded from environment, some settings may be missing")
	return &cfg
}

// applyEnvOverrides pulls secrets from the environment so the API key never
// has to live in config.yaml. There is no baked-in default key: without
// GEMINI_API_KEY the recommendation endpoints fail with a clear error while
// intake and scraping keep working.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if cfg.Gemini.APIKey == "" {
		if key := os.Getenv("GOOGLE_GENAI_API_KEY"); key != "" {
			cfg.Gemini.APIKey = key
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if len(cfg.Scraper.URLs) == 0 {
		cfg.Scraper.URLs = DefaultScrapeURLs
	}
	if cfg.Scraper.TimeoutSec <= 0 {
		cfg.Scraper.TimeoutSec = 30
	}
	if cfg.Scraper.UserAgent == "" {
		cfg.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}
	if cfg.Storage.CatalogFile == "" {
		cfg.Storage.CatalogFile = "data/toyota_modal_data.csv"
	}
	if cfg.Storage.FinancialsFile == "" {
		cfg.Storage.FinancialsFile = "data/latest_financials.json"
	}
	if cfg.Storage.QuizFile == "" {
		cfg.Storage.QuizFile = "data/latest_quiz.json"
	}
	if cfg.Formatter.MaxChars <= 0 {
		cfg.Formatter.MaxChars = 50000
	}
	if cfg.Scheduler.CheckIntervalSec <= 0 {
		cfg.Scheduler.CheckIntervalSec = 60
	}
	if cfg.Scheduler.DebugIntervalSec <= 0 {
		cfg.Scheduler.DebugIntervalSec = 3600
	}
}
