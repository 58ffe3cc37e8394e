// Package config loads postermaker settings from a TOML file and the
// environment. Environment variables win over the file so CI jobs can inject
// credentials without writing them to disk.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/logger"
	"github.com/wordsolverx/postermaker/internal/render"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "postermaker.toml"

// Environment overrides.
const (
	EnvAction             = "ACTION"
	EnvTopic              = "PUZZLE_TYPE"
	EnvPinterestToken     = "PINTEREST_ACCESS_TOKEN"
	EnvPinterestSandbox   = "PINTEREST_USE_SANDBOX"
	EnvFacebookToken      = "FACEBOOK_ACCESS_TOKEN"
	EnvFacebookPageID     = "FACEBOOK_PAGE_ID"
	EnvServiceAccountJSON = "GOOGLE_SERVICE_ACCOUNT_JSON"
	EnvListenAddr         = "POSTERMAKER_LISTEN"
	EnvDevMode            = "POSTERMAKER_DEV"
)

// Actions selectable with ACTION.
const (
	ActionIndexing = "indexing"
	ActionSocial   = "social"
	ActionRender   = "render"
)

type Config struct {
	Job       JobConfig              `toml:"job"`
	Site      SiteConfig             `toml:"site"`
	Render    RenderConfig           `toml:"render"`
	Pinterest PinterestConfig        `toml:"pinterest"`
	Facebook  FacebookConfig         `toml:"facebook"`
	Indexing  IndexingConfig         `toml:"indexing"`
	Topics    map[string]TopicConfig `toml:"topics"`
	Ledger    LedgerConfig           `toml:"ledger"`
	Log       LogConfig              `toml:"log"`
	Server    ServerConfig           `toml:"server"`
}

// JobConfig selects what a run of the CLI does.
type JobConfig struct {
	Action string `toml:"action"`
	// Topic is required by the social action.
	Topic string `toml:"topic"`
	// OutDir receives posters written by the render action.
	OutDir string `toml:"out_dir"`
}

type SiteConfig struct {
	BaseURL  string `toml:"base_url"`
	Timezone string `toml:"timezone"`
}

type RenderConfig struct {
	// Workers bounds pixel-fill goroutines per render; 0 uses GOMAXPROCS.
	Workers            int `toml:"workers"`
	FontTimeoutSeconds int `toml:"font_timeout_seconds"`
	// Fonts maps a family (bold, regular) to a source spec:
	// bundled:bold, file:/path/font.ttf or google:Inter:800.
	Fonts        map[string]string `toml:"fonts"`
	FontCacheDir string            `toml:"font_cache_dir"`
}

type PinterestConfig struct {
	AccessToken string `toml:"access_token"`
	Sandbox     bool   `toml:"sandbox"`
}

type FacebookConfig struct {
	AccessToken string `toml:"access_token"`
	PageID      string `toml:"page_id"`
}

type IndexingConfig struct {
	// ServiceAccountJSON is the base64-encoded service account key. It takes
	// precedence over ServiceAccountFile.
	ServiceAccountJSON string   `toml:"service_account_json"`
	ServiceAccountFile string   `toml:"service_account_file"`
	PagesFile          string   `toml:"pages_file"`
	Exclude            []string `toml:"exclude"`
}

type TopicConfig struct {
	BoardID string `toml:"board_id"`
	// Color, when set, replaces the theme gradient with a single-color one.
	Color string `toml:"color"`
}

type LedgerConfig struct {
	// Path of the sqlite database; empty disables the ledger.
	Path string `toml:"path"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
	Dev    bool   `toml:"dev"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Job:  JobConfig{Action: ActionIndexing, OutDir: "out"},
		Site: SiteConfig{BaseURL: "https://wordsolverx.com", Timezone: "Asia/Kolkata"},
		Render: RenderConfig{
			FontTimeoutSeconds: 10,
			Fonts: map[string]string{
				string(fonts.Bold):    "bundled:bold",
				string(fonts.Regular): "bundled:regular",
			},
			FontCacheDir: ".cache/fonts",
		},
		Pinterest: PinterestConfig{Sandbox: true},
		Facebook:  FacebookConfig{PageID: "964134700097059"},
		Indexing: IndexingConfig{
			ServiceAccountFile: "service_account.json",
			PagesFile:          "pages.txt",
		},
		Topics: map[string]TopicConfig{
			"wordle":   {BoardID: "924434329702687588"},
			"quordle":  {BoardID: "924434329702687592"},
			"colordle": {BoardID: "924434329702687590"},
			"semantle": {BoardID: "924434329702687594"},
			"phoodle":  {BoardID: "924434329702687593"},
		},
		Ledger: LedgerConfig{Path: "postermaker.db"},
		Log:    LogConfig{Level: "info", MaxSizeMB: 10},
		Server: ServerConfig{Listen: ":8080"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// A [topics.x] table replaces the whole entry; keep the default board.
	for key, def := range DefaultConfig().Topics {
		t := cfg.Topics[key]
		if t.BoardID == "" {
			t.BoardID = def.BoardID
			cfg.Topics[key] = t
		}
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setBool := func(dst *bool, key string) error {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q): %w", key, raw, err)
		}
		*dst = parsed
		return nil
	}

	setString(&c.Job.Action, EnvAction)
	if v := strings.TrimSpace(getenv(EnvTopic)); v != "" {
		c.Job.Topic = strings.ToLower(v)
	}
	setString(&c.Pinterest.AccessToken, EnvPinterestToken)
	setString(&c.Facebook.AccessToken, EnvFacebookToken)
	setString(&c.Facebook.PageID, EnvFacebookPageID)
	setString(&c.Indexing.ServiceAccountJSON, EnvServiceAccountJSON)
	setString(&c.Server.Listen, EnvListenAddr)
	if err := setBool(&c.Pinterest.Sandbox, EnvPinterestSandbox); err != nil {
		return err
	}
	return setBool(&c.Server.Dev, EnvDevMode)
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Job.Action {
	case ActionIndexing, ActionSocial, ActionRender:
	default:
		return fmt.Errorf("invalid job.action %q: must be indexing, social, or render", c.Job.Action)
	}

	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid site.base_url %q: must be an absolute http(s) URL", c.Site.BaseURL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Render.Workers < 0 {
		return fmt.Errorf("render.workers must be >= 0, got %d", c.Render.Workers)
	}
	if c.Render.FontTimeoutSeconds <= 0 {
		return fmt.Errorf("render.font_timeout_seconds must be > 0, got %d", c.Render.FontTimeoutSeconds)
	}
	if _, err := c.FontSources(nil); err != nil {
		return err
	}

	for _, pattern := range c.Indexing.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid indexing.exclude pattern %q", pattern)
		}
	}

	for key, topic := range c.Topics {
		if topic.Color == "" {
			continue
		}
		if _, err := render.ParseHex(topic.Color); err != nil {
			return fmt.Errorf("topics.%s.color: %w", key, err)
		}
	}

	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log.max_size_mb must be >= 0, got %d", c.Log.MaxSizeMB)
	}
	return nil
}

// Location returns the time zone dates are computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid site.timezone %q: %w", c.Site.Timezone, err)
	}
	return loc, nil
}

// FontTimeout is the per-render font resolution budget.
func (c *Config) FontTimeout() time.Duration {
	return time.Duration(c.Render.FontTimeoutSeconds) * time.Second
}

// FontSources builds the font library sources. Families missing from the
// config keep their bundled default.
func (c *Config) FontSources(client *retryablehttp.Client) (map[fonts.Family]fonts.Source, error) {
	sources := fonts.DefaultSources()
	for family, spec := range c.Render.Fonts {
		f := fonts.Family(strings.ToLower(family))
		if f != fonts.Bold && f != fonts.Regular {
			return nil, fmt.Errorf("invalid render.fonts key %q: must be bold or regular", family)
		}
		src, err := fonts.ParseSource(spec, c.Render.FontCacheDir, client)
		if err != nil {
			return nil, fmt.Errorf("render.fonts.%s: %w", family, err)
		}
		sources[f] = src
	}
	return sources, nil
}

// Topic returns the per-topic settings, or the zero value.
func (c *Config) Topic(key string) TopicConfig {
	return c.Topics[strings.ToLower(key)]
}
