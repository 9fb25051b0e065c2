// Package config handles configuration loading and parsing for chaperone.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/chaperonehq/chaperone/internal/constants"
	"github.com/chaperonehq/chaperone/internal/logger"
	"github.com/chaperonehq/chaperone/internal/scan"
)

//go:embed config.toml
var defaultConfig []byte

// Config holds the compiled rule sets and section settings.
type Config struct {
	// FileExtensions is the set of extensions scanned by the file validator.
	FileExtensions map[string]bool
	// FileRules are applied per line to modified file content.
	FileRules []scan.Rule
	// ResultRules are the universal rules applied to every agent result.
	ResultRules []scan.Rule
	// Gates holds per-agent quality criteria, keyed by subagent type.
	Gates map[string]scan.Gate

	Context    ContextConfig
	Statusline StatuslineConfig
}

// ContextConfig controls the context snapshot builder.
type ContextConfig struct {
	DocsDir      string
	TreeDepth    int
	SectionLimit int
	ExcerptFiles []string
	ExcerptLimit int
	SkipDirs     []string
	Tip          string
	Focus        map[string]string
}

// StatuslineConfig controls the status line formatter.
type StatuslineConfig struct {
	Separator string
}

// GateFor returns the quality gate for a subagent type, if one is defined.
func (c *Config) GateFor(agent string) (scan.Gate, bool) {
	g, ok := c.Gates[agent]
	return g, ok
}

// FocusFor returns the focus description for a subagent type, falling back
// to a generic description for unknown agents.
func (c *Config) FocusFor(agent string) string {
	if f, ok := c.Context.Focus[agent]; ok {
		return f
	}
	return "general development"
}

// raw TOML shapes, decoded before pattern compilation.

type rawRule struct {
	Label   string `toml:"label"`
	Pattern string `toml:"pattern"`
}

type rawGate struct {
	Agent     string    `toml:"agent"`
	Required  []string  `toml:"required"`
	Forbidden []rawRule `toml:"forbidden"`
	MinLines  int       `toml:"min_lines"`
}

type rawConfig struct {
	File struct {
		Extensions []string  `toml:"extensions"`
		Rules      []rawRule `toml:"rules"`
	} `toml:"file"`
	Result struct {
		Rules []rawRule `toml:"rules"`
	} `toml:"result"`
	Gates   []rawGate `toml:"gates"`
	Context struct {
		DocsDir      string            `toml:"docs_dir"`
		TreeDepth    int               `toml:"tree_depth"`
		SectionLimit int               `toml:"section_limit"`
		ExcerptFiles []string          `toml:"excerpt_files"`
		ExcerptLimit int               `toml:"excerpt_limit"`
		SkipDirs     []string          `toml:"skip_dirs"`
		Tip          string            `toml:"tip"`
		Focus        map[string]string `toml:"focus"`
	} `toml:"context"`
	Statusline struct {
		Separator string `toml:"separator"`
	} `toml:"statusline"`
}

var (
	globalConfig      *Config
	configInitialized bool
	configPath        string
	initError         error
)

// GetConfigDir returns the config directory path.
// Uses CHAPERONE_CONFIG env var if set, otherwise ~/.config/chaperone
func GetConfigDir() (string, error) {
	if dir := os.Getenv(constants.EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, constants.XDGConfigSubdir, constants.AppName), nil
}

// EnsureConfigFiles creates the config directory and writes the default
// config file if it doesn't exist.
func EnsureConfigFiles(configDir string) error {
	if err := os.MkdirAll(configDir, constants.DirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, constants.ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, defaultConfig, constants.FileMode); err != nil {
			return fmt.Errorf("failed to write %s: %w", constants.ConfigFileName, err)
		}
	}
	return nil
}

// compileRules compiles a list of raw rules, rejecting invalid patterns.
func compileRules(raws []rawRule, section string) ([]scan.Rule, error) {
	rules := make([]scan.Rule, 0, len(raws))
	for _, rr := range raws {
		if rr.Pattern == "" {
			continue
		}
		rule, err := scan.CompileRule(rr.Pattern, rr.Label)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", section, rr.Pattern, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// LoadConfig parses TOML data and compiles it into a Config.
func LoadConfig(data []byte) (*Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg := &Config{}

	cfg.FileExtensions = scan.DefaultExtensions()
	if len(raw.File.Extensions) > 0 {
		cfg.FileExtensions = make(map[string]bool, len(raw.File.Extensions))
		for _, ext := range raw.File.Extensions {
			cfg.FileExtensions[ext] = true
		}
	}

	var err error
	if cfg.FileRules, err = compileRules(raw.File.Rules, "file"); err != nil {
		return nil, err
	}
	if cfg.ResultRules, err = compileRules(raw.Result.Rules, "result"); err != nil {
		return nil, err
	}

	cfg.Gates = make(map[string]scan.Gate, len(raw.Gates))
	for _, rg := range raw.Gates {
		if rg.Agent == "" {
			continue
		}
		gate := scan.Gate{Agent: rg.Agent, MinLines: rg.MinLines}
		for _, pattern := range rg.Required {
			rule, err := scan.CompileRule(pattern, pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid required pattern %q for agent %q: %w", pattern, rg.Agent, err)
			}
			gate.Required = append(gate.Required, rule)
		}
		if gate.Forbidden, err = compileRules(rg.Forbidden, "gate "+rg.Agent); err != nil {
			return nil, err
		}
		cfg.Gates[rg.Agent] = gate
	}

	cfg.Context = ContextConfig{
		DocsDir:      raw.Context.DocsDir,
		TreeDepth:    raw.Context.TreeDepth,
		SectionLimit: raw.Context.SectionLimit,
		ExcerptFiles: raw.Context.ExcerptFiles,
		ExcerptLimit: raw.Context.ExcerptLimit,
		SkipDirs:     raw.Context.SkipDirs,
		Tip:          raw.Context.Tip,
		Focus:        raw.Context.Focus,
	}
	if cfg.Context.DocsDir == "" {
		cfg.Context.DocsDir = "ai-docs"
	}
	if cfg.Context.TreeDepth <= 0 {
		cfg.Context.TreeDepth = 2
	}
	if cfg.Context.SectionLimit <= 0 {
		cfg.Context.SectionLimit = 4000
	}
	if cfg.Context.ExcerptLimit <= 0 {
		cfg.Context.ExcerptLimit = 1200
	}

	cfg.Statusline = StatuslineConfig{Separator: raw.Statusline.Separator}
	if cfg.Statusline.Separator == "" {
		cfg.Statusline.Separator = " | "
	}

	return cfg, nil
}

// loadEmbeddedDefaults loads the embedded default config. The embedded file
// is covered by tests, so a parse failure here is a build defect.
func loadEmbeddedDefaults() *Config {
	cfg, err := LoadConfig(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("embedded config is invalid: %v", err))
	}
	return cfg
}

// Init loads configuration from files, creating defaults if necessary.
// If loading fails, it falls back to embedded defaults.
func Init() error {
	if configInitialized {
		return initError
	}

	finish := func(cfg *Config, err error) error {
		if cfg == nil {
			cfg = loadEmbeddedDefaults()
		}
		globalConfig = cfg
		initError = err
		configInitialized = true
		return err
	}

	configDir, err := GetConfigDir()
	if err != nil {
		logger.Debug("failed to get config dir, using embedded defaults", "error", err)
		return finish(nil, err)
	}

	if err := EnsureConfigFiles(configDir); err != nil {
		logger.Debug("failed to ensure config files, using embedded defaults", "error", err)
		return finish(nil, err)
	}

	configPath = filepath.Join(configDir, constants.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Debug("failed to read config file, using embedded defaults", "path", configPath, "error", err)
		return finish(nil, fmt.Errorf("failed to read %s: %w", constants.ConfigFileName, err))
	}

	cfg, err := LoadConfig(data)
	if err != nil {
		logger.Debug("failed to parse config, using embedded defaults", "error", err)
		return finish(nil, fmt.Errorf("failed to load config: %w", err))
	}

	logger.Debug("config loaded",
		"path", configPath,
		"file_rules", len(cfg.FileRules),
		"result_rules", len(cfg.ResultRules),
		"gates", len(cfg.Gates))
	return finish(cfg, nil)
}

// Get returns the current configuration.
// If Init has not been called, it initializes with defaults.
func Get() *Config {
	if !configInitialized {
		Init()
	}
	return globalConfig
}

// GetConfigPath returns the path of the loaded config file, if any.
func GetConfigPath() string {
	return configPath
}

// InitError returns the error, if any, from config initialization.
func InitError() error {
	return initError
}

// Reset resets the configuration state. Used for testing.
func Reset() {
	configInitialized = false
	globalConfig = nil
	configPath = ""
	initError = nil
}

// GetDefaultConfig returns the embedded default configuration.
func GetDefaultConfig() []byte {
	return defaultConfig
}
