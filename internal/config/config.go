// Package config provides layered configuration for emojilog using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.emojilog/config.yml, or .emojilog/config.json) > user config
// (~/.config/emojilog/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/emojilog/internal/preset"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "EMOJILOG_"

// ConfigSource names a configuration layer in error messages.
type ConfigSource string

const (
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the emojilog tool configuration
type Configuration struct {
	// TemplatesDir overrides the embedded templates with the four template
	// files found in this directory. Empty uses the embedded set.
	TemplatesDir string `koanf:"templates_dir"`

	// Remote names the git remote links are derived from.
	Remote string `koanf:"remote" validate:"required"`
	// TagPrefix is stripped from release tags before semver parsing.
	TagPrefix string `koanf:"tag_prefix"`
	// Outfile is where generate writes. Empty or "-" means stdout.
	Outfile string `koanf:"outfile"`

	GroupBy          string   `koanf:"group_by" validate:"omitempty,commitfield"`
	CommitGroupsSort string   `koanf:"commit_groups_sort" validate:"omitempty,oneof=title"`
	CommitsSort      []string `koanf:"commits_sort" validate:"dive,commitfield"`
	NoteGroupsSort   string   `koanf:"note_groups_sort" validate:"omitempty,oneof=title"`

	// LinkReferences toggles hash, issue and compare links in the output.
	LinkReferences bool `koanf:"link_references"`

	// Host, Owner and Repository override what is read from the remote.
	Host       string `koanf:"host" validate:"omitempty,linkhost"`
	Owner      string `koanf:"owner"`
	Repository string `koanf:"repository"`
	// RepoURL is used as the link base when no repository is known.
	RepoURL string `koanf:"repo_url" validate:"omitempty,linkbase"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .emojilog/config.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file.
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/emojilog/config.yml when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, string(SourceUser)); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. An explicit path is loaded by
// extension; otherwise YAML is preferred over JSON.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path = ProjectConfigPath()
		if !fileExists(path) && fileExists(ProjectJSONConfigPath()) {
			path = ProjectJSONConfigPath()
		}
	} else if !fileExists(path) {
		return fmt.Errorf("config file %s does not exist", path)
	}

	if !fileExists(path) {
		return nil
	}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = loadJSONConfig(k, path, string(SourceProject))
	} else {
		err = loadYAMLConfig(k, path, string(SourceProject))
	}
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateFile(path); err != nil {
		return fmt.Errorf("validating %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateFile(path); err != nil {
		return fmt.Errorf("validating %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load %s config: %w", SourceEnv, err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.TemplatesDir = expandHomePath(cfg.TemplatesDir)
	cfg.Host = strings.TrimSuffix(cfg.Host, "/")
	cfg.RepoURL = strings.TrimSuffix(cfg.RepoURL, "/")

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variables to config keys and values.
// Example: EMOJILOG_COMMITS_SORT=scope,subject -> commits_sort: [scope subject]
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "commits_sort" {
		var fields []string
		for _, f := range strings.Split(value, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		return key, fields
	}
	return key, value
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// Apply copies the writer settings onto opts.
func (c *Configuration) Apply(opts *preset.WriterOptions) {
	opts.GroupBy = c.GroupBy
	opts.CommitGroupsSort = c.CommitGroupsSort
	opts.CommitsSort = append([]string(nil), c.CommitsSort...)
	opts.NoteGroupsSort = c.NoteGroupsSort
}

// ApplyContext copies the link settings onto ctx. Explicit host, owner and
// repository values win over what was read from the remote.
func (c *Configuration) ApplyContext(ctx *preset.Context) {
	ctx.LinkReferences = c.LinkReferences
	if c.Host != "" {
		ctx.Host = c.Host
	}
	if c.Owner != "" {
		ctx.Owner = c.Owner
	}
	if c.Repository != "" {
		ctx.Repository = c.Repository
	}
	if c.RepoURL != "" {
		ctx.RepoURL = c.RepoURL
	}
}
