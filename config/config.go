package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"

	"github.com/unified-data-studio/uds-tools/logger"
	"github.com/unified-data-studio/uds-tools/version"
)

// Configuration is the structure of udsbuild.toml to be parsed
type Configuration struct {
	Project struct {
		Name        string `toml:"name"`
		Root        string `toml:"root"`
		VersionFile string `toml:"version-file"`
	} `toml:"project"`
	Header struct {
		Output      string `toml:"output"`
		Environment string `toml:"environment"`
	} `toml:"header"`
	Targets []Target `toml:"targets"`
	Log     struct {
		Enable     bool   `toml:"enable"`
		File       string `toml:"file"`
		MaxSize    int    `toml:"max-size"`
		MaxBackups int    `toml:"max-backups"`
		MaxAge     int    `toml:"max-age"`
		Compress   bool   `toml:"compress"`
		Level      string `toml:"level"`
	} `toml:"log"`
	Build struct {
		Checks []Step `toml:"checks"`
		Steps  []Step `toml:"steps"`
	} `toml:"build"`
	Notify struct {
		Enable       bool   `toml:"enable"`
		WebhookID    string `toml:"webhook-id"`
		WebhookToken string `toml:"webhook-token"`
	} `toml:"notify"`
}

// Target is one dependent file whose embedded version string mirrors the
// canonical version
type Target struct {
	Name    string `toml:"name"`
	File    string `toml:"file"`
	Pattern string `toml:"pattern"`
	Replace string `toml:"replace"`
}

// Step is one external tool invocation in the build pipeline
type Step struct {
	Name    string   `toml:"name"`
	Dir     string   `toml:"dir"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// Overrideable defines values of the config which can be overridden through
// the command line interface
type Overrideable struct {
	ProjectRoot string
	VersionFile string
}

// config stores the parsed configuration. Use Get() to retrieve it
var config Configuration

//go:embed config.toml
var defaultConfig string

// Init reads the named config file and unmarshals into config. If the file
// does not exist, a default config is written for the user to fill in.
func Init(configName string, overrides Overrideable) error {
	logger.Infof("Reading %s", configName)

	file, err := os.Open(configName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warnln("Config does not exist, creating one...")
			if err := os.WriteFile(configName, []byte(defaultConfig), 0666); err != nil {
				return fmt.Errorf("unable to create %s: %w", configName, err)
			}
			return fmt.Errorf(
				"default config created at %s, please configure with your project settings and rerun",
				configName,
			)
		}
		return fmt.Errorf("error opening %s: %w", configName, err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return fmt.Errorf("error decoding %s: %w", configName, err)
	}

	// apply overrides
	if overrides.ProjectRoot != "" {
		config.Project.Root = overrides.ProjectRoot
	}

	if overrides.VersionFile != "" {
		config.Project.VersionFile = overrides.VersionFile
	}

	// enforce configuration parameters
	logger.Infoln("Validating configuration")
	if err := checkParams(); err != nil {
		return err
	}
	logger.Infoln("Configuration validated")

	initLogger()

	return nil
}

func Get() Configuration {
	return config
}

// ManagerConfig assembles the version manager configuration from the loaded
// config
func ManagerConfig() version.Config {
	targets := make([]version.Target, len(config.Targets))
	for i, t := range config.Targets {
		targets[i] = version.Target{
			Name:    t.Name,
			File:    t.File,
			Pattern: t.Pattern,
			Replace: t.Replace,
		}
	}

	return version.Config{
		Root:        config.Project.Root,
		Name:        config.Project.Name,
		VersionFile: config.Project.VersionFile,
		HeaderFile:  config.Header.Output,
		Environment: config.Header.Environment,
		Targets:     targets,
	}
}

// initLogger reconfigures the logger once the log section has been validated
func initLogger() {
	level, _ := zapcore.ParseLevel(config.Log.Level)

	cfg := logger.Config{Level: level}
	if config.Log.Enable {
		cfg.File = config.Log.File
		cfg.MaxSize = config.Log.MaxSize
		cfg.MaxBackups = config.Log.MaxBackups
		cfg.MaxAge = config.Log.MaxAge
		cfg.Compress = config.Log.Compress
	}

	logger.Init(cfg)
}

// checkParams calls the config checking functions
func checkParams() error {
	if err := checkProject(); err != nil {
		return err
	}
	checkHeader()
	checkTargets()
	checkLog()
	checkBuild()
	checkNotify()

	return nil
}

// checkProject validates the project section of the config
func checkProject() error {
	if config.Project.Root == "" {
		config.Project.Root = "."
	}

	if config.Project.Name == "" {
		logger.Warnln("No project name configured, the version header will use a generic name")
		config.Project.Name = "Unified Data Studio"
	}

	if config.Project.VersionFile == "" {
		return errors.New("no version file configured, one must be supplied")
	}

	return nil
}

// checkHeader validates the header section of the config
func checkHeader() {
	if config.Header.Output == "" {
		logger.Warnln("No header output configured, defaulting to frontend/src/version.ts")
		config.Header.Output = "frontend/src/version.ts"
	}

	if config.Header.Environment == "" {
		config.Header.Environment = "development"
	}
}

// checkTargets drops malformed propagation targets so one bad entry cannot
// poison the batch
func checkTargets() {
	var kept []Target

	names := make(map[string]bool)
	for _, t := range config.Targets {
		if t.Name == "" || t.File == "" {
			logger.Warnf("Target %+v is missing a name or file; it will be ignored", t)
			continue
		}

		if names[t.Name] {
			logger.Warnf("Target name %s is duplicated; only the first entry will be used", t.Name)
			continue
		}

		if _, err := regexp.Compile(t.Pattern); err != nil {
			logger.Warnf("Target %s has an invalid pattern and will be ignored: %v", t.Name, err)
			continue
		}

		if !strings.Contains(t.Replace, "{version}") {
			logger.Warnf("Target %s replacement has no {version} placeholder; it will insert a fixed string", t.Name)
		}

		names[t.Name] = true
		kept = append(kept, t)
	}

	config.Targets = kept
}

// checkLog validates the log section of the config
func checkLog() {
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		logger.Warnf("Log level %s is not recognized; defaulting to info", config.Log.Level)
		config.Log.Level = "info"
	}

	if config.Log.Enable && config.Log.File == "" {
		logger.Warnln("Log file is enabled but no file is configured; file logging will be disabled")
		config.Log.Enable = false
	}
}

// checkBuild drops pipeline entries without a command
func checkBuild() {
	config.Build.Checks = keepRunnable(config.Build.Checks, "check")
	config.Build.Steps = keepRunnable(config.Build.Steps, "step")
}

func keepRunnable(steps []Step, kind string) []Step {
	var kept []Step

	for i, s := range steps {
		if s.Command == "" {
			logger.Warnf("Build %s #%d has no command; it will be ignored", kind, i+1)
			continue
		}

		if s.Name == "" {
			s.Name = s.Command
		}

		kept = append(kept, s)
	}

	return kept
}

// checkNotify validates the notify section of the config
func checkNotify() {
	if config.Notify.Enable &&
		(config.Notify.WebhookID == "" || config.Notify.WebhookToken == "") {
		logger.Warnln("Notifications are enabled but the webhook is not configured; notifications will be disabled")
		config.Notify.Enable = false
	}
}
