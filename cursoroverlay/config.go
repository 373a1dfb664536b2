// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/linuxdeepin/go-lib/log"
	dutils "github.com/linuxdeepin/go-lib/utils"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const defaultResourceDir = "/usr/share/dde-cursor-overlay"

var configFile = "/etc/dde-cursor-overlay/config.yaml"

// SetConfigFile overrides the config location; must be called before the
// module starts.
func SetConfigFile(filename string) {
	if filename != "" {
		configFile = filename
	}
}

type Config struct {
	DefaultCursorFile string   `yaml:"defaultCursorFile"`
	TextCursorFile    string   `yaml:"textCursorFile"`
	TextEntryRoles    []string `yaml:"textEntryRoles"`
	LogLevel          string   `yaml:"logLevel"`
}

func defaultConfig() *Config {
	return &Config{
		DefaultCursorFile: filepath.Join(defaultResourceDir, "default.cur"),
		TextCursorFile:    filepath.Join(defaultResourceDir, "text.cur"),
	}
}

// loadConfig always returns a usable config; on any failure the defaults
// are returned together with the error.
func loadConfig(filename string) (*Config, error) {
	cfg := defaultConfig()
	if !dutils.IsFileExist(filename) {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return defaultConfig(), xerrors.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return defaultConfig(), xerrors.Errorf("failed to parse config: %w", err)
	}
	if cfg.DefaultCursorFile == "" {
		cfg.DefaultCursorFile = filepath.Join(defaultResourceDir, "default.cur")
	}
	if cfg.TextCursorFile == "" {
		cfg.TextCursorFile = filepath.Join(defaultResourceDir, "text.cur")
	}
	return cfg, nil
}

func (c *Config) logPriority() log.Priority {
	switch c.LogLevel {
	case "debug":
		return log.LevelDebug
	case "warning":
		return log.LevelWarning
	default:
		return log.LevelInfo
	}
}

// watchConfig re-applies the role set and log level when the config file
// changes. The cursor images stay as decoded at startup.
func watchConfig(classifier *RoleClassifier) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = watcher.Add(filepath.Dir(configFile))
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != configFile {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := loadConfig(configFile)
				if err != nil {
					logger.Warning(err)
					continue
				}
				classifier.SetTextEntryRoles(cfg.TextEntryRoles)
				if cfg.LogLevel != "" {
					logger.SetLogLevel(cfg.logPriority())
				}
				logger.Debug("config reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warning("config watcher error:", err)
			}
		}
	}()
	return watcher, nil
}
