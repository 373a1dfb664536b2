// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cursoroverlay implements the contextual cursor engine: it decides
// which cursor image is shown and where the overlay window goes, and leaves
// drawing to the compositor-side renderer listening on DBus.
package cursoroverlay

import (
	"errors"

	"github.com/fsnotify/fsnotify"
	"github.com/linuxdeepin/dde-cursor-overlay/loader"
	"github.com/linuxdeepin/dde-cursor-overlay/pointermonitor"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	dbusServiceName = "org.deepin.dde.CursorOverlay1"
	dbusPath        = "/org/deepin/dde/CursorOverlay1"
	dbusInterface   = dbusServiceName
	moduleName      = "cursor-overlay"
)

var (
	logger = log.NewLogger("daemon/" + moduleName)

	globalManager *Manager
	globalWatcher *fsnotify.Watcher
)

func init() {
	loader.Register(NewDaemon(logger))
}

type Daemon struct {
	*loader.ModuleBase
}

func NewDaemon(logger *log.Logger) *Daemon {
	daemon := new(Daemon)
	daemon.ModuleBase = loader.NewModuleBase(moduleName, daemon, logger)
	return daemon
}

func (d *Daemon) GetDependencies() []string {
	return []string{"pointer-monitor"}
}

// GetManager returns the running manager, nil before the module started.
func GetManager() *Manager {
	return globalManager
}

func (d *Daemon) Start() error {
	if globalManager != nil {
		return nil
	}
	service := loader.GetService()

	cfg, err := loadConfig(configFile)
	if err != nil {
		logger.Warning(err)
	}
	if cfg.LogLevel != "" {
		logger.SetLogLevel(cfg.logPriority())
	}

	// both images are required; a decode failure aborts startup
	catalog, err := NewCatalog(cfg.DefaultCursorFile, cfg.TextCursorFile)
	if err != nil {
		return err
	}

	monitor := pointermonitor.GetManager()
	if monitor == nil {
		return errors.New("pointer-monitor module is not running")
	}

	classifier := NewRoleClassifier(
		newDBusRoleQuerier(service.Conn(), monitor.ScreenHeight()),
		cfg.TextEntryRoles)

	m := newManager(service, catalog, classifier, nil, monitor, monitor,
		monitor, monitor.ScreenHeight())

	err = service.Export(dbusPath, m)
	if err != nil {
		return err
	}
	err = service.RequestName(dbusServiceName)
	if err != nil {
		return err
	}

	m.setRenderer(newSignalRenderer(service, m))
	m.publishState()
	go m.run()

	monitor.SetMotionHandler(m.HandlePointerMoved)
	monitor.SetFeedStateHandler(func(state pointermonitor.FeedState) {
		switch state {
		case pointermonitor.FeedDegraded:
			m.HandleFeedTimeout()
		case pointermonitor.FeedDenied:
			m.HandleFeedDenied()
		case pointermonitor.FeedResumed:
			logger.Debug("pointer feed resumed")
		}
	})

	watcher, err := watchConfig(classifier)
	if err != nil {
		logger.Warning("failed to watch config:", err)
	} else {
		globalWatcher = watcher
	}

	globalManager = m
	return nil
}

func (d *Daemon) Stop() error {
	if globalManager == nil {
		return nil
	}
	service := loader.GetService()
	err := service.ReleaseName(dbusServiceName)
	if err != nil {
		logger.Warning(err)
	}
	if globalWatcher != nil {
		_ = globalWatcher.Close()
		globalWatcher = nil
	}
	globalManager.stop()
	globalManager = nil
	return nil
}
