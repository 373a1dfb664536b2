// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pointermonitor

import (
	"github.com/linuxdeepin/dde-cursor-overlay/loader"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	dbusServiceName = "org.deepin.dde.PointerMonitor1"
	dbusPath        = "/org/deepin/dde/PointerMonitor1"
	dbusInterface   = dbusServiceName
	moduleName      = "pointer-monitor"
)

var (
	logger = log.NewLogger("daemon/" + moduleName)

	globalManager *Manager
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
	return []string{}
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

	m, err := newManager(service)
	if err != nil {
		return err
	}
	m.initXExtensions()

	err = service.Export(dbusPath, m)
	if err != nil {
		return err
	}
	err = service.RequestName(dbusServiceName)
	if err != nil {
		return err
	}

	if err := m.selectMotionEvents(); err != nil {
		// the X server refused the raw event subscription; the daemon keeps
		// running but no pointer positions will arrive
		logger.Warning("failed to subscribe raw motion events:", err)
		m.markDenied()
	}
	go m.listenXEvents()

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
	globalManager.destroy()
	globalManager = nil
	return nil
}
