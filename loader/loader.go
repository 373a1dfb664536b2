// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package loader keeps the registry of daemon modules and enables them in
// dependency order.
package loader

import (
	"fmt"
	"sort"
	"sync"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

type Loader struct {
	modules map[string]Module
	log     *log.Logger
	lock    sync.Mutex
	service *dbusutil.Service
}

func (l *Loader) SetLogLevel(pri log.Priority) {
	l.log.SetLogLevel(pri)

	l.lock.Lock()
	defer l.lock.Unlock()

	for _, module := range l.modules {
		module.SetLogLevel(pri)
	}
}

func (l *Loader) AddModule(m Module) {
	l.lock.Lock()
	defer l.lock.Unlock()

	name := m.Name()
	if _, exist := l.modules[name]; exist {
		l.log.Debug("module", name, "is already registered")
		return
	}
	l.log.Debug("register module:", name)
	l.modules[name] = m
}

func (l *Loader) List() []Module {
	l.lock.Lock()
	defer l.lock.Unlock()

	modules := make([]Module, 0, len(l.modules))
	for _, name := range l.sortedNames() {
		modules = append(modules, l.modules[name])
	}
	return modules
}

func (l *Loader) GetModule(name string) Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.modules[name]
}

// EnableModules starts every registered module, each one after all of its
// dependencies. A dependency cycle or a missing dependency is an error.
func (l *Loader) EnableModules() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	enabling := make(map[string]bool)
	done := make(map[string]bool)

	var enable func(name string) error
	enable = func(name string) error {
		if done[name] {
			return nil
		}
		if enabling[name] {
			return fmt.Errorf("dependency cycle through module %s", name)
		}
		module, ok := l.modules[name]
		if !ok {
			return fmt.Errorf("module %s is missing", name)
		}

		enabling[name] = true
		for _, dependency := range module.GetDependencies() {
			if err := enable(dependency); err != nil {
				return err
			}
		}
		enabling[name] = false

		l.log.Info("enable module", name)
		if err := module.Enable(true); err != nil {
			return fmt.Errorf("enable module %s failed: %w", name, err)
		}
		done[name] = true
		return nil
	}

	for _, name := range l.sortedNames() {
		if err := enable(name); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) DisableModules() {
	l.lock.Lock()
	defer l.lock.Unlock()

	for _, name := range l.sortedNames() {
		module := l.modules[name]
		if !module.IsEnable() {
			continue
		}
		if err := module.Enable(false); err != nil {
			l.log.Warning("disable module failed:", err)
		}
	}
}

// sortedNames must be called with the lock held.
func (l *Loader) sortedNames() []string {
	names := make([]string, 0, len(l.modules))
	for name := range l.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
