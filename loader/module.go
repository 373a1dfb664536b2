// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"fmt"

	"github.com/linuxdeepin/go-lib/log"
)

type Module interface {
	Name() string
	IsEnable() bool
	Enable(bool) error
	GetDependencies() []string
	SetLogLevel(log.Priority)
	LogLevel() log.Priority
	ModuleImpl
}

type ModuleImpl interface {
	Start() error // keep Start sync; error logging is done by the loader
	Stop() error
}

type ModuleBase struct {
	impl    ModuleImpl
	enabled bool
	name    string
	log     *log.Logger
}

func NewModuleBase(name string, impl ModuleImpl, logger *log.Logger) *ModuleBase {
	return &ModuleBase{
		name: name,
		impl: impl,
		log:  logger,
	}
}

func (m *ModuleBase) Enable(enable bool) error {
	if m.enabled == enable {
		return fmt.Errorf("module %s is already in the requested state", m.name)
	}
	fn := m.impl.Stop
	if enable {
		fn = m.impl.Start
	}
	if err := fn(); err != nil {
		return err
	}
	m.enabled = enable
	return nil
}

func (m *ModuleBase) IsEnable() bool {
	return m.enabled
}

func (m *ModuleBase) Name() string {
	return m.name
}

func (m *ModuleBase) SetLogLevel(pri log.Priority) {
	m.log.SetLogLevel(pri)
}

func (m *ModuleBase) LogLevel() log.Priority {
	return m.log.GetLogLevel()
}
