// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"testing"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testModule struct {
	*ModuleBase
	dependencies []string
	started      *[]string
}

func newTestModule(name string, dependencies []string, started *[]string) *testModule {
	m := &testModule{
		dependencies: dependencies,
		started:      started,
	}
	m.ModuleBase = NewModuleBase(name, m, log.NewLogger("test/"+name))
	return m
}

func (m *testModule) GetDependencies() []string {
	return m.dependencies
}

func (m *testModule) Start() error {
	*m.started = append(*m.started, m.Name())
	return nil
}

func (m *testModule) Stop() error {
	return nil
}

func newTestLoader() *Loader {
	return &Loader{
		modules: make(map[string]Module),
		log:     log.NewLogger("test/loader"),
	}
}

func TestEnableModulesOrder(t *testing.T) {
	var started []string
	l := newTestLoader()
	l.AddModule(newTestModule("overlay", []string{"monitor"}, &started))
	l.AddModule(newTestModule("monitor", nil, &started))

	err := l.EnableModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"monitor", "overlay"}, started)

	for _, m := range l.List() {
		assert.True(t, m.IsEnable())
	}
}

func TestEnableModulesMissingDependency(t *testing.T) {
	var started []string
	l := newTestLoader()
	l.AddModule(newTestModule("overlay", []string{"monitor"}, &started))

	err := l.EnableModules()
	assert.ErrorContains(t, err, "missing")
}

func TestEnableModulesCycle(t *testing.T) {
	var started []string
	l := newTestLoader()
	l.AddModule(newTestModule("a", []string{"b"}, &started))
	l.AddModule(newTestModule("b", []string{"a"}, &started))

	err := l.EnableModules()
	assert.ErrorContains(t, err, "cycle")
}

func TestAddModuleTwice(t *testing.T) {
	var started []string
	l := newTestLoader()
	m := newTestModule("overlay", nil, &started)
	l.AddModule(m)
	l.AddModule(newTestModule("overlay", nil, &started))

	modules := l.List()
	require.Len(t, modules, 1)
	assert.Same(t, Module(m), modules[0])
}
