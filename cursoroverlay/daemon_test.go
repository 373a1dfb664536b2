// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"testing"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/stretchr/testify/assert"
)

func Test_Daemon(t *testing.T) {
	d := NewDaemon(log.NewLogger(moduleName))

	assert.Equal(t, moduleName, d.Name())
	assert.Equal(t, []string{"pointer-monitor"}, d.GetDependencies())
	assert.NoError(t, d.Stop())
}
