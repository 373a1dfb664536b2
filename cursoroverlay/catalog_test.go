// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxdeepin/dde-cursor-overlay/cursorres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCursorFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, data, 0644))
	return filename
}

func TestNewCatalog(t *testing.T) {
	dir := t.TempDir()
	defaultFile := writeCursorFile(t, dir, "default.cur", buildCursorResource(24, 24, 4, 2))
	textFile := writeCursorFile(t, dir, "text.cur", buildCursorResource(12, 24, 6, 12))

	catalog, err := NewCatalog(defaultFile, textFile)
	require.NoError(t, err)

	img := catalog.Get(VariantDefault)
	assert.Equal(t, 24, img.Width)
	assert.Equal(t, 4, img.HotspotX)

	img = catalog.Get(VariantText)
	assert.Equal(t, 12, img.Width)
	assert.Equal(t, 12, img.HotspotY)
}

func TestNewCatalogDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	defaultFile := writeCursorFile(t, dir, "default.cur", buildCursorResource(24, 24, 4, 2))
	brokenFile := writeCursorFile(t, dir, "text.cur", []byte{1, 2, 3})

	_, err := NewCatalog(defaultFile, brokenFile)
	assert.ErrorIs(t, err, cursorres.ErrTooShort)

	_, err = NewCatalog(filepath.Join(dir, "missing.cur"), defaultFile)
	assert.Error(t, err)
}
