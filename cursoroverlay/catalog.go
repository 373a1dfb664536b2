// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"golang.org/x/xerrors"

	"github.com/linuxdeepin/dde-cursor-overlay/cursorres"
)

// Catalog holds the decoded image for every variant. Images are decoded once
// at startup and never change afterwards.
type Catalog struct {
	images [2]*cursorres.Cursor
}

// NewCatalog decodes both required cursor resources. A failure on either
// file is fatal to startup and is propagated unchanged apart from context.
func NewCatalog(defaultFile, textFile string) (*Catalog, error) {
	defaultImg, err := cursorres.LoadFile(defaultFile)
	if err != nil {
		return nil, xerrors.Errorf("default cursor: %w", err)
	}
	textImg, err := cursorres.LoadFile(textFile)
	if err != nil {
		return nil, xerrors.Errorf("text cursor: %w", err)
	}
	return newCatalogFromImages(defaultImg, textImg), nil
}

func newCatalogFromImages(defaultImg, textImg *cursorres.Cursor) *Catalog {
	c := new(Catalog)
	c.images[VariantDefault] = defaultImg
	c.images[VariantText] = textImg
	return c
}

// Get returns the image for the variant. It is total once the catalog is
// constructed.
func (c *Catalog) Get(variant Variant) *cursorres.Cursor {
	return c.images[variant]
}
