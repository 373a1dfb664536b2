// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"github.com/linuxdeepin/dde-cursor-overlay/cursorres"
)

// computePlacement maps a pointer position onto the overlay window origin.
// Pointer Y grows upwards from the bottom screen edge while the window
// origin is top-left-down, hence the flip through screenHeight. The hotspot
// pixel of the image ends up exactly under the pointer.
func computePlacement(px, py float64, img *cursorres.Cursor, screenHeight float64, variant Variant) Placement {
	return Placement{
		X:       px - float64(img.HotspotX),
		Y:       screenHeight - py - float64(img.Height-img.HotspotY),
		Width:   img.Width,
		Height:  img.Height,
		Variant: variant,
	}
}
