// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// signalRenderer forwards engine instructions as DBus signals. The
// compositor-side renderer listens to them and applies the changes on the
// thread that owns the overlay surface.
type signalRenderer struct {
	service *dbusutil.Service
	m       *Manager
}

func newSignalRenderer(service *dbusutil.Service, m *Manager) *signalRenderer {
	return &signalRenderer{
		service: service,
		m:       m,
	}
}

func (r *signalRenderer) SetVariant(variant Variant) {
	err := r.service.Emit(r.m, "VariantChanged", variant.String())
	if err != nil {
		logger.Warning("Emit error:", err)
	}
}

func (r *signalRenderer) Apply(p Placement) {
	err := r.service.Emit(r.m, "PlacementChanged",
		p.X, p.Y, int32(p.Width), int32(p.Height), p.Variant.String())
	if err != nil {
		logger.Warning("Emit error:", err)
	}
}

func (r *signalRenderer) SetVisible(visible bool) {
	err := r.service.Emit(r.m, "OverlayVisibleChanged", visible)
	if err != nil {
		logger.Warning("Emit error:", err)
	}
}
