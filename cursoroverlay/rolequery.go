// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"math"

	dbus "github.com/godbus/dbus/v5"
)

const (
	accessServiceName = "org.deepin.dde.Accessibility1"
	accessObjectPath  = "/org/deepin/dde/Accessibility1"
	accessMethod      = accessServiceName + ".GetRoleAtPoint"
)

// dbusRoleQuerier asks the accessibility service for the role of the
// element under a point. The service speaks top-down root coordinates, so
// the Y axis is flipped back before the call.
type dbusRoleQuerier struct {
	obj          dbus.BusObject
	screenHeight float64
}

func newDBusRoleQuerier(conn *dbus.Conn, screenHeight float64) *dbusRoleQuerier {
	return &dbusRoleQuerier{
		obj:          conn.Object(accessServiceName, accessObjectPath),
		screenHeight: screenHeight,
	}
}

func (q *dbusRoleQuerier) RoleAt(x, y float64) (string, error) {
	rootX := int32(math.Round(x))
	rootY := int32(math.Round(q.screenHeight - y))

	var role string
	err := q.obj.Call(accessMethod, 0, rootX, rootY).Store(&role)
	if err != nil {
		return "", err
	}
	return role, nil
}
