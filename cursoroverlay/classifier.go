// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"sync"

	"github.com/linuxdeepin/go-lib/strv"
)

// RoleQuerier answers the accessibility role of the topmost UI element at a
// screen point. Pointer Y grows upwards from the bottom screen edge.
type RoleQuerier interface {
	RoleAt(x, y float64) (string, error)
}

// the implemented text-entry role set; a text-view role was discussed but
// never shipped, so it stays out until product confirms it
var defaultTextEntryRoles = []string{
	"text-field",
	"text-area",
}

// RoleClassifier maps accessibility roles onto cursor variants. Lookup
// failures fall back to the default context.
type RoleClassifier struct {
	querier RoleQuerier

	mu    sync.RWMutex
	roles strv.Strv
}

func NewRoleClassifier(querier RoleQuerier, roles []string) *RoleClassifier {
	c := &RoleClassifier{querier: querier}
	c.SetTextEntryRoles(roles)
	return c
}

// SetTextEntryRoles replaces the role set; nil or empty restores the
// built-in default.
func (c *RoleClassifier) SetTextEntryRoles(roles []string) {
	if len(roles) == 0 {
		roles = defaultTextEntryRoles
	}
	c.mu.Lock()
	c.roles = strv.Strv(roles)
	c.mu.Unlock()
}

func (c *RoleClassifier) Classify(x, y float64) Variant {
	role, err := c.querier.RoleAt(x, y)
	if err != nil {
		logger.Debug("role lookup failed:", err)
		return VariantDefault
	}

	c.mu.RLock()
	isTextEntry := c.roles.Contains(role)
	c.mu.RUnlock()
	if isTextEntry {
		return VariantText
	}
	return VariantDefault
}
