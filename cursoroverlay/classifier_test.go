// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRoleQuerier struct {
	role string
	err  error
}

func (q *fakeRoleQuerier) RoleAt(x, y float64) (string, error) {
	return q.role, q.err
}

func TestRoleClassifier(t *testing.T) {
	querier := &fakeRoleQuerier{}
	c := NewRoleClassifier(querier, nil)

	querier.role = "text-field"
	assert.Equal(t, VariantText, c.Classify(1, 2))

	querier.role = "text-area"
	assert.Equal(t, VariantText, c.Classify(1, 2))

	querier.role = "push-button"
	assert.Equal(t, VariantDefault, c.Classify(1, 2))

	querier.role = ""
	assert.Equal(t, VariantDefault, c.Classify(1, 2))
}

func TestRoleClassifierLookupFailure(t *testing.T) {
	querier := &fakeRoleQuerier{err: errors.New("no element at point")}
	c := NewRoleClassifier(querier, nil)

	// failures silently map to the default context
	assert.Equal(t, VariantDefault, c.Classify(1, 2))
}

func TestRoleClassifierCustomRoles(t *testing.T) {
	querier := &fakeRoleQuerier{role: "terminal"}
	c := NewRoleClassifier(querier, []string{"terminal"})

	assert.Equal(t, VariantText, c.Classify(1, 2))

	querier.role = "text-field"
	assert.Equal(t, VariantDefault, c.Classify(1, 2),
		"custom role set replaces the default one")

	// empty set restores the defaults
	c.SetTextEntryRoles(nil)
	assert.Equal(t, VariantText, c.Classify(1, 2))
}
