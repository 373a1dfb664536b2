// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"encoding/binary"
	"sync"

	"github.com/linuxdeepin/dde-cursor-overlay/cursorres"
)

// buildCursorResource assembles a minimal single-image cursor resource with
// an all-opaque white payload.
func buildCursorResource(width, height int, hotspotX, hotspotY uint16) []byte {
	const imageDataAddr = 22
	header := make([]byte, imageDataAddr)
	binary.LittleEndian.PutUint16(header[2:], 2)
	binary.LittleEndian.PutUint16(header[4:], 1)
	header[6] = byte(width % 256)
	header[7] = byte(height % 256)
	binary.LittleEndian.PutUint16(header[10:], hotspotX)
	binary.LittleEndian.PutUint16(header[12:], hotspotY)
	binary.LittleEndian.PutUint32(header[18:], imageDataAddr)

	subHeader := make([]byte, 40)
	binary.LittleEndian.PutUint32(subHeader[0:], 40)
	binary.LittleEndian.PutUint16(subHeader[14:], 32)

	payload := make([]byte, width*height*4)
	for i := range payload {
		payload[i] = 0xff
	}

	buf := append(header, subHeader...)
	return append(buf, payload...)
}

func testImage(width, height, hotspotX, hotspotY int) *cursorres.Cursor {
	return &cursorres.Cursor{
		Width:    width,
		Height:   height,
		HotspotX: hotspotX,
		HotspotY: hotspotY,
		Pixels:   make([]byte, width*height*4),
	}
}

type fakeRenderer struct {
	mu         sync.Mutex
	variants   []Variant
	placements []Placement
	visibles   []bool
}

func (r *fakeRenderer) SetVariant(variant Variant) {
	r.mu.Lock()
	r.variants = append(r.variants, variant)
	r.mu.Unlock()
}

func (r *fakeRenderer) Apply(p Placement) {
	r.mu.Lock()
	r.placements = append(r.placements, p)
	r.mu.Unlock()
}

func (r *fakeRenderer) SetVisible(visible bool) {
	r.mu.Lock()
	r.visibles = append(r.visibles, visible)
	r.mu.Unlock()
}

type fakeClassifier struct {
	results []Variant
	calls   int
}

func (c *fakeClassifier) Classify(x, y float64) Variant {
	result := VariantDefault
	if len(c.results) > 0 {
		i := c.calls
		if i >= len(c.results) {
			i = len(c.results) - 1
		}
		result = c.results[i]
	}
	c.calls++
	return result
}

type fakeHostCursor struct {
	visibles []bool
}

func (h *fakeHostCursor) SetHostCursorVisible(visible bool) error {
	h.visibles = append(h.visibles, visible)
	return nil
}

type fakeLocator struct {
	x, y float64
	ok   bool
}

func (l *fakeLocator) CurrentPointer() (float64, float64, bool) {
	return l.x, l.y, l.ok
}

type fakeSource struct {
	resumed chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{resumed: make(chan struct{}, 8)}
}

func (s *fakeSource) ResumeFeed() error {
	s.resumed <- struct{}{}
	return nil
}

func newTestManager(classifier ContextClassifier, locator PointerLocator) (*Manager, *fakeRenderer, *fakeHostCursor, *fakeSource) {
	catalog := newCatalogFromImages(testImage(24, 24, 4, 2), testImage(12, 24, 6, 12))
	renderer := new(fakeRenderer)
	host := new(fakeHostCursor)
	source := newFakeSource()
	m := newManager(nil, catalog, classifier, renderer, host, locator, source, 900)
	return m, renderer, host, source
}
