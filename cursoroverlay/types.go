// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

// Variant selects which cursor image the overlay displays.
type Variant int

const (
	// VariantDefault is the plain pointer image.
	VariantDefault Variant = iota
	// VariantText is the text caret image shown over text entry elements.
	VariantText
)

func (v Variant) String() string {
	switch v {
	case VariantDefault:
		return "default"
	case VariantText:
		return "text"
	default:
		return "unknown"
	}
}

// Mode is the top level display mode of the engine.
type Mode int

const (
	// ModeSystem leaves the host cursor alone and hides the overlay.
	ModeSystem Mode = iota
	// ModeCustom hides the host cursor and draws the overlay instead.
	ModeCustom
)

func (m Mode) String() string {
	switch m {
	case ModeSystem:
		return "system"
	case ModeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Placement tells the renderer where to put the overlay window so that the
// hotspot pixel of the active image sits exactly under the real pointer.
// X and Y are the top-left origin in top-down window coordinates.
type Placement struct {
	X       float64
	Y       float64
	Width   int
	Height  int
	Variant Variant
}

// ContextClassifier infers from the UI element under the pointer whether the
// text caret cursor should be shown. It may block briefly; failures must map
// to VariantDefault instead of an error.
type ContextClassifier interface {
	Classify(x, y float64) Variant
}

// OverlayRenderer receives the instructions produced by the engine. The
// implementation is responsible for applying them on whatever thread owns
// the overlay surface.
type OverlayRenderer interface {
	SetVariant(variant Variant)
	Apply(placement Placement)
	SetVisible(visible bool)
}

// HostCursor shows or hides the pointer drawn by the host.
type HostCursor interface {
	SetHostCursorVisible(visible bool) error
}

// PointerLocator answers the current pointer position, Y measured upwards
// from the bottom screen edge. ok is false when the position is unavailable.
type PointerLocator interface {
	CurrentPointer() (x, y float64, ok bool)
}

// PointerEventSource is the feed of pointer motion; ResumeFeed re-enables
// it after it degraded.
type PointerEventSource interface {
	ResumeFeed() error
}
