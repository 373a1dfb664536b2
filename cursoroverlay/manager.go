// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cursoroverlay

import (
	"sync"

	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

//go:generate dbusutil-gen em -type Manager

type pointerPoint struct {
	x, y float64
}

type toggleRequest struct {
	reply chan Mode
}

// Manager owns the engine state: the display mode and, while the custom
// cursor is shown, the active variant. The state is mutated only by the
// engine goroutine; every other execution context talks to it through
// channels.
type Manager struct {
	service *dbusutil.Service

	catalog    *Catalog
	classifier ContextClassifier
	renderer   OverlayRenderer
	hostCursor HostCursor
	locator    PointerLocator
	source     PointerEventSource

	screenHeight float64

	// engine state, written by the engine goroutine only
	mode    Mode
	variant Variant

	// snapshot of the engine state for readers on other contexts
	stateMu sync.RWMutex
	curMode Mode
	curVar  Variant

	moveCh   chan pointerPoint
	toggleCh chan toggleRequest
	resumeCh chan struct{}
	quit     chan struct{}
	done     chan struct{}

	deniedOnce sync.Once

	//nolint
	signals *struct {
		VariantChanged struct {
			variant string
		}
		PlacementChanged struct {
			x, y          float64
			width, height int32
			variant       string
		}
		OverlayVisibleChanged struct {
			visible bool
		}
	}
}

func newManager(service *dbusutil.Service, catalog *Catalog, classifier ContextClassifier,
	renderer OverlayRenderer, hostCursor HostCursor, locator PointerLocator,
	source PointerEventSource, screenHeight float64) *Manager {
	return &Manager{
		service:      service,
		catalog:      catalog,
		classifier:   classifier,
		renderer:     renderer,
		hostCursor:   hostCursor,
		locator:      locator,
		source:       source,
		screenHeight: screenHeight,
		mode:         ModeSystem,
		variant:      VariantDefault,
		moveCh:       make(chan pointerPoint, 1),
		toggleCh:     make(chan toggleRequest),
		resumeCh:     make(chan struct{}, 1),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (m *Manager) setRenderer(renderer OverlayRenderer) {
	m.renderer = renderer
}

// run is the engine loop. It is the single writer of mode and variant.
func (m *Manager) run() {
	defer close(m.done)
	for {
		select {
		case <-m.quit:
			return
		case req := <-m.toggleCh:
			req.reply <- m.applyToggle()
		case pt := <-m.moveCh:
			m.onPointerMoved(pt.x, pt.y)
		case <-m.resumeCh:
			if err := m.source.ResumeFeed(); err != nil {
				logger.Warning("failed to resume pointer feed:", err)
			}
		}
	}
}

func (m *Manager) stop() {
	close(m.quit)
	<-m.done
}

// Toggle switches between the system cursor and the custom overlay cursor.
// It returns only after the transition has been fully applied, including
// the immediate context sample when entering the custom mode.
func (m *Manager) Toggle() (mode string, busErr *dbus.Error) {
	req := toggleRequest{reply: make(chan Mode, 1)}
	select {
	case m.toggleCh <- req:
		return (<-req.reply).String(), nil
	case <-m.quit:
		return m.CurrentMode().String(), nil
	}
}

// CurrentMode reports the mode last applied by the engine.
func (m *Manager) CurrentMode() Mode {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.curMode
}

// CurrentVariant reports the variant last applied by the engine.
func (m *Manager) CurrentVariant() Variant {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.curVar
}

// State exposes the engine state over DBus for diagnostics.
func (m *Manager) State() (mode string, variant string, busErr *dbus.Error) {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.curMode.String(), m.curVar.String(), nil
}

func (m *Manager) publishState() {
	m.stateMu.Lock()
	m.curMode = m.mode
	m.curVar = m.variant
	m.stateMu.Unlock()
}

// HandlePointerMoved feeds a pointer position into the engine. The newest
// position wins: an unprocessed older one is dropped so placement never
// trails the pointer.
func (m *Manager) HandlePointerMoved(x, y float64) {
	pt := pointerPoint{x: x, y: y}
	for {
		select {
		case m.moveCh <- pt:
			return
		default:
		}
		select {
		case <-m.moveCh:
		default:
		}
	}
}

// HandleFeedTimeout asks the engine to re-enable the pointer feed. The
// mode and variant stay as they are.
func (m *Manager) HandleFeedTimeout() {
	select {
	case m.resumeCh <- struct{}{}:
	default:
	}
}

// HandleFeedDenied is called when the pointer feed was refused outright.
// Reported once; the engine keeps running with the custom mode inert.
func (m *Manager) HandleFeedDenied() {
	m.deniedOnce.Do(func() {
		logger.Warning("pointer feed denied; custom cursor will not follow the pointer")
	})
}

func (m *Manager) applyToggle() Mode {
	if m.mode == ModeSystem {
		m.mode = ModeCustom
		m.variant = VariantDefault

		if err := m.hostCursor.SetHostCursorVisible(false); err != nil {
			logger.Warning("failed to hide host cursor:", err)
		}

		// sample the context right away so the overlay appears with the
		// correct image at the correct spot
		if px, py, ok := m.locator.CurrentPointer(); ok {
			m.variant = m.classifier.Classify(px, py)
			m.renderer.SetVariant(m.variant)
			m.emitPlacement(px, py)
		} else {
			m.renderer.SetVariant(m.variant)
		}
		m.renderer.SetVisible(true)
	} else {
		m.mode = ModeSystem
		m.variant = VariantDefault

		m.renderer.SetVisible(false)
		if err := m.hostCursor.SetHostCursorVisible(true); err != nil {
			logger.Warning("failed to show host cursor:", err)
		}
	}
	m.publishState()
	return m.mode
}

func (m *Manager) onPointerMoved(px, py float64) {
	if m.mode != ModeCustom {
		return
	}

	variant := m.classifier.Classify(px, py)
	if variant != m.variant {
		m.variant = variant
		m.renderer.SetVariant(variant)
		m.publishState()
	}
	m.emitPlacement(px, py)
}

func (m *Manager) emitPlacement(px, py float64) {
	img := m.catalog.Get(m.variant)
	m.renderer.Apply(computePlacement(px, py, img, m.screenHeight, m.variant))
}

func (m *Manager) GetInterfaceName() string {
	return dbusInterface
}
