// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pointermonitor subscribes to global pointer motion through the
// XInput2 raw event stream and adapts the X server facilities the overlay
// needs: pointer queries, host cursor show/hide and feed recovery.
package pointermonitor

import (
	"sync"

	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
	x "github.com/linuxdeepin/go-x11-client"
	"github.com/linuxdeepin/go-x11-client/ext/ge"
	"github.com/linuxdeepin/go-x11-client/ext/input"
	"github.com/linuxdeepin/go-x11-client/ext/xfixes"
)

//go:generate dbusutil-gen em -type Manager

// FeedState describes what happened to the raw motion subscription.
type FeedState int

const (
	// FeedDegraded means the event stream stopped and can be re-enabled
	// with Resume.
	FeedDegraded FeedState = iota
	// FeedDenied means the X server refused the subscription; no pointer
	// positions will be delivered.
	FeedDenied
	// FeedResumed means a Resume call brought the stream back.
	FeedResumed
)

// MotionHandler receives pointer positions. X grows rightwards, Y grows
// upwards from the bottom screen edge. Calls are serialized: the next
// position is not delivered before the handler returns.
type MotionHandler func(x, y float64)

type FeedStateHandler func(state FeedState)

type Manager struct {
	service *dbusutil.Service
	xConn   *x.Conn

	screenHeight float64

	mu           sync.Mutex
	motionFn     MotionHandler
	feedStateFn  FeedStateHandler
	denied       bool
	listening    bool
	stopped      bool
	cursorShowed bool

	//nolint
	signals *struct {
		FeedDegraded struct{}
		FeedResumed  struct{}
	}
}

func newManager(service *dbusutil.Service) (*Manager, error) {
	xConn, err := x.NewConn()
	if err != nil {
		return nil, err
	}
	m := &Manager{
		service:      service,
		xConn:        xConn,
		screenHeight: float64(xConn.GetDefaultScreen().HeightInPixels),
		cursorShowed: true,
	}
	return m, nil
}

func (m *Manager) initXExtensions() {
	_, err := xfixes.QueryVersion(m.xConn, xfixes.MajorVersion, xfixes.MinorVersion).Reply(m.xConn)
	if err != nil {
		logger.Warning(err)
	}

	_, err = ge.QueryVersion(m.xConn, ge.MajorVersion, ge.MinorVersion).Reply(m.xConn)
	if err != nil {
		logger.Warning(err)
		return
	}

	_, err = input.XIQueryVersion(m.xConn, input.MajorVersion, input.MinorVersion).Reply(m.xConn)
	if err != nil {
		logger.Warning(err)
	}
}

// SetMotionHandler installs the consumer of pointer positions. Only one
// consumer is supported.
func (m *Manager) SetMotionHandler(fn MotionHandler) {
	m.mu.Lock()
	m.motionFn = fn
	m.mu.Unlock()
}

// SetFeedStateHandler installs the consumer of feed state changes. If the
// subscription was already refused at startup the handler is told right away.
func (m *Manager) SetFeedStateHandler(fn FeedStateHandler) {
	m.mu.Lock()
	m.feedStateFn = fn
	denied := m.denied
	m.mu.Unlock()

	if denied && fn != nil {
		fn(FeedDenied)
	}
}

func (m *Manager) markDenied() {
	m.mu.Lock()
	m.denied = true
	m.mu.Unlock()
}

// ScreenHeight returns the root screen height in pixels.
func (m *Manager) ScreenHeight() float64 {
	return m.screenHeight
}

// CurrentPointer queries the pointer position, Y measured upwards from the
// bottom screen edge. ok is false when the X server cannot answer.
func (m *Manager) CurrentPointer() (px, py float64, ok bool) {
	reply, err := m.queryPointer()
	if err != nil {
		logger.Warning("failed to query pointer:", err)
		return 0, 0, false
	}
	return float64(reply.RootX), m.screenHeight - float64(reply.RootY), true
}

func (m *Manager) queryPointer() (*x.QueryPointerReply, error) {
	root := m.xConn.GetDefaultScreen().Root
	return x.QueryPointer(m.xConn, root).Reply(m.xConn)
}

// SetHostCursorVisible shows or hides the cursor drawn by the X server.
func (m *Manager) SetHostCursorVisible(visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cursorShowed == visible {
		return nil
	}
	rootWin := m.xConn.GetDefaultScreen().Root
	var cookie x.VoidCookie
	if visible {
		logger.Debug("xfixes show cursor")
		cookie = xfixes.ShowCursorChecked(m.xConn, rootWin)
	} else {
		logger.Debug("xfixes hide cursor")
		cookie = xfixes.HideCursorChecked(m.xConn, rootWin)
	}
	err := cookie.Check(m.xConn)
	if err != nil {
		return err
	}
	m.cursorShowed = visible
	return nil
}

func (m *Manager) selectMotionEvents() error {
	root := m.xConn.GetDefaultScreen().Root
	return input.XISelectEventsChecked(m.xConn, root, []input.EventMask{
		{
			DeviceId: input.DeviceAllMaster,
			Mask:     []uint32{input.XIEventMaskRawMotion},
		},
	}).Check(m.xConn)
}

func (m *Manager) deselectMotionEvents() error {
	root := m.xConn.GetDefaultScreen().Root
	return input.XISelectEventsChecked(m.xConn, root, []input.EventMask{
		{
			DeviceId: input.DeviceAllMaster,
			Mask:     []uint32{0},
		},
	}).Check(m.xConn)
}

func (m *Manager) listenXEvents() {
	m.mu.Lock()
	m.listening = true
	m.mu.Unlock()

	eventChan := make(chan x.GenericEvent, 10)
	m.xConn.AddEventChan(eventChan)
	inputExtData := m.xConn.GetExtensionData(input.Ext())

	for ev := range eventChan {
		if ev.GetEventCode() != x.GeGenericEventCode {
			continue
		}
		geEvent, _ := x.NewGeGenericEvent(ev)
		if geEvent.Extension != inputExtData.MajorOpcode ||
			geEvent.EventType != input.RawMotionEventCode {
			continue
		}

		// raw events carry relative values only, so ask for the absolute
		// position like the rest of the desktop does
		reply, err := m.queryPointer()
		if err != nil {
			logger.Warning(err)
			continue
		}

		m.mu.Lock()
		fn := m.motionFn
		m.mu.Unlock()
		if fn != nil {
			fn(float64(reply.RootX), m.screenHeight-float64(reply.RootY))
		}
	}

	// the event channel only closes when the connection is gone
	m.mu.Lock()
	m.listening = false
	stopped := m.stopped
	fn := m.feedStateFn
	m.mu.Unlock()
	if stopped {
		return
	}

	logger.Warning("x event stream stopped")
	err := m.service.Emit(m, "FeedDegraded")
	if err != nil {
		logger.Warning("Emit error:", err)
	}
	if fn != nil {
		fn(FeedDegraded)
	}
}

// Resume re-enables the motion feed over DBus.
func (m *Manager) Resume() *dbus.Error {
	return dbusutil.ToError(m.ResumeFeed())
}

// ResumeFeed re-enables the motion feed, reconnecting to the X server if
// the previous connection died.
func (m *Manager) ResumeFeed() error {
	m.mu.Lock()
	if !m.listening {
		xConn, err := x.NewConn()
		if err != nil {
			m.mu.Unlock()
			return err
		}
		m.xConn.Close()
		m.xConn = xConn
		m.screenHeight = float64(xConn.GetDefaultScreen().HeightInPixels)
		m.listening = true
		m.mu.Unlock()
		m.initXExtensions()
		go m.listenXEvents()
	} else {
		m.mu.Unlock()
	}

	if err := m.selectMotionEvents(); err != nil {
		return err
	}

	err := m.service.Emit(m, "FeedResumed")
	if err != nil {
		logger.Warning("Emit error:", err)
	}
	m.mu.Lock()
	fn := m.feedStateFn
	m.mu.Unlock()
	if fn != nil {
		fn(FeedResumed)
	}
	return nil
}

func (m *Manager) destroy() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()

	if err := m.deselectMotionEvents(); err != nil {
		logger.Warning(err)
	}
	if err := m.SetHostCursorVisible(true); err != nil {
		logger.Warning(err)
	}
	m.xConn.Close()
}

func (m *Manager) GetInterfaceName() string {
	return dbusInterface
}
