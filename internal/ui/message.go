package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/pbin/internal/store"
	"github.com/desertthunder/pbin/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStoreChanged MsgKind = iota
	MsgNotification
	MsgToastExpired
)

// storeChangedMsg is the constructor for [MsgStoreChanged]
func storeChangedMsg(e store.Event) Msg {
	return Msg{kind: MsgStoreChanged, data: e}
}

// notificationMsg is the constructor for [MsgNotification]
func notificationMsg(n tasks.Notification) Msg {
	return Msg{kind: MsgNotification, data: n}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]
func toastExpiredMsg(id int) Msg {
	return Msg{kind: MsgToastExpired, data: id}
}
