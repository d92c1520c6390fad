package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/pbin/internal/store"
	"github.com/desertthunder/pbin/internal/tasks"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 2 * time.Second

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListingView ViewState = iota
	EditorView
)

// EventSource delivers store change notifications. Implemented by [store.Store].
type EventSource interface {
	Subscribe() (<-chan store.Event, func())
}

type field int

const (
	titleField field = iota
	contentField
)

type toast struct {
	id      int
	level   tasks.Level
	message string
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	listing *tasks.Listing
	editor  *tasks.Editor
	logger  *log.Logger

	events      <-chan store.Event
	unsubscribe func()

	width  int
	height int

	pasteList list.Model
	search    textinput.Model
	searching bool

	title   textinput.Model
	content textarea.Model
	focus   field

	toast    *toast
	toastSeq int

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model and subscribes it to src for change events.
//
// Call [Model.Close] once the program exits to release the subscription.
func NewModel(ctx context.Context, src EventSource, listing *tasks.Listing, editor *tasks.Editor, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search titles"

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 256

	content := textarea.New()
	content.Placeholder = "Paste content..."
	content.ShowLineNumbers = true
	content.CharLimit = 0

	pasteList := list.New(toItems(listing.Visible()), list.NewDefaultDelegate(), 0, 0)
	pasteList.Title = "Pastes"
	pasteList.SetFilteringEnabled(false)
	pasteList.SetShowHelp(false)
	pasteList.KeyMap.Quit.SetEnabled(false)

	m := &Model{
		ctx:       ctx,
		view:      ListingView,
		listing:   listing,
		editor:    editor,
		logger:    logger,
		pasteList: pasteList,
		search:    search,
		title:     title,
		content:   content,
		help:      help.New(),
		keys:      newKeyMap(),
	}

	if src != nil {
		m.events, m.unsubscribe = src.Subscribe()
	}
	return m
}

// Close releases the store subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// Init starts listening for store events.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListingView:
			return m.handleListingKeys(msg)
		case EditorView:
			return m.handleEditorKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgStoreChanged:
			e := msg.data.(store.Event)
			m.logger.Debug("store changed", "kind", e.Kind, "id", e.Paste.ID)
			cmd := m.refresh()
			return m, tea.Batch(cmd, m.waitForEvent())

		case MsgNotification:
			n := msg.data.(tasks.Notification)
			return m, m.showToast(n.Level, n.Message)

		case MsgToastExpired:
			if m.toast != nil && m.toast.id == msg.data.(int) {
				m.toast = nil
			}
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case EditorView:
		body = m.renderEditor()
	default:
		body = m.renderListing()
	}

	if t := m.renderToast(); t != "" {
		body = body + "\n" + t
	}
	return body
}

func (m *Model) handleListingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.create):
		m.editor.Reset()
		return m, m.openEditor()

	case key.Matches(msg, m.keys.edit):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		if err := m.editor.Edit(id); err != nil {
			return m, m.showToast(tasks.LevelError, err.Error())
		}
		return m, m.openEditor()

	case key.Matches(msg, m.keys.remove):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		removed, err := m.listing.Delete(m.ctx, id)
		if err != nil {
			m.logger.Error("delete failed", "id", id, "error", err)
			return m, m.showToast(tasks.LevelError, "Failed to delete paste")
		}
		if !removed {
			return m, m.showToast(tasks.LevelError, tasks.MsgPasteNotFound)
		}
		return m, tea.Batch(m.refresh(), m.showToast(tasks.LevelSuccess, "Paste deleted"))

	case key.Matches(msg, m.keys.copy):
		if id, ok := m.selectedID(); ok {
			return m, waitForNotification(m.listing.CopyContent(m.ctx, id))
		}
		return m, nil

	case key.Matches(msg, m.keys.share):
		if id, ok := m.selectedID(); ok {
			return m, waitForNotification(m.listing.Share(m.ctx, id))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pasteList, cmd = m.pasteList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.listing.SetQuery("")
		return m, m.refresh()
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.listing.Query() {
		m.listing.SetQuery(m.search.Value())
		return m, tea.Batch(cmd, m.refresh())
	}
	return m, cmd
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.editor.Reset()
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.keys.next):
		return m, m.toggleFocus()

	case key.Matches(msg, m.keys.save):
		return m, m.save()
	}

	return m.updateInputs(msg)
}

// save writes the editor inputs through the store and returns to the listing.
func (m *Model) save() tea.Cmd {
	m.editor.Title = m.title.Value()
	m.editor.Content = m.content.Value()
	mode := m.editor.Mode()

	p, err := m.editor.Save(m.ctx)
	m.closeEditor()
	if err != nil {
		m.logger.Error("save failed", "mode", mode, "error", err)
		return m.showToast(tasks.LevelError, fmt.Sprintf("Save failed: %v", err))
	}

	m.logger.Info("paste saved", "mode", mode, "id", p.ID)
	message := "Paste created"
	if mode == tasks.ModeUpdate {
		message = "Paste updated"
	}
	return tea.Batch(m.refresh(), m.showToast(tasks.LevelSuccess, message))
}

func (m *Model) openEditor() tea.Cmd {
	m.view = EditorView
	m.title.SetValue(m.editor.Title)
	m.content.SetValue(m.editor.Content)
	m.focus = titleField
	m.content.Blur()
	return m.title.Focus()
}

func (m *Model) closeEditor() {
	m.view = ListingView
	m.title.Reset()
	m.content.Reset()
	m.title.Blur()
	m.content.Blur()
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == titleField {
		m.focus = contentField
		m.title.Blur()
		return m.content.Focus()
	}
	m.focus = titleField
	m.content.Blur()
	return m.title.Focus()
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case EditorView:
		if m.focus == titleField {
			m.title, cmd = m.title.Update(msg)
		} else {
			m.content, cmd = m.content.Update(msg)
		}
	default:
		m.pasteList, cmd = m.pasteList.Update(msg)
	}
	return m, cmd
}

// refresh reloads the visible pastes from the listing.
func (m *Model) refresh() tea.Cmd {
	return m.pasteList.SetItems(toItems(m.listing.Visible()))
}

func (m *Model) resize() {
	m.pasteList.SetSize(max(m.width-4, 0), max(m.height-8, 0))
	m.search.Width = max(m.width-6, 0)
	m.title.Width = max(m.width-6, 0)
	m.content.SetWidth(max(m.width-4, 0))
	m.content.SetHeight(max(m.height-12, 3))
}

func (m *Model) selectedID() (string, bool) {
	item, ok := m.pasteList.SelectedItem().(pasteItem)
	if !ok {
		return "", false
	}
	return item.paste.ID, true
}

func (m *Model) showToast(level tasks.Level, message string) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, level: level, message: message}
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg(id)
	})
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return storeChangedMsg(e)
	}
}

func waitForNotification(ch <-chan tasks.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

func (m *Model) renderListing() string {
	var b strings.Builder

	if m.searching || m.listing.Query() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	if len(m.pasteList.Items()) == 0 {
		b.WriteString(styles.heading.Render("Pastes"))
		b.WriteString("\n")
		b.WriteString(styles.empty.Render(tasks.MsgNoDataFound))
		b.WriteString("\n")
	} else {
		b.WriteString(m.pasteList.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.listingHelp()))
	return b.String()
}

func (m *Model) renderEditor() string {
	heading := "New Paste"
	if m.editor.Mode() == tasks.ModeUpdate {
		heading = "Edit Paste"
	}

	helpKeys := m.keys.editorHelp()
	helpKeys[0] = key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", m.editor.Mode().Action()),
	)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n%s\n\n%s",
		styles.heading.Render(heading),
		styles.label.Render("Title"),
		m.title.View(),
		styles.label.Render("Content"),
		m.content.View(),
		m.help.ShortHelpView(helpKeys),
	)
}

func (m *Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	if m.toast.level == tasks.LevelError {
		return styles.toastErr.Render("✗ " + m.toast.message)
	}
	return styles.toastOK.Render("✓ " + m.toast.message)
}
