// Package tui is an interactive terminal front end for the contact list.
// It shapes keyboard input and renders results; every acceptance
// decision is left to the contacts store.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/contacts"
)

// ContactStore is the subset of contacts.Store the TUI drives.
type ContactStore interface {
	Add(ctx context.Context, c contacts.Contact) (contacts.Result, error)
	List() []contacts.Contact
	Search(query string) []contacts.Contact
	Remove(ctx context.Context, email string) (bool, error)
	Clear(ctx context.Context) (int, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
)

const (
	fieldName = iota
	fieldEmail
	fieldPhone
)

// maxPhoneDigits matches the longest phone the store accepts.  It
// bounds the digits left after shaping, not the raw input.
const maxPhoneDigits = 13

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Model is the Bubble Tea model for browsing and editing contacts.
type Model struct {
	ctx   context.Context
	store ContactStore

	mode   mode
	search textinput.Model
	fields []textinput.Model
	focus  int

	items  []contacts.Contact
	total  int
	cursor int

	status    string
	statusErr bool
	quitting  bool
}

// New creates a Model showing every contact in store.
func New(ctx context.Context, store ContactStore) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name or email"
	search.Focus()

	labels := []string{"Name", "Email", "Phone"}
	fields := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-7s", label+":")
		fields[i] = in
	}
	fields[fieldEmail].Placeholder = "name@example.com"
	fields[fieldPhone].Placeholder = "10-13 digits"

	m := Model{
		ctx:    ctx,
		store:  store,
		search: search,
		fields: fields,
	}
	m.refresh()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}
	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.mode == modeAdd {
		return m.updateAdd(key)
	}
	return m.updateBrowse(key)
}

func (m Model) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyCtrlD:
		if len(m.items) == 0 {
			return m, nil
		}
		email := m.items[m.cursor].Email
		removed, err := m.store.Remove(m.ctx, email)
		switch {
		case err != nil:
			m.setError(err.Error())
		case removed:
			m.setInfo("Removed " + email)
		}
		m.refresh()
		return m, nil

	case tea.KeyCtrlX:
		n, err := m.store.Clear(m.ctx)
		if err != nil {
			m.setError(err.Error())
		} else {
			m.setInfo(fmt.Sprintf("Cleared %d contacts", n))
		}
		m.refresh()
		return m, nil

	case tea.KeyCtrlN:
		m.mode = modeAdd
		m.status = ""
		m.search.Blur()
		m.focus = fieldName
		return m, m.fields[m.focus].Focus()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(key)
	if m.search.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.closeForm()
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		step := 1
		if key.Type == tea.KeyShiftTab {
			step = len(m.fields) - 1
		}
		m.fields[m.focus].Blur()
		m.focus = (m.focus + step) % len(m.fields)
		return m, m.fields[m.focus].Focus()

	case tea.KeyEnter:
		c := contacts.Contact{
			Name:  strings.TrimSpace(m.fields[fieldName].Value()),
			Email: strings.TrimSpace(m.fields[fieldEmail].Value()),
			Phone: strings.TrimSpace(m.fields[fieldPhone].Value()),
		}
		res, err := m.store.Add(m.ctx, c)
		switch {
		case err != nil:
			m.setError(err.Error())
		case !res.OK:
			m.setError(res.Error)
		default:
			m.closeForm()
			m.setInfo("Added " + c.Name)
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(key)
	if m.focus == fieldPhone {
		if v := m.fields[fieldPhone].Value(); shapePhone(v) != v {
			m.fields[fieldPhone].SetValue(shapePhone(v))
		}
	}
	return m, cmd
}

// updateFocused forwards non-key messages, such as cursor blinks, to
// whichever input currently has focus.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.mode == modeAdd {
		m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	} else {
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m *Model) closeForm() {
	for i := range m.fields {
		m.fields[i].Blur()
		m.fields[i].Reset()
	}
	m.focus = fieldName
	m.mode = modeBrowse
	m.search.Focus()
}

// refresh reloads the visible items: everything when the query is
// empty, search results otherwise.
func (m *Model) refresh() {
	all := m.store.List()
	m.total = len(all)
	if q := m.search.Value(); q != "" {
		m.items = m.store.Search(q)
	} else {
		m.items = all
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

func (m *Model) setError(s string) { m.status, m.statusErr = s, true }
func (m *Model) setInfo(s string)  { m.status, m.statusErr = s, false }

// View renders the current mode.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.mode == modeAdd {
		b.WriteString(titleStyle.Render("Add contact") + "\n\n")
		for _, f := range m.fields {
			b.WriteString("  " + f.View() + "\n")
		}
	} else {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Contacts %d/%d", len(m.items), m.total)) + "\n\n")
		b.WriteString("  " + m.search.View() + "\n\n")
		if len(m.items) == 0 {
			b.WriteString(dimStyle.Render("  (no contacts)") + "\n")
		}
		for i, c := range m.items {
			line := fmt.Sprintf("%s <%s> • %s", c.Name, c.Email, c.Phone)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString("\n  " + style.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(m.help()) + "\n")
	return b.String()
}

func (m Model) help() string {
	if m.mode == modeAdd {
		return "  enter save • tab next field • esc cancel"
	}
	return "  type to search • ↑/↓ select • ctrl+n add • ctrl+d remove • ctrl+x clear all • esc quit"
}

// shapePhone keeps the digits of s, truncated to maxPhoneDigits.
func shapePhone(s string) string {
	d := digitsOnly(s)
	if len(d) > maxPhoneDigits {
		d = d[:maxPhoneDigits]
	}
	return d
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
