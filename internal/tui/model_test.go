package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/contacts"
	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/store"
)

func seeded(t *testing.T, cs ...contacts.Contact) *contacts.Store {
	t.Helper()
	s := contacts.New(context.Background(), store.NewInMemoryStore())
	for _, c := range cs {
		res, err := s.Add(context.Background(), c)
		if err != nil || !res.OK {
			t.Fatalf("seed %q: res=%+v err=%v", c.Email, res, err)
		}
	}
	return s
}

var (
	alice = contacts.Contact{Name: "Alice", Email: "alice@example.com", Phone: "1234567890"}
	bob   = contacts.Contact{Name: "Bob", Email: "sal@x.com", Phone: "1234567890"}
	carol = contacts.Contact{Name: "carol", Email: "carol@x.com", Phone: "1234567890"}
)

// send feeds msgs through Update and returns the resulting Model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestNew_ListsSortedContacts(t *testing.T) {
	m := New(context.Background(), seeded(t, bob, carol, alice))
	if len(m.items) != 3 {
		t.Fatalf("items = %d, want 3", len(m.items))
	}
	want := []string{"Alice", "Bob", "carol"}
	for i, name := range want {
		if m.items[i].Name != name {
			t.Errorf("items[%d] = %q, want %q", i, m.items[i].Name, name)
		}
	}
	if m.mode != modeBrowse {
		t.Error("new model should start in browse mode")
	}
}

func TestInit_ReturnsBlinkCmd(t *testing.T) {
	m := New(context.Background(), seeded(t))
	if m.Init() == nil {
		t.Fatal("Init() should return a non-nil Cmd for the cursor")
	}
}

func TestBrowse_LiveSearch(t *testing.T) {
	m := New(context.Background(), seeded(t, alice, bob, carol))

	m = send(t, m, runes("AL"))
	if got := m.search.Value(); got != "AL" {
		t.Fatalf("search value = %q, want AL", got)
	}
	if len(m.items) != 2 || m.items[0].Name != "Alice" || m.items[1].Email != "sal@x.com" {
		t.Fatalf("items after search = %+v", m.items)
	}
	if !strings.Contains(m.View(), "Contacts 2/3") {
		t.Fatalf("header missing filtered count:\n%s", m.View())
	}

	m = send(t, m, key(tea.KeyBackspace), key(tea.KeyBackspace))
	if len(m.items) != 3 {
		t.Fatalf("clearing the query should show all contacts, got %d", len(m.items))
	}
}

func TestBrowse_CursorBounds(t *testing.T) {
	m := New(context.Background(), seeded(t, alice, bob))
	m = send(t, m, key(tea.KeyUp))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	m = send(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
}

func TestBrowse_RemoveSelected(t *testing.T) {
	s := seeded(t, alice, bob)
	m := New(context.Background(), s)

	m = send(t, m, key(tea.KeyDown), key(tea.KeyCtrlD))
	if s.Len() != 1 || s.List()[0].Name != "Alice" {
		t.Fatalf("store after remove = %+v", s.List())
	}
	if len(m.items) != 1 || m.cursor != 0 {
		t.Fatalf("items=%d cursor=%d after remove", len(m.items), m.cursor)
	}
	if m.statusErr || !strings.Contains(m.status, "sal@x.com") {
		t.Fatalf("status = %q (err=%v)", m.status, m.statusErr)
	}
}

func TestBrowse_RemoveOnEmptyIsNoop(t *testing.T) {
	m := New(context.Background(), seeded(t))
	m = send(t, m, key(tea.KeyCtrlD))
	if m.status != "" {
		t.Fatalf("status = %q, want empty", m.status)
	}
}

func TestBrowse_ClearAll(t *testing.T) {
	s := seeded(t, alice, bob, carol)
	m := New(context.Background(), s)
	m = send(t, m, key(tea.KeyCtrlX))
	if s.Len() != 0 || len(m.items) != 0 {
		t.Fatalf("store len=%d items=%d after clear", s.Len(), len(m.items))
	}
	if !strings.Contains(m.status, "Cleared 3") {
		t.Fatalf("status = %q", m.status)
	}
	if !strings.Contains(m.View(), "(no contacts)") {
		t.Fatalf("empty view missing placeholder:\n%s", m.View())
	}
}

func TestAdd_SubmitSuccess(t *testing.T) {
	s := seeded(t)
	m := New(context.Background(), s)

	m = send(t, m,
		key(tea.KeyCtrlN),
		runes("  Dana  "), key(tea.KeyTab),
		runes("dana@x.com"), key(tea.KeyTab),
		runes("555-123-4567"),
		key(tea.KeyEnter),
	)
	if m.mode != modeBrowse {
		t.Fatal("successful add should return to browse mode")
	}
	list := s.List()
	if len(list) != 1 || list[0] != (contacts.Contact{Name: "Dana", Email: "dana@x.com", Phone: "5551234567"}) {
		t.Fatalf("store = %+v", list)
	}
	if len(m.items) != 1 {
		t.Fatalf("items = %d, want 1", len(m.items))
	}
	for i, f := range m.fields {
		if f.Value() != "" {
			t.Errorf("field %d not reset: %q", i, f.Value())
		}
	}
}

func TestAdd_RejectionKeepsForm(t *testing.T) {
	s := seeded(t, alice)
	m := New(context.Background(), s)

	m = send(t, m,
		key(tea.KeyCtrlN),
		runes("Other"), key(tea.KeyTab),
		runes(alice.Email), key(tea.KeyTab),
		runes("12"),
		key(tea.KeyEnter),
	)
	if m.mode != modeAdd {
		t.Fatal("rejected add should keep the form open")
	}
	if !m.statusErr || m.status != "Email already exists" {
		t.Fatalf("status = %q (err=%v)", m.status, m.statusErr)
	}
	if m.fields[fieldName].Value() != "Other" {
		t.Fatalf("form lost input: %q", m.fields[fieldName].Value())
	}
	if s.Len() != 1 {
		t.Fatalf("store len = %d, want 1", s.Len())
	}
}

func TestAdd_PhoneFieldShaping(t *testing.T) {
	m := New(context.Background(), seeded(t))
	m = send(t, m, key(tea.KeyCtrlN), key(tea.KeyShiftTab))
	if m.focus != fieldPhone {
		t.Fatalf("shift+tab from name should wrap to phone, focus = %d", m.focus)
	}
	m = send(t, m, runes("(0)12 abc 3456789012345"))
	got := m.fields[fieldPhone].Value()
	if got != digitsOnly(got) {
		t.Fatalf("phone field kept non-digits: %q", got)
	}
	if len(got) > maxPhoneDigits {
		t.Fatalf("phone field longer than %d: %q", maxPhoneDigits, got)
	}
	if !strings.HasPrefix(got, "012") {
		t.Fatalf("leading zero should be kept, got %q", got)
	}
}

func TestAdd_PastedFormattedPhoneKeepsDigits(t *testing.T) {
	s := seeded(t)
	m := New(context.Background(), s)
	m = send(t, m,
		key(tea.KeyCtrlN), runes("Dana"),
		key(tea.KeyTab), runes("dana@x.com"),
		key(tea.KeyTab),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+1 (555) 123-4567"), Paste: true},
	)
	if got := m.fields[fieldPhone].Value(); got != "15551234567" {
		t.Fatalf("pasted phone = %q, want 15551234567", got)
	}

	m = send(t, m, key(tea.KeyEnter))
	if m.mode != modeBrowse || m.statusErr {
		t.Fatalf("submit failed: mode=%v status=%q", m.mode, m.status)
	}
	got := s.List()
	if len(got) != 1 || got[0].Phone != "15551234567" {
		t.Fatalf("stored = %+v", got)
	}
}

func TestAdd_EscCancels(t *testing.T) {
	s := seeded(t)
	m := New(context.Background(), s)
	m = send(t, m, key(tea.KeyCtrlN), runes("Zed"), key(tea.KeyEsc))
	if m.mode != modeBrowse {
		t.Fatal("esc should close the form")
	}
	if m.fields[fieldName].Value() != "" {
		t.Fatal("cancel should reset the form")
	}
	if s.Len() != 0 {
		t.Fatal("cancel should not add")
	}
}

type failingStore struct{ ContactStore }

func (failingStore) Add(context.Context, contacts.Contact) (contacts.Result, error) {
	return contacts.Result{}, errors.New("contacts: add: disk full")
}

func (failingStore) Clear(context.Context) (int, error) {
	return 0, errors.New("contacts: clear: disk full")
}

func TestStorageErrorsAreShown(t *testing.T) {
	m := New(context.Background(), failingStore{seeded(t, alice)})

	m = send(t, m, key(tea.KeyCtrlX))
	if !m.statusErr || !strings.Contains(m.status, "disk full") {
		t.Fatalf("clear failure status = %q", m.status)
	}

	m = send(t, m, key(tea.KeyCtrlN), runes("B"), key(tea.KeyEnter))
	if m.mode != modeAdd || !strings.Contains(m.status, "disk full") {
		t.Fatalf("add failure: mode=%v status=%q", m.mode, m.status)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := New(context.Background(), seeded(t))
		next, cmd := m.Update(key(k))
		if cmd == nil {
			t.Fatalf("key %v should return tea.Quit", k)
		}
		if !next.(Model).quitting {
			t.Fatalf("key %v should mark the model quitting", k)
		}
	}
}

// TestModel_Teatest_SearchSession drives a whole program through teatest.
func TestModel_Teatest_SearchSession(t *testing.T) {
	m := New(context.Background(), seeded(t, alice, bob, carol))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("alice@example.com"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("carol")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if got := final.search.Value(); got != "carol" {
		t.Fatalf("final search = %q, want carol", got)
	}
	if len(final.items) != 1 || final.items[0].Email != carol.Email {
		t.Fatalf("final items = %+v", final.items)
	}
}
