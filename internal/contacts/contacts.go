// Package contacts implements the contact list: an ordered collection of
// contacts mirrored to a key-value medium under a single key.
//
// Every mutation rewrites the whole collection as one JSON array.  If
// the write fails the in-memory collection is restored to its previous
// state, so memory never runs ahead of what was persisted.
package contacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultKey is the medium key the collection is stored under.
const DefaultKey = "contacts_v1"

// Medium is the durable key-value dependency of a Store.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store owns the in-memory contact collection.  It is safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	medium   Medium
	key      string
	log      *slog.Logger
	collator *collate.Collator
	contacts []Contact
}

// Option configures a Store.
type Option func(*Store)

// WithKey stores the collection under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger.  The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithLanguage sets the collation used by List.  The default is English.
func WithLanguage(tag language.Tag) Option {
	return func(s *Store) { s.collator = collate.New(tag) }
}

// New returns a Store backed by medium and loads whatever the medium
// currently holds.
func New(ctx context.Context, medium Medium, opts ...Option) *Store {
	s := &Store{
		medium: medium,
		key:    DefaultKey,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.collator == nil {
		s.collator = collate.New(language.English)
	}
	s.log = s.log.With("key", s.key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
	return s
}

// Add validates c and appends it.  The first failing check wins:
// duplicate email, email format, phone format, then empty name.  A
// rejected contact leaves the store untouched and is reported in the
// Result; the error is non-nil only when persisting failed.
func (s *Store) Add(ctx context.Context, c Contact) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(c.Email) >= 0 {
		s.log.Debug("add rejected", "kind", DuplicateEmail, "email", c.Email)
		return failure(DuplicateEmail), nil
	}
	if kind, ok := checkFormat(c); !ok {
		s.log.Debug("add rejected", "kind", kind, "email", c.Email)
		return failure(kind), nil
	}

	prev := s.contacts
	s.contacts = append(slices.Clip(prev), c)
	if err := s.save(ctx); err != nil {
		s.contacts = prev
		return Result{}, fmt.Errorf("contacts: add %q: %w", c.Email, err)
	}
	s.log.Info("contact added", "email", c.Email, "count", len(s.contacts))
	return Result{OK: true}, nil
}

// List returns a copy of all contacts ordered by name.  Equal names
// keep their insertion order.
func (s *Store) List() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.contacts)
	slices.SortStableFunc(out, func(a, b Contact) int {
		return s.collator.CompareString(a.Name, b.Name)
	})
	if out == nil {
		out = []Contact{}
	}
	return out
}

// Search returns, in insertion order, every contact whose name or email
// contains query, ignoring case.  An empty query matches everything.
func (s *Store) Search(query string) []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	out := []Contact{}
	for _, c := range s.contacts {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out
}

// Remove deletes every contact whose email equals email, persists, and
// reports whether anything was removed.
func (s *Store) Remove(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.contacts
	s.contacts = slices.DeleteFunc(slices.Clone(prev), func(c Contact) bool { return c.Email == email })
	if err := s.save(ctx); err != nil {
		s.contacts = prev
		return false, fmt.Errorf("contacts: remove %q: %w", email, err)
	}
	removed := len(s.contacts) != len(prev)
	if removed {
		s.log.Info("contact removed", "email", email, "count", len(s.contacts))
	}
	return removed, nil
}

// Clear removes every contact and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.contacts
	s.contacts = []Contact{}
	if err := s.save(ctx); err != nil {
		s.contacts = prev
		return 0, fmt.Errorf("contacts: clear: %w", err)
	}
	s.log.Info("contacts cleared", "removed", len(prev))
	return len(prev), nil
}

// Reset discards in-memory state and reloads it from the medium, as if
// the process had restarted.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = nil
	s.load(ctx)
}

// Len returns the number of stored contacts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

func (s *Store) indexOf(email string) int {
	return slices.IndexFunc(s.contacts, func(c Contact) bool { return c.Email == email })
}

// load replaces the collection with the medium's content.  It never
// fails: an unreadable or undecodable value yields an empty collection.
func (s *Store) load(ctx context.Context) {
	raw, found, err := s.medium.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("could not read contacts, starting empty", "err", err)
	}
	s.contacts = s.sanitize(decodeOrEmpty(raw, found && err == nil))
	s.log.Debug("contacts loaded", "count", len(s.contacts))
}

// decodeOrEmpty decodes raw as a JSON array of contacts, or returns an
// empty collection when raw is absent, blank, or not such an array.
func decodeOrEmpty(raw []byte, found bool) []Contact {
	if !found || len(bytes.TrimSpace(raw)) == 0 {
		return []Contact{}
	}
	var cs []Contact
	if err := json.Unmarshal(raw, &cs); err != nil || cs == nil {
		return []Contact{}
	}
	return cs
}

// sanitize drops records Add would have rejected: invalid email, phone
// or name, and repeats of an email already seen.
func (s *Store) sanitize(cs []Contact) []Contact {
	seen := make(map[string]struct{}, len(cs))
	out := cs[:0]
	for _, c := range cs {
		if _, dup := seen[c.Email]; dup || !ValidEmail(c.Email) || !ValidPhone(c.Phone) || !ValidName(c.Name) {
			s.log.Warn("dropping stored contact", "email", c.Email)
			continue
		}
		seen[c.Email] = struct{}{}
		out = append(out, c)
	}
	return out
}

// save writes the whole collection to the medium.
func (s *Store) save(ctx context.Context) error {
	cs := s.contacts
	if cs == nil {
		cs = []Contact{}
	}
	data, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return s.medium.Set(ctx, s.key, data)
}
