package wishlist

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	SessionName = "wishlist"
	itemsKey    = "items"

	// maxEncodedItems leaves room for gob, signing and base64 overhead under
	// the 4096 byte cookie limit enforced by securecookie.
	maxEncodedItems = 2000
)

// SessionStore keeps the wishlist in a signed client cookie.
type SessionStore struct {
	store sessions.Store
}

// NewCookieStore builds a SessionStore backed by a signed cookie.
func NewCookieStore(secret []byte, secure bool) *SessionStore {
	cs := sessions.NewCookieStore(secret)
	cs.Options.Path = "/"
	cs.Options.HttpOnly = true
	cs.Options.Secure = secure
	cs.Options.SameSite = http.SameSiteLaxMode
	cs.Options.MaxAge = 60 * 60 * 24 * 30
	return &SessionStore{store: cs}
}

func NewSessionStore(store sessions.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Load reads the wishlist from the request. A missing, tampered or
// undecodable cookie yields an empty list.
func (s *SessionStore) Load(r *http.Request) *List {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return &List{}
	}

	raw, ok := session.Values[itemsKey].(string)
	if !ok || raw == "" {
		return &List{}
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return &List{}
	}
	return NewList(items...)
}

// Save writes the list back as a cookie on w.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter, l *List) error {
	// Get returns a fresh session alongside a decode error, which Save overwrites.
	session, _ := s.store.Get(r, SessionName)

	data, err := json.Marshal(l.Items())
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	if len(data) > maxEncodedItems {
		return ErrFull
	}
	session.Values[itemsKey] = string(data)

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save wishlist session: %w", err)
	}
	return nil
}
