package client

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/mdouchement/paperflow/pkg/libpf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	sessionBucket  = "session"
	userKey        = "user"
	accessTokenKey = "access_token"
)

// StormCodec is the format used to store data in the local database.
var StormCodec = storm.Codec(msgpack.Codec)

// persistedUser is the non-sensitive projection written to disk.
// The access token lives under its own key.
type persistedUser struct {
	Email string     `json:"email"`
	Role  libpf.Role `json:"role"`
}

// A Store is the single source of truth for "who is logged in".
// The session survives restarts through the local database; both storage
// keys are written and removed together so a reader never sees half a session.
type Store struct {
	mu      sync.RWMutex
	db      *storm.DB
	ready   bool
	session libpf.Session
	subs    []func(libpf.Session)
	log     logrus.FieldLogger
}

// OpenStore opens the local database and wraps it in a Store.
func OpenStore(database string) (*Store, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not open local database")
	}
	return NewStore(db), nil
}

// NewStore returns a Store backed by the given database.
func NewStore(db *storm.DB) *Store {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &Store{
		db:  db,
		log: log,
	}
}

// SetLogger defines the logger used for corruption and lifecycle events.
func (s *Store) SetLogger(log logrus.FieldLogger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = log
}

// DB exposes the underlying database so other local data can share the file.
func (s *Store) DB() *storm.DB {
	return s.db
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize rehydrates the session from the local database.
// A missing or unparsable entry is corruption, not an error: both keys are
// purged and the store falls back to anonymous. After it returns, Ready
// reports true so consumers can tell "checked and anonymous" from "not
// checked yet".
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	session, ok := s.rehydrate()
	if !ok {
		if err := s.purge(); err != nil {
			return err
		}
	}

	s.session = session
	s.ready = true
	return nil
}

// rehydrate loads both storage keys and rebuilds a session.
// It returns false if anything is missing, partial or corrupt.
func (s *Store) rehydrate() (libpf.Session, bool) {
	var raw, token string

	err := s.db.Get(sessionBucket, userKey, &raw)
	if err == storm.ErrNotFound {
		// No record. Still report not-ok so a dangling token gets purged.
		return libpf.Session{}, false
	}
	if err != nil {
		s.log.Warnf("session store: unreadable user entry: %s", err)
		return libpf.Session{}, false
	}

	if err = s.db.Get(sessionBucket, accessTokenKey, &token); err != nil {
		if err != storm.ErrNotFound {
			s.log.Warnf("session store: unreadable token entry: %s", err)
		}
		return libpf.Session{}, false
	}

	var user persistedUser
	if err = json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warnf("session store: corrupt user entry, purging: %s", err)
		return libpf.Session{}, false
	}

	session := libpf.Session{
		Email:       user.Email,
		Role:        user.Role,
		AccessToken: token,
		TokenType:   libpf.DefaultTokenType,
	}
	if !session.Defined() {
		s.log.Warn("session store: partial session on disk, purging")
		return libpf.Session{}, false
	}

	return session, true
}

// Ready returns true once Initialize has run.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Current returns the session. The zero session is the anonymous marker,
// a partially filled session is never returned.
func (s *Store) Current() libpf.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token returns the bearer token, or an empty string when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// Subscribe registers a callback invoked after every session change.
func (s *Store) Subscribe(fn func(libpf.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Set replaces the session and persists it: the non-sensitive projection
// under `user', the raw token under `access_token', both in one transaction.
func (s *Store) Set(session libpf.Session) error {
	if !session.Defined() {
		return errors.New("refusing to store a partial session")
	}

	raw, err := json.Marshal(persistedUser{Email: session.Email, Role: session.Role})
	if err != nil {
		return errors.Wrap(err, "could not serialize session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not open transaction")
	}
	defer tx.Rollback()

	if err = tx.Set(sessionBucket, userKey, string(raw)); err != nil {
		return errors.Wrap(err, "could not store session")
	}
	if err = tx.Set(sessionBucket, accessTokenKey, session.AccessToken); err != nil {
		return errors.Wrap(err, "could not store token")
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "could not store session")
	}

	s.session = session
	s.notify()
	return nil
}

// Clear removes the session from memory and disk. It is idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.purge(); err != nil {
		return err
	}

	s.session = libpf.Session{}
	s.notify()
	return nil
}

// purge deletes both storage keys in one transaction. Callers hold the lock.
func (s *Store) purge() error {
	tx, err := s.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not open transaction")
	}
	defer tx.Rollback()

	for _, key := range []string{userKey, accessTokenKey} {
		if err = tx.Delete(sessionBucket, key); err != nil && err != storm.ErrNotFound {
			return errors.Wrap(err, "could not remove session entry")
		}
	}

	return errors.Wrap(tx.Commit(), "could not remove session entries")
}

// notify runs the subscribers. Callers hold the lock.
func (s *Store) notify() {
	for _, fn := range s.subs {
		fn(s.session)
	}
}
