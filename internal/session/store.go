package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/talkincode/brewhub/internal/domain"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	bucketSession = []byte("session")
	keyIdentity   = []byte("identity")
)

// Store holds the authenticated principal: token and role, written at
// login, read by every manager, cleared at logout. It is backed by a bbolt
// file so the credential survives process restarts the way the browser
// app's localStorage did.
type Store struct {
	mu sync.RWMutex
	db *bolt.DB
	id domain.Identity
}

// Open opens (or creates) the session database and loads any persisted
// identity into memory.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open session store")
	}
	s := &Store{db: db}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketSession)
		if err != nil {
			return err
		}
		if raw := b.Get(keyIdentity); raw != nil {
			if err := json.Unmarshal(raw, &s.id); err != nil {
				zap.L().Warn("discarding unreadable persisted session", zap.Error(err))
				s.id = domain.Identity{}
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "load session")
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Set stores a freshly issued identity and persists it.
func (s *Store) Set(id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	raw, err := json.Marshal(id)
	if err != nil {
		return errors.Wrap(err, "encode identity")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keyIdentity, raw)
	})
}

// Clear drops the credential, in memory and on disk. Calls already in
// flight keep their copy of the token and fail server-side.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = domain.Identity{}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyIdentity)
	})
}

func (s *Store) Identity() domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Token implements remote.Credentials.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id.Token
}

func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id.Role
}

func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id.Valid()
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id.IsAdmin()
}

// Expired reports whether the stored token carries a JWT exp claim in the
// past. Opaque tokens never expire client-side; the server remains the
// authority either way.
func (s *Store) Expired() bool {
	tok := s.Token()
	if tok == "" {
		return true
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
