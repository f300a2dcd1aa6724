package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	dom "github.com/anmshpython/to-do-list/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = 24 * time.Hour
)

var (
	ErrNoSession = errors.New("no such session")
	ErrNoDraft   = errors.New("no draft at that index")
)

// Identity is the explicit session state: either Anonymous or Authenticated
// with a user id. It replaces probing for a user-id attribute.
type Identity struct {
	Authenticated bool
	UserID        int64
}

// record is the JSON session body stored in Redis. Drafts and flash messages
// ride alongside the user binding so they are scoped to one browser, not
// shared process-wide.
type record struct {
	UserID  int64       `json:"user_id"`
	Drafts  []dom.Draft `json:"drafts,omitempty"`
	Flashes []string    `json:"flash,omitempty"`
}

// Store manages sessions in Redis. Cookie values are signed with the
// configured secret so a forged id never reaches Redis.
type Store struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, secret string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{rdb: rdb, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the session lifetime, for cookie max-age.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create stores a new anonymous session and returns its ID.
func (s *Store) Create(ctx context.Context) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.save(ctx, id, record{}); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a session by ID. Drafts and flashes die with it.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// Exists reports whether the session is live.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Identity returns the session's identity. A missing session is Anonymous.
func (s *Store) Identity(ctx context.Context, id string) (Identity, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return Identity{}, nil
		}
		return Identity{}, err
	}
	if rec.UserID > 0 {
		return Identity{Authenticated: true, UserID: rec.UserID}, nil
	}
	return Identity{}, nil
}

// SetUser binds the session to a user id (login / registration).
func (s *Store) SetUser(ctx context.Context, id string, userID int64) error {
	return s.update(ctx, id, func(rec *record) error {
		rec.UserID = userID
		return nil
	})
}

// AddDraft appends a draft task. Blank dates are stamped with today.
func (s *Store) AddDraft(ctx context.Context, id, title, taskDate string) error {
	today := s.now().Format(dom.DateLayout)
	if strings.TrimSpace(taskDate) == "" {
		taskDate = today
	}
	return s.update(ctx, id, func(rec *record) error {
		rec.Drafts = append(rec.Drafts, dom.Draft{Title: title, Date: today, TaskDate: taskDate})
		return nil
	})
}

// Drafts returns the session's pending drafts in insertion order.
func (s *Store) Drafts(ctx context.Context, id string) ([]dom.Draft, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, nil
		}
		return nil, err
	}
	return rec.Drafts, nil
}

// RemoveDraft deletes a draft by positional index. Out-of-range indexes
// return ErrNoDraft instead of faulting.
func (s *Store) RemoveDraft(ctx context.Context, id string, index int) error {
	return s.update(ctx, id, func(rec *record) error {
		if index < 0 || index >= len(rec.Drafts) {
			return ErrNoDraft
		}
		rec.Drafts = append(rec.Drafts[:index], rec.Drafts[index+1:]...)
		return nil
	})
}

// ClearDrafts empties the draft list, typically right after a flush.
func (s *Store) ClearDrafts(ctx context.Context, id string) error {
	return s.update(ctx, id, func(rec *record) error {
		rec.Drafts = nil
		return nil
	})
}

// AddFlash queues a one-shot notice for the next rendered page.
func (s *Store) AddFlash(ctx context.Context, id, msg string) error {
	return s.update(ctx, id, func(rec *record) error {
		rec.Flashes = append(rec.Flashes, msg)
		return nil
	})
}

// PopFlashes returns and clears the queued notices.
func (s *Store) PopFlashes(ctx context.Context, id string) ([]string, error) {
	var out []string
	err := s.update(ctx, id, func(rec *record) error {
		out = rec.Flashes
		rec.Flashes = nil
		return nil
	})
	if errors.Is(err, ErrNoSession) {
		return nil, nil
	}
	return out, err
}

// CookieValue returns the signed cookie form of a session id: "id.hexhmac".
func (s *Store) CookieValue(id string) string {
	return id + "." + s.sign(id)
}

// ParseCookie verifies a signed cookie value and returns the session id.
func (s *Store) ParseCookie(value string) (string, bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(id))) {
		return "", false
	}
	return id, true
}

func (s *Store) sign(id string) string {
	m := hmac.New(sha256.New, s.secret)
	m.Write([]byte(id))
	return hex.EncodeToString(m.Sum(nil))
}

func (s *Store) load(ctx context.Context, id string) (record, error) {
	b, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return record{}, ErrNoSession
	}
	if err != nil {
		return record{}, err
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return record{}, err
	}
	return rec, nil
}

func (s *Store) save(ctx context.Context, id string, rec record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	// Every write refreshes the TTL, so active sessions slide.
	return s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err()
}

func (s *Store) update(ctx context.Context, id string, fn func(*record) error) error {
	rec, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(&rec); err != nil {
		return err
	}
	return s.save(ctx, id, rec)
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
