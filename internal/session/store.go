package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"kale-admin/internal/api"
	"kale-admin/internal/model"
)

// State is the store's position in its lifecycle. Unknown only exists before
// Restore has run once.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Gateway is the slice of the API client the store needs. The concrete
// *api.Client satisfies it; tests inject fakes.
type Gateway interface {
	Login(ctx context.Context, creds model.Credentials) (api.LoginResult, error)
	Profile(ctx context.Context) (model.User, error)
	UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (model.User, error)
	ChangePassword(ctx context.Context, chg api.PasswordChange) error
}

// Store is the single source of truth for "who is logged in".
//
// Invariant: at every observation point the session is either fully present
// (token and user both set) or fully absent. Login writes both together;
// Logout and Invalidate clear both together. The same holds for the
// persisted copy.
type Store struct {
	mu   sync.Mutex
	dir  string
	gw   Gateway
	st   State
	sess model.Session
}

func NewStore(dir string) *Store {
	return &Store{dir: strings.TrimSpace(dir), st: StateUnknown}
}

// AttachGateway wires the API client in after construction. The client is
// built with this store's Token and Invalidate hooks, so neither package
// imports the other's internals at construction time.
func (s *Store) AttachGateway(gw Gateway) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gw = gw
}

// Token is the TokenSource handed to the API client.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Token
}

// Current returns a snapshot of the session. The returned user is a copy.
func (s *Store) Current() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := model.Session{Token: s.sess.Token}
	if s.sess.User != nil {
		u := *s.sess.User
		out.User = &u
	}
	return out
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Restore loads the persisted session on startup. When both keys are present
// it optimistically treats the session as authenticated, then verifies the
// token with a profile fetch; any verification failure tears the session
// down. The optimistic window is deliberate: if the token is stale, the next
// Gateway call 401s and triggers the same teardown.
func (s *Store) Restore(ctx context.Context) error {
	token, userJSON, ok, err := s.readCreds(ctx)
	if err != nil {
		return err
	}
	if !ok {
		// Never let the two keys diverge: a half-present snapshot is cleared.
		_ = s.clearCreds(ctx)
		s.setUnauthenticated()
		return nil
	}

	var u model.User
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
		_ = s.clearCreds(ctx)
		s.setUnauthenticated()
		return nil
	}

	s.mu.Lock()
	s.sess = model.Session{Token: token, User: &u}
	s.st = StateAuthenticated
	gw := s.gw
	s.mu.Unlock()

	if gw == nil {
		return nil
	}
	fresh, err := gw.Profile(ctx)
	if err != nil {
		// Invalid/expired token. The Gateway's 401 hook may have already torn
		// the session down; Logout is idempotent either way.
		s.Logout()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st == StateAuthenticated {
		s.sess.User = &fresh
	}
	return nil
}

// Login authenticates and atomically installs the session, both in memory
// and on disk. On failure the returned error carries the user-facing message
// (api.AsError); the store performs no navigation.
func (s *Store) Login(ctx context.Context, creds model.Credentials) error {
	s.mu.Lock()
	gw := s.gw
	s.mu.Unlock()

	res, err := gw.Login(ctx, creds)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(res.User)
	if err != nil {
		return err
	}
	if err := s.writeCreds(ctx, res.Token, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := res.User
	s.sess = model.Session{Token: res.Token, User: &u}
	s.st = StateAuthenticated
	return nil
}

// Logout clears the persisted and in-memory session. Idempotent and safe to
// call from any goroutine.
func (s *Store) Logout() {
	_ = s.clearCreds(context.Background())
	s.setUnauthenticated()
}

// Invalidate is the teardown hook handed to the Gateway's OnUnauthorized.
// A 401 anywhere invalidates the whole session, not just the failing call.
func (s *Store) Invalidate() { s.Logout() }

// UpdateProfile applies a profile mutation and refreshes the persisted user
// snapshot on success.
func (s *Store) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) error {
	s.mu.Lock()
	gw := s.gw
	token := s.sess.Token
	s.mu.Unlock()

	fresh, err := gw.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(fresh)
	if err != nil {
		return err
	}
	if err := s.writeCreds(ctx, token, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st == StateAuthenticated {
		s.sess.User = &fresh
	}
	return nil
}

// ChangePassword is a pass-through; the snapshot does not change.
func (s *Store) ChangePassword(ctx context.Context, chg api.PasswordChange) error {
	s.mu.Lock()
	gw := s.gw
	s.mu.Unlock()
	return gw.ChangePassword(ctx, chg)
}

func (s *Store) setUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = model.Session{}
	s.st = StateUnauthenticated
}
