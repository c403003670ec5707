package session

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"kale-admin/internal/api"
	"kale-admin/internal/model"
)

type fakeGateway struct {
	loginRes api.LoginResult
	loginErr error

	profile      model.User
	profileErr   error
	profileCalls int
}

func (f *fakeGateway) Login(ctx context.Context, creds model.Credentials) (api.LoginResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeGateway) Profile(ctx context.Context) (model.User, error) {
	f.profileCalls++
	return f.profile, f.profileErr
}

func (f *fakeGateway) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (model.User, error) {
	return f.profile, f.profileErr
}

func (f *fakeGateway) ChangePassword(ctx context.Context, chg api.PasswordChange) error {
	return f.profileErr
}

func adminUser() model.User {
	return model.User{ID: "u1", Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin, IsActive: true}
}

func loggedInStore(t *testing.T, dir string) *Store {
	t.Helper()
	s := NewStore(dir)
	s.AttachGateway(&fakeGateway{loginRes: api.LoginResult{Token: "tok", User: adminUser()}})
	if err := s.Login(context.Background(), model.Credentials{Username: "admin", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return s
}

func TestLoginInstallsSessionAtomically(t *testing.T) {
	s := loggedInStore(t, t.TempDir())

	if s.State() != StateAuthenticated {
		t.Fatalf("state = %s, want authenticated", s.State())
	}
	if s.Token() != "tok" {
		t.Fatalf("token = %q, want tok", s.Token())
	}
	cur := s.Current()
	if !cur.Authenticated() {
		t.Fatalf("snapshot not authenticated: %+v", cur)
	}
	if cur.User.Username != "admin" {
		t.Fatalf("user = %q, want admin", cur.User.Username)
	}
}

func TestLoginFailureLeavesNoSession(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	s.AttachGateway(&fakeGateway{loginErr: &api.Error{Kind: api.FailureUnauthorized, Message: "Unauthorized access"}})

	if err := s.Login(context.Background(), model.Credentials{Username: "admin", Password: "bad"}); err == nil {
		t.Fatalf("expected login error")
	}
	if s.Current().Authenticated() {
		t.Fatalf("session installed after failed login")
	}
	// Nothing must have been persisted either.
	if _, _, ok, err := s.readCreds(context.Background()); err != nil || ok {
		t.Fatalf("persisted creds after failed login (ok=%v, err=%v)", ok, err)
	}
}

func TestRestoreVerifiesPersistedSession(t *testing.T) {
	dir := t.TempDir()
	loggedInStore(t, dir)

	fresh := adminUser()
	fresh.Username = "renamed"
	gw := &fakeGateway{profile: fresh}

	s2 := NewStore(dir)
	s2.AttachGateway(gw)
	if err := s2.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s2.State() != StateAuthenticated {
		t.Fatalf("state = %s, want authenticated", s2.State())
	}
	if gw.profileCalls != 1 {
		t.Fatalf("profile calls = %d, want 1", gw.profileCalls)
	}
	// The verification fetch refreshes the in-memory user snapshot.
	if got := s2.Current().User.Username; got != "renamed" {
		t.Fatalf("user = %q, want renamed", got)
	}
}

func TestRestoreTearsDownOnVerificationFailure(t *testing.T) {
	dir := t.TempDir()
	loggedInStore(t, dir)

	s2 := NewStore(dir)
	s2.AttachGateway(&fakeGateway{profileErr: &api.Error{Kind: api.FailureUnauthorized, Message: "Unauthorized access"}})
	if err := s2.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s2.State() != StateUnauthenticated {
		t.Fatalf("state = %s, want unauthenticated", s2.State())
	}
	if s2.Token() != "" || s2.Current().User != nil {
		t.Fatalf("session not fully cleared: token=%q user=%v", s2.Token(), s2.Current().User)
	}

	// The teardown reaches disk: a third store restores to nothing and never
	// hits the network.
	gw := &fakeGateway{profile: adminUser()}
	s3 := NewStore(dir)
	s3.AttachGateway(gw)
	if err := s3.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s3.State() != StateUnauthenticated {
		t.Fatalf("state = %s, want unauthenticated", s3.State())
	}
	if gw.profileCalls != 0 {
		t.Fatalf("profile calls = %d, want 0", gw.profileCalls)
	}
}

func TestRestoreWithNothingPersisted(t *testing.T) {
	gw := &fakeGateway{profile: adminUser()}
	s := NewStore(t.TempDir())
	s.AttachGateway(gw)
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.State() != StateUnauthenticated {
		t.Fatalf("state = %s, want unauthenticated", s.State())
	}
	if gw.profileCalls != 0 {
		t.Fatalf("profile calls = %d, want 0", gw.profileCalls)
	}
}

func TestRestoreClearsHalfPresentSnapshot(t *testing.T) {
	dir := t.TempDir()

	// Token without a user row cannot happen through the store's own writes;
	// simulate a corrupted state directly.
	db, err := sql.Open("sqlite", filepath.Join(dir, credsDBFile))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE creds (k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO creds(k, v) VALUES('token', 'tok')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	gw := &fakeGateway{profile: adminUser()}
	s := NewStore(dir)
	s.AttachGateway(gw)
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.State() != StateUnauthenticated {
		t.Fatalf("state = %s, want unauthenticated", s.State())
	}
	if gw.profileCalls != 0 {
		t.Fatalf("profile calls = %d, want 0", gw.profileCalls)
	}
	// The dangling token row is gone.
	if token, _, _, err := s.readCreds(context.Background()); err != nil || token != "" {
		t.Fatalf("token row survived (token=%q, err=%v)", token, err)
	}
}

func TestRestoreRejectsCorruptUserJSON(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.writeCreds(context.Background(), "tok", "{not json"); err != nil {
		t.Fatalf("writeCreds: %v", err)
	}
	s.AttachGateway(&fakeGateway{profile: adminUser()})
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.State() != StateUnauthenticated {
		t.Fatalf("state = %s, want unauthenticated", s.State())
	}
}

func TestLogoutClearsMemoryAndDisk(t *testing.T) {
	dir := t.TempDir()
	s := loggedInStore(t, dir)

	s.Logout()
	if s.State() != StateUnauthenticated || s.Token() != "" || s.Current().User != nil {
		t.Fatalf("session survived logout")
	}
	// Idempotent.
	s.Logout()

	s2 := NewStore(dir)
	s2.AttachGateway(&fakeGateway{profile: adminUser()})
	if err := s2.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s2.State() != StateUnauthenticated {
		t.Fatalf("state = %s, want unauthenticated", s2.State())
	}
}

func TestInvalidateMatchesLogout(t *testing.T) {
	s := loggedInStore(t, t.TempDir())
	s.Invalidate()
	if s.State() != StateUnauthenticated || s.Current().Authenticated() {
		t.Fatalf("invalidate did not tear the session down")
	}
	// Safe with nothing to clear.
	s.Invalidate()
}

func TestUpdateProfilePersistsFreshUser(t *testing.T) {
	dir := t.TempDir()
	s := loggedInStore(t, dir)

	fresh := adminUser()
	fresh.Username = "renamed"
	s.AttachGateway(&fakeGateway{profile: fresh})

	if err := s.UpdateProfile(context.Background(), api.ProfileUpdate{Username: "renamed", Email: fresh.Email}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got := s.Current().User.Username; got != "renamed" {
		t.Fatalf("user = %q, want renamed", got)
	}

	// The persisted snapshot was refreshed too.
	s2 := NewStore(dir)
	s2.AttachGateway(&fakeGateway{profile: fresh})
	if err := s2.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := s2.Current().User.Username; got != "renamed" {
		t.Fatalf("restored user = %q, want renamed", got)
	}
}
