package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"simplyblog/internal/domain"
	"simplyblog/internal/token"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	createFn     func(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error)
	listFn       func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, email, passwordHash, role)
	}
	return &domain.User{ID: 1, Name: name, Email: email, PasswordHash: passwordHash, Role: role}, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockDenylist struct {
	revokeFn  func(ctx context.Context, token string, until time.Time) error
	revokedFn func(ctx context.Context, token string) (bool, error)
}

func (m *mockDenylist) Revoke(ctx context.Context, token string, until time.Time) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, token, until)
	}
	return nil
}

func (m *mockDenylist) Revoked(ctx context.Context, token string) (bool, error) {
	if m.revokedFn != nil {
		return m.revokedFn(ctx, token)
	}
	return false, nil
}

func (m *mockDenylist) PurgeExpired(ctx context.Context) error { return nil }

func testCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec("test-secret")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestRegisterHashesPasswordAndAssignsDefaultRole(t *testing.T) {
	var gotHash, gotRole, gotEmail string
	users := &mockUserRepo{
		createFn: func(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error) {
			gotHash, gotRole, gotEmail = passwordHash, role, email
			return &domain.User{ID: 1, Name: name, Email: email, PasswordHash: passwordHash, Role: role}, nil
		},
	}
	svc := NewAuthService(users, testCodec(t), &mockDenylist{})

	user, err := svc.Register(context.Background(), "A", "  A@X.com ", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected created user, got %+v", user)
	}
	if gotEmail != "a@x.com" {
		t.Fatalf("email not normalized: %q", gotEmail)
	}
	if gotRole != domain.DefaultRole {
		t.Fatalf("expected default role, got %q", gotRole)
	}
	if gotHash == "pw" || gotHash == "" {
		t.Fatal("password was not hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("pw")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		createFn: func(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	svc := NewAuthService(users, testCodec(t), &mockDenylist{})

	if _, err := svc.Register(context.Background(), "A", "a@x.com", "pw"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginSuccessMintsToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Name: "A", Email: email, PasswordHash: string(hash), Role: "user"}, nil
		},
	}
	codec := testCodec(t)
	svc := NewAuthService(users, codec, &mockDenylist{})

	raw, user, err := svc.Login(context.Background(), "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Role != "user" {
		t.Fatalf("unexpected role %q", user.Role)
	}

	claims, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("minted token does not parse: %v", err)
	}
	if claims.Email != "a@x.com" || claims.Role != "user" {
		t.Fatalf("token claims mismatch: %+v", claims)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testCodec(t), &mockDenylist{})

	if _, _, err := svc.Login(context.Background(), "nobody@x.com", "pw"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email, PasswordHash: string(hash), Role: "user"}, nil
		},
	}
	svc := NewAuthService(users, testCodec(t), &mockDenylist{})

	if _, _, err := svc.Login(context.Background(), "a@x.com", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestVerifyRejectsBadAndRevokedTokens(t *testing.T) {
	codec := testCodec(t)
	revoked := false
	denylist := &mockDenylist{
		revokedFn: func(ctx context.Context, token string) (bool, error) {
			return revoked, nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, codec, denylist)

	if _, err := svc.Verify(context.Background(), "garbage"); !errors.Is(err, ErrBadToken) {
		t.Fatalf("expected ErrBadToken for garbage, got %v", err)
	}

	raw, err := codec.Issue("a@x.com", "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := svc.Verify(context.Background(), raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.Email != "a@x.com" || identity.Role != "user" {
		t.Fatalf("identity mismatch: %+v", identity)
	}

	revoked = true
	if _, err := svc.Verify(context.Background(), raw); !errors.Is(err, ErrBadToken) {
		t.Fatalf("expected ErrBadToken for revoked token, got %v", err)
	}
}

func TestLogoutRevokesUntilExpiry(t *testing.T) {
	codec := testCodec(t)
	var gotUntil time.Time
	var revokeCalls int
	denylist := &mockDenylist{
		revokeFn: func(ctx context.Context, token string, until time.Time) error {
			revokeCalls++
			gotUntil = until
			return nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, codec, denylist)

	raw, err := codec.Issue("a@x.com", "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := svc.Logout(context.Background(), raw); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if revokeCalls != 1 {
		t.Fatalf("expected one revoke call, got %d", revokeCalls)
	}
	if until := time.Until(gotUntil); until < 23*time.Hour || until > 25*time.Hour {
		t.Fatalf("revocation bound not near token expiry: %v", gotUntil)
	}

	// An unparseable token has nothing to revoke.
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("Logout(garbage): %v", err)
	}
	if revokeCalls != 1 {
		t.Fatalf("garbage token should not be revoked, calls=%d", revokeCalls)
	}

	// An already-expired token has nothing to revoke either.
	stale, err := codec.IssueAt("a@x.com", "user", time.Now().Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}
	if err := svc.Logout(context.Background(), stale); err != nil {
		t.Fatalf("Logout(stale): %v", err)
	}
	if revokeCalls != 1 {
		t.Fatalf("expired token should not be revoked, calls=%d", revokeCalls)
	}
}

func TestLoginWithProvisioningCreatesOnFirstSight(t *testing.T) {
	created := false
	var store *domain.User
	users := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if store != nil && store.Email == email {
				return store, nil
			}
			return nil, nil
		},
		createFn: func(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error) {
			created = true
			if passwordHash != "" {
				t.Fatalf("SSO account must not carry a password hash")
			}
			store = &domain.User{ID: 7, Name: name, Email: email, Role: role}
			return store, nil
		},
	}
	codec := testCodec(t)
	svc := NewAuthService(users, codec, &mockDenylist{})

	raw, user, err := svc.LoginWithProvisioning(context.Background(), "A", "a@x.com")
	if err != nil {
		t.Fatalf("LoginWithProvisioning: %v", err)
	}
	if !created || user.ID != 7 {
		t.Fatalf("expected auto-provisioned user, got %+v", user)
	}
	if _, err := codec.Parse(raw); err != nil {
		t.Fatalf("minted token does not parse: %v", err)
	}
}
