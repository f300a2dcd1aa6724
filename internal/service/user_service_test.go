package service

import (
	"context"
	"testing"

	dom "github.com/anmshpython/to-do-list/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	nextID int64
	byMail map[string]dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byMail: map[string]dom.User{}}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := r.byMail[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, email, name, passwordHash string) (dom.User, error) {
	if _, ok := r.byMail[email]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}
	r.nextID++
	u := dom.User{ID: r.nextID, Email: email, Name: name, PasswordHash: passwordHash}
	r.byMail[email] = u
	return u, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), "a@x.com", "Ann", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEqual(t, "pw", u.PasswordHash, "stored password must never equal the plaintext")
	assert.NotEmpty(t, u.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	first, err := svc.Register(context.Background(), "a@x.com", "Ann", "pw")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@x.com", "Another Ann", "pw2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The first account is untouched.
	got, err := svc.Authenticate(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Ann", got.Name)
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	for _, tc := range []struct {
		name               string
		email, display, pw string
	}{
		{"no email", "", "Ann", "pw"},
		{"no name", "a@x.com", "", "pw"},
		{"no password", "a@x.com", "Ann", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.display, tc.pw)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	reg, err := svc.Register(context.Background(), "a@x.com", "Ann", "pw")
	require.NoError(t, err)

	got, err := svc.Authenticate(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, got.ID)

	// Email lookup is case-insensitive.
	_, err = svc.Authenticate(context.Background(), "A@X.com", "pw")
	assert.NoError(t, err)
}

func TestAuthenticateFailures(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	_, err := svc.Register(context.Background(), "a@x.com", "Ann", "pw")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrUnknownEmail)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
