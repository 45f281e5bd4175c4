package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/models"
	"github.com/lechoovuck/GameMonetaWebAppServer/utils"
)

type fakeBlacklist struct {
	spent map[string]bool
}

func (f *fakeBlacklist) Exists(ctx context.Context, token string) (bool, error) {
	return f.spent[token], nil
}

// fakeUserStore гасит одноразовые токены вместе с мутацией, как это делает
// транзакция в UserRepository.
type fakeUserStore struct {
	users     map[int]models.User
	blacklist *fakeBlacklist
	resets    int
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email != nil && *user.Email == email {
			return user, nil
		}
	}
	return models.User{}, nil
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	user.ID = len(f.users) + 1
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) ResetPassword(ctx context.Context, userID int, hashedPassword, spentToken string) error {
	user := f.users[userID]
	user.HashedPassword = &hashedPassword
	f.users[userID] = user
	f.blacklist.spent[spentToken] = true
	f.resets++
	return nil
}

func (f *fakeUserStore) ResetEmail(ctx context.Context, userID int, email, spentToken string) error {
	user := f.users[userID]
	user.Email = &email
	f.users[userID] = user
	f.blacklist.spent[spentToken] = true
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()

	tokens, err := utils.NewManager("test-secret")
	if err != nil {
		t.Fatal(err)
	}

	email := "user@example.com"
	blacklist := &fakeBlacklist{spent: map[string]bool{}}
	users := &fakeUserStore{
		users:     map[int]models.User{1: {ID: 1, Email: &email, Name: "Ivan"}},
		blacklist: blacklist,
	}

	return &AuthService{Users: users, Blacklist: blacklist, Tokens: tokens}, users
}

func TestResetPasswordRedeemsToken(t *testing.T) {
	s, users := newAuthFixture(t)

	token, err := s.Tokens.NewToken(1, models.TokenTypePasswordReset, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.ResetPassword(context.Background(), token, "new-password"); err != nil {
		t.Fatal(err)
	}
	if users.resets != 1 {
		t.Fatalf("resets = %d; want 1", users.resets)
	}

	// погашенный токен не принимается второй раз
	err = s.ResetPassword(context.Background(), token, "another-password")
	if !errors.Is(err, models.ErrTokenUsed) {
		t.Fatalf("expected ErrTokenUsed, got %v", err)
	}
	if users.resets != 1 {
		t.Errorf("resets = %d; want 1", users.resets)
	}
}

func TestResetPasswordWrongTokenType(t *testing.T) {
	s, _ := newAuthFixture(t)

	token, err := s.Tokens.NewToken(1, models.TokenTypeEmailReset, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	err = s.ResetPassword(context.Background(), token, "new-password")
	if !errors.Is(err, models.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestResetEmailSingleUse(t *testing.T) {
	s, users := newAuthFixture(t)

	token, err := s.Tokens.NewToken(1, models.TokenTypeEmailReset, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := s.ResetEmail(context.Background(), token, "new@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Message != "Email успешно изменен" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got := users.users[1].Email; got == nil || *got != "new@example.com" {
		t.Fatalf("email not updated: %v", got)
	}

	// тот же токен второй раз уже погашен
	_, err = s.ResetEmail(context.Background(), token, "third@example.com")
	if !errors.Is(err, models.ErrTokenUsed) {
		t.Fatalf("expected ErrTokenUsed, got %v", err)
	}
	if got := users.users[1].Email; got == nil || *got != "new@example.com" {
		t.Errorf("email changed again: %v", got)
	}
}

func TestResetEmailTakenEmail(t *testing.T) {
	s, users := newAuthFixture(t)

	other := "taken@example.com"
	users.users[2] = models.User{ID: 2, Email: &other, Name: "Oleg"}

	token, err := s.Tokens.NewToken(1, models.TokenTypeEmailReset, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := s.ResetEmail(context.Background(), token, other)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Message != "Этот email уже используется" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
