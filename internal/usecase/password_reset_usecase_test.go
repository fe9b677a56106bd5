package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
)

// Redisの代わり。TTLは見ない。
type memTokenStore struct {
	tokens map[int64]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: map[int64]string{}}
}

func (s *memTokenStore) Save(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	s.tokens[userID] = token
	return nil
}

func (s *memTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	tok, ok := s.tokens[userID]
	if !ok {
		return "", repo.ErrNotFound
	}
	return tok, nil
}

func (s *memTokenStore) Delete(ctx context.Context, userID int64) error {
	delete(s.tokens, userID)
	return nil
}

type memMailer struct {
	to      []string
	bodies  []string
	subject []string
}

func (m *memMailer) Send(ctx context.Context, to string, subject string, body string) error {
	m.to = append(m.to, to)
	m.subject = append(m.subject, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

func newResetUsecase(s *memStore, tokens *memTokenStore, mailer *memMailer) *usecase.PasswordResetUsecase {
	cfg := config.Config{JWTSecret: "test-secret", FEURL: "http://localhost:3000"}
	return usecase.NewPasswordResetUsecase(cfg, s.UserRepo(), tokens, mailer)
}

func TestPasswordResetUsecase_Request_SavesTokenAndMails(t *testing.T) {
	s := newMemStore()
	u := s.addUser(model.User{Username: "reza", Email: "reza@example.com", Role: model.RoleUser, IsActive: true})
	tokens := newMemTokenStore()
	mailer := &memMailer{}
	uc := newResetUsecase(s, tokens, mailer)

	out, err := uc.Request(context.Background(), "reza@example.com")

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Message)
	assert.NotEmpty(t, tokens.tokens[u.ID])
	if assert.Len(t, mailer.to, 1) {
		assert.Equal(t, "reza@example.com", mailer.to[0])
		assert.Contains(t, mailer.bodies[0], tokens.tokens[u.ID])
		assert.Contains(t, mailer.bodies[0], "http://localhost:3000/reset-password")
	}
}

// 未登録メールでも同じ応答（存在の有無は漏らさない）。メールは送らない。
func TestPasswordResetUsecase_Request_UnknownEmail(t *testing.T) {
	s := newMemStore()
	tokens := newMemTokenStore()
	mailer := &memMailer{}
	uc := newResetUsecase(s, tokens, mailer)

	out, err := uc.Request(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Message)
	assert.Empty(t, tokens.tokens)
	assert.Empty(t, mailer.to)
}

func TestPasswordResetUsecase_Confirm_Success(t *testing.T) {
	s := newMemStore()
	u := s.addUser(model.User{Username: "reza", Email: "reza@example.com", Role: model.RoleUser, IsActive: true})
	tokens := newMemTokenStore()
	tokens.tokens[u.ID] = "good-token"
	uc := newResetUsecase(s, tokens, &memMailer{})

	err := uc.Confirm(context.Background(), usecase.ConfirmResetInput{
		UserID:      u.ID,
		Token:       "good-token",
		NewPassword: "newpassword1",
	})

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(s.users[u.ID].PasswordHash), []byte("newpassword1")))

	// トークンは使い捨て
	_, gerr := tokens.Get(context.Background(), u.ID)
	assert.Equal(t, repo.ErrNotFound, gerr)
}

func TestPasswordResetUsecase_Confirm_WrongToken(t *testing.T) {
	s := newMemStore()
	u := s.addUser(model.User{Username: "reza", Email: "reza@example.com", Role: model.RoleUser, IsActive: true})
	tokens := newMemTokenStore()
	tokens.tokens[u.ID] = "good-token"
	uc := newResetUsecase(s, tokens, &memMailer{})

	err := uc.Confirm(context.Background(), usecase.ConfirmResetInput{
		UserID:      u.ID,
		Token:       "bad-token",
		NewPassword: "newpassword1",
	})

	assertHTTPError(t, err, http.StatusBadRequest, "invalid or expired token")
}

func TestPasswordResetUsecase_Confirm_ExpiredToken(t *testing.T) {
	s := newMemStore()
	u := s.addUser(model.User{Username: "reza", Email: "reza@example.com", Role: model.RoleUser, IsActive: true})
	uc := newResetUsecase(s, newMemTokenStore(), &memMailer{})

	err := uc.Confirm(context.Background(), usecase.ConfirmResetInput{
		UserID:      u.ID,
		Token:       "anything",
		NewPassword: "newpassword1",
	})

	assertHTTPError(t, err, http.StatusBadRequest, "invalid or expired token")
}
