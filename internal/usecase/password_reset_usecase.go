package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/infra/mail"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// リセットトークンの有効期限
const resetTokenTTL = 600 * time.Second

type PasswordResetUsecase struct {
	cfg    config.Config
	users  repo.UserRepository
	tokens repo.ResetTokenStore
	mailer mail.Mailer
}

// DI
func NewPasswordResetUsecase(
	cfg config.Config,
	users repo.UserRepository,
	tokens repo.ResetTokenStore,
	mailer mail.Mailer,
) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		cfg:    cfg,
		users:  users,
		tokens: tokens,
		mailer: mailer,
	}
}

type RequestResetOutput struct {
	Message string `json:"message"`
}

// Request はリセットメールを送る。
// 未登録のemailでも同じ応答を返す（存在の有無を漏らさない）。
func (u *PasswordResetUsecase) Request(ctx context.Context, email string) (RequestResetOutput, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return RequestResetOutput{}, NewHTTPError(http.StatusBadRequest, "email required")
	}

	out := RequestResetOutput{Message: "if the email exists, a reset link has been sent"}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return out, nil
	}
	if err != nil {
		return RequestResetOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token := uuid.NewString()
	if err := u.tokens.Save(ctx, user.ID, token, resetTokenTTL); err != nil {
		return RequestResetOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	link := fmt.Sprintf("%s/reset-password?uid=%d&token=%s", u.cfg.FEURL, user.ID, token)
	body := fmt.Sprintf("パスワード再設定はこちら（10分で失効します）: %s", link)

	if err := u.mailer.Send(ctx, user.Email, "パスワード再設定", body); err != nil {
		return RequestResetOutput{}, NewHTTPError(http.StatusInternalServerError, "mail error")
	}

	return out, nil
}

type ConfirmResetInput struct {
	UserID      int64
	Token       string
	NewPassword string
}

// Confirm はトークンを検証してパスワードを更新する。トークンは使い捨て。
func (u *PasswordResetUsecase) Confirm(ctx context.Context, in ConfirmResetInput) error {
	if in.UserID <= 0 || strings.TrimSpace(in.Token) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid token")
	}
	if len(in.NewPassword) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password too short")
	}

	saved, err := u.tokens.Get(ctx, in.UserID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusBadRequest, "invalid or expired token")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if saved != in.Token {
		return NewHTTPError(http.StatusBadRequest, "invalid or expired token")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := u.users.UpdatePassword(ctx, in.UserID, string(pwHash)); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "invalid or expired token")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//使い終わったトークンは消す
	_ = u.tokens.Delete(ctx, in.UserID)

	return nil
}
