package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"app/internal/domain/model"
	"app/internal/usecase"
)

func TestAdminUserUsecase_CreateUser_DuplicateUsername(t *testing.T) {
	s := newMemStore()
	s.addUser(model.User{Username: "mehdi", Email: "mehdi@example.com", Role: model.RoleUser, IsActive: true})
	uc := usecase.NewAdminUserUsecase(s.UserRepo())

	_, err := uc.CreateUser(context.Background(), usecase.AdminCreateUserInput{
		Username: "mehdi",
		Email:    "other@example.com",
		Password: "password123",
		Role:     "USER",
		IsActive: true,
	})

	assertHTTPError(t, err, http.StatusConflict, "username already taken")
}

func TestAdminUserUsecase_CreateUser_InvalidRole(t *testing.T) {
	uc := usecase.NewAdminUserUsecase(newMemStore().UserRepo())

	_, err := uc.CreateUser(context.Background(), usecase.AdminCreateUserInput{
		Username: "sara",
		Email:    "sara@example.com",
		Password: "password123",
		Role:     "OWNER",
		IsActive: true,
	})

	assertHTTPError(t, err, http.StatusBadRequest, "invalid role")
}

// 重複行だけ落ちて残りは作成される
func TestAdminUserUsecase_BulkCreateUsers_PartialSuccess(t *testing.T) {
	s := newMemStore()
	s.addUser(model.User{Username: "taken", Email: "taken@example.com", Role: model.RoleUser, IsActive: true})
	uc := usecase.NewAdminUserUsecase(s.UserRepo())

	out, err := uc.BulkCreateUsers(context.Background(), []usecase.AdminCreateUserInput{
		{Username: "fresh", Email: "fresh@example.com", Password: "password123", Role: "USER", IsActive: true},
		{Username: "taken", Email: "dup@example.com", Password: "password123", Role: "USER", IsActive: true},
		{Username: "bad-mail", Email: "not-an-email", Password: "password123", Role: "USER", IsActive: true},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, 2, out.Failed)
	if assert.Len(t, out.Results, 3) {
		assert.Equal(t, "ok", out.Results[0].Outcome)
		assert.NotZero(t, out.Results[0].ID)
		assert.Equal(t, "failed", out.Results[1].Outcome)
		assert.Contains(t, out.Results[1].Error, "username already taken")
		assert.Equal(t, "failed", out.Results[2].Outcome)
		assert.Contains(t, out.Results[2].Error, "invalid email")
	}
}

func TestAdminUserUsecase_BulkCreateUsers_Empty(t *testing.T) {
	uc := usecase.NewAdminUserUsecase(newMemStore().UserRepo())

	_, err := uc.BulkCreateUsers(context.Background(), nil)

	assertHTTPError(t, err, http.StatusBadRequest, "users required")
}

func TestAdminUserUsecase_BulkSetActive_MissingIDFailed(t *testing.T) {
	s := newMemStore()
	u1 := s.addUser(model.User{Username: "a", Email: "a@example.com", Role: model.RoleUser, IsActive: true})
	uc := usecase.NewAdminUserUsecase(s.UserRepo())

	out, err := uc.BulkSetActive(context.Background(), []int64{u1.ID, 999}, false)

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, 1, out.Failed)
	assert.False(t, s.users[u1.ID].IsActive)
}

func TestAdminUserUsecase_BulkDelete_DeduplicatesIDs(t *testing.T) {
	s := newMemStore()
	u1 := s.addUser(model.User{Username: "a", Email: "a@example.com", Role: model.RoleUser, IsActive: true})
	uc := usecase.NewAdminUserUsecase(s.UserRepo())

	out, err := uc.BulkDelete(context.Background(), []int64{u1.ID, u1.ID, -5})

	assert.NoError(t, err)
	// 重複と非正のIDは正規化で落ちる
	assert.Len(t, out.Results, 1)
	assert.Equal(t, 1, out.Succeeded)
	assert.Empty(t, s.users)
}

// nilのフィールドは元の値のまま残る
func TestAdminUserUsecase_BulkUpdateUsers_PartialFields(t *testing.T) {
	s := newMemStore()
	u1 := s.addUser(model.User{Username: "mehdi", Email: "mehdi@example.com", Role: model.RoleUser, IsActive: true})
	uc := usecase.NewAdminUserUsecase(s.UserRepo())

	role := "ADMIN"
	out, err := uc.BulkUpdateUsers(context.Background(), []usecase.AdminBulkUpdateUserInput{
		{ID: u1.ID, Role: &role},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, model.RoleAdmin, s.users[u1.ID].Role)
	assert.Equal(t, "mehdi@example.com", s.users[u1.ID].Email)
	assert.True(t, s.users[u1.ID].IsActive)
}

func TestAdminUserUsecase_BulkUpdateUsers_PartialSuccess(t *testing.T) {
	s := newMemStore()
	u1 := s.addUser(model.User{Username: "mehdi", Email: "mehdi@example.com", Role: model.RoleUser, IsActive: true})
	uc := usecase.NewAdminUserUsecase(s.UserRepo())

	good := "new@example.com"
	bad := "not-an-email"
	out, err := uc.BulkUpdateUsers(context.Background(), []usecase.AdminBulkUpdateUserInput{
		{ID: u1.ID, Email: &good},
		{ID: u1.ID, Email: &bad},
		{ID: 9999, Email: &good},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, 2, out.Failed)
	assert.Equal(t, "new@example.com", s.users[u1.ID].Email)
	assert.Contains(t, out.Results[1].Error, "invalid email")
	assert.Contains(t, out.Results[2].Error, "not found")
}

func TestAdminUserUsecase_BulkUpdateUsers_EmptyInput(t *testing.T) {
	uc := usecase.NewAdminUserUsecase(newMemStore().UserRepo())

	_, err := uc.BulkUpdateUsers(context.Background(), nil)

	assertHTTPError(t, err, http.StatusBadRequest, "users required")
}
