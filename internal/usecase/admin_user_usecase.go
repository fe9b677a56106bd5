package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 管理者向けのユーザーCRUD。
type AdminUserUsecase struct {
	users repo.UserRepository
}

// DI
func NewAdminUserUsecase(users repo.UserRepository) *AdminUserUsecase {
	return &AdminUserUsecase{users: users}
}

type AdminListUsersInput struct {
	Page  int
	Limit int
	Q     string
	Role  string
	Sort  string
}

type UserListOutput struct {
	Items []UserOutput `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *AdminUserUsecase) ListUsers(ctx context.Context, in AdminListUsersInput) (UserListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 20
	}
	if in.Page < 1 || in.Limit < 1 || in.Limit > 100 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page or limit")
	}
	if in.Role != "" && in.Role != string(model.RoleUser) && in.Role != string(model.RoleAdmin) {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	users, total, err := u.users.List(ctx, repo.UserListFilter{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     strings.TrimSpace(in.Q),
		Role:  in.Role,
		Sort:  strings.TrimSpace(in.Sort),
	})
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := UserListOutput{
		Items: make([]UserOutput, 0, len(users)),
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}
	for _, x := range users {
		out.Items = append(out.Items, toUserOutput(x))
	}
	return out, nil
}

func (u *AdminUserUsecase) GetUser(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(user), nil
}

type AdminCreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	IsActive bool
}

func (in AdminCreateUserInput) validate() error {
	if strings.TrimSpace(in.Username) == "" || len(in.Username) > 200 {
		return NewHTTPError(http.StatusBadRequest, "invalid username")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password too short")
	}
	if in.Role != string(model.RoleUser) && in.Role != string(model.RoleAdmin) {
		return NewHTTPError(http.StatusBadRequest, "invalid role")
	}
	return nil
}

func (u *AdminUserUsecase) CreateUser(ctx context.Context, in AdminCreateUserInput) (UserOutput, error) {
	if err := in.validate(); err != nil {
		return UserOutput{}, err
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	created, err := u.users.Create(ctx, model.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(pwHash),
		Role:         model.Role(in.Role),
		IsActive:     in.IsActive,
	})
	if err == repo.ErrConflict {
		return UserOutput{}, NewHTTPError(http.StatusConflict, "username already taken")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(created), nil
}

type AdminUpdateUserInput struct {
	Email    string
	Role     string
	IsActive bool
}

func (u *AdminUserUsecase) UpdateUser(ctx context.Context, userID int64, in AdminUpdateUserInput) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if in.Role != string(model.RoleUser) && in.Role != string(model.RoleAdmin) {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.Email = strings.TrimSpace(in.Email)
	user.Role = model.Role(in.Role)
	user.IsActive = in.IsActive

	if err := u.users.Update(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserOutput(user), nil
}

type BulkCreateUsersOutput struct {
	Results []BulkCreateUserResult `json:"results"`

	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// 作成はIDがまだ無いのでusernameで結果を返す。
type BulkCreateUserResult struct {
	Username string `json:"username"`
	ID       int64  `json:"id,omitempty"`
	Outcome  string `json:"outcome"`
	Error    string `json:"error,omitempty"`
}

// BulkCreateUsers は一括作成。重複usernameなどはその行だけ失敗にする。
func (u *AdminUserUsecase) BulkCreateUsers(ctx context.Context, ins []AdminCreateUserInput) (BulkCreateUsersOutput, error) {
	if len(ins) == 0 {
		return BulkCreateUsersOutput{}, NewHTTPError(http.StatusBadRequest, "users required")
	}

	out := BulkCreateUsersOutput{Results: make([]BulkCreateUserResult, 0, len(ins))}
	for _, in := range ins {
		row := BulkCreateUserResult{Username: strings.TrimSpace(in.Username)}

		created, err := u.CreateUser(ctx, in)
		if err != nil {
			row.Outcome = "failed"
			if he, ok := AsHTTPError(err); ok {
				row.Error = he.Message
			} else {
				row.Error = "db error"
			}
			out.Failed++
		} else {
			row.ID = created.ID
			row.Outcome = "ok"
			out.Succeeded++
		}
		out.Results = append(out.Results, row)
	}
	return out, nil
}

type AdminBulkUpdateUserInput struct {
	ID int64

	//nilのフィールドは変更しない
	Email    *string
	Role     *string
	IsActive *bool
}

// BulkUpdateUsers は一括編集。指定されたフィールドだけ上書きし、不正な行はその行だけ失敗にする。
func (u *AdminUserUsecase) BulkUpdateUsers(ctx context.Context, ins []AdminBulkUpdateUserInput) (BulkResultOutput, error) {
	if len(ins) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "users required")
	}

	results := make([]BulkItemResult, 0, len(ins))
	for _, in := range ins {
		if err := u.applyUserUpdate(ctx, in); err != nil {
			if he, ok := AsHTTPError(err); ok {
				results = append(results, bulkFailed(in.ID, he.Message))
			} else {
				results = append(results, bulkFailed(in.ID, "db error"))
			}
			continue
		}
		results = append(results, bulkOK(in.ID))
	}
	return buildBulkOutput(results), nil
}

func (u *AdminUserUsecase) applyUserUpdate(ctx context.Context, in AdminBulkUpdateUserInput) error {
	if in.ID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Email != nil {
		if _, err := mail.ParseAddress(strings.TrimSpace(*in.Email)); err != nil {
			return NewHTTPError(http.StatusBadRequest, "invalid email")
		}
	}
	if in.Role != nil && *in.Role != string(model.RoleUser) && *in.Role != string(model.RoleAdmin) {
		return NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	user, err := u.users.FindByID(ctx, in.ID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.Role != nil {
		user.Role = model.Role(*in.Role)
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// BulkSetActive は有効/停止の一括切り替え。
func (u *AdminUserUsecase) BulkSetActive(ctx context.Context, ids []int64, isActive bool) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}

	results := make([]BulkItemResult, 0, len(ids))
	for _, id := range ids {
		n, err := u.users.SetActiveByIDs(ctx, []int64{id}, isActive)
		if err != nil {
			results = append(results, bulkFailed(id, "db error"))
			continue
		}
		if n == 0 {
			results = append(results, bulkFailed(id, "not found"))
			continue
		}
		results = append(results, bulkOK(id))
	}
	return buildBulkOutput(results), nil
}

// BulkDelete はユーザーの一括削除。
func (u *AdminUserUsecase) BulkDelete(ctx context.Context, ids []int64) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}

	results := make([]BulkItemResult, 0, len(ids))
	for _, id := range ids {
		n, err := u.users.DeleteByIDs(ctx, []int64{id})
		if err != nil {
			results = append(results, bulkFailed(id, "db error"))
			continue
		}
		if n == 0 {
			results = append(results, bulkFailed(id, "not found"))
			continue
		}
		results = append(results, bulkOK(id))
	}
	return buildBulkOutput(results), nil
}
