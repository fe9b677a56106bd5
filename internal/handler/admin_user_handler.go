package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/usersのHTTP
type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

// DI
func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type AdminCreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (r AdminCreateUserRequest) toInput() usecase.AdminCreateUserInput {
	return usecase.AdminCreateUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		IsActive: r.IsActive,
	}
}

type AdminUpdateUserRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type BulkCreateUsersRequest struct {
	Users []AdminCreateUserRequest `json:"users"`
}

type BulkUpdateUserRequest struct {
	ID       int64   `json:"id"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type BulkUpdateUsersRequest struct {
	Users []BulkUpdateUserRequest `json:"users"`
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/users")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)

	g.POST("/bulk", h.bulkCreate)
	g.POST("/bulk/update", h.bulkUpdate)
	g.POST("/bulk/active", h.bulkSetActive)
	g.POST("/bulk/delete", h.bulkDelete)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	out, err := h.uc.ListUsers(c.Request().Context(), usecase.AdminListUsersInput{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
		Role:  c.QueryParam("role"),
		Sort:  c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) detail(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) create(c echo.Context) error {
	var req AdminCreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateUser(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminUserHandler) update(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateUser(c.Request().Context(), userID, usecase.AdminUpdateUserInput{
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) bulkCreate(c echo.Context) error {
	var req BulkCreateUsersRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ins := make([]usecase.AdminCreateUserInput, 0, len(req.Users))
	for _, r := range req.Users {
		ins = append(ins, r.toInput())
	}

	out, err := h.uc.BulkCreateUsers(c.Request().Context(), ins)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminUserHandler) bulkUpdate(c echo.Context) error {
	var req BulkUpdateUsersRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ins := make([]usecase.AdminBulkUpdateUserInput, 0, len(req.Users))
	for _, u := range req.Users {
		ins = append(ins, usecase.AdminBulkUpdateUserInput{
			ID:       u.ID,
			Email:    u.Email,
			Role:     u.Role,
			IsActive: u.IsActive,
		})
	}

	out, err := h.uc.BulkUpdateUsers(c.Request().Context(), ins)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminUserHandler) bulkSetActive(c echo.Context) error {
	var req BulkSetActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkSetActive(c.Request().Context(), req.IDs, req.IsActive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminUserHandler) bulkDelete(c echo.Context) error {
	var req BulkIDsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkDelete(c.Request().Context(), req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}
