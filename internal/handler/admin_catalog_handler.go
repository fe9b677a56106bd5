package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// マスタ管理（カテゴリ・車種・バナー・お問い合わせ）のHTTP
type AdminCatalogHandler struct {
	uc *usecase.AdminCatalogUsecase
}

// DI
func NewAdminCatalogHandler(uc *usecase.AdminCatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{uc: uc}
}

type CategoryRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

type CarRequest struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

type BannerRequest struct {
	ImagePath string `json:"image_path"`
	Position  int    `json:"position"`
}

func (h *AdminCatalogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/categories", h.createCategory)
	g.PUT("/categories/:id", h.updateCategory)
	g.DELETE("/categories/:id", h.deleteCategory)
	g.POST("/categories/bulk/delete", h.bulkDeleteCategories)

	g.POST("/cars", h.createCar)
	g.PUT("/cars/:id", h.updateCar)
	g.DELETE("/cars/:id", h.deleteCar)
	g.POST("/cars/bulk/delete", h.bulkDeleteCars)

	g.POST("/banners", h.createBanner)
	g.PUT("/banners/:id", h.updateBanner)
	g.DELETE("/banners/:id", h.deleteBanner)
	g.POST("/banners/bulk/delete", h.bulkDeleteBanners)

	g.GET("/contacts", h.listContacts)
	g.GET("/contacts/:id", h.getContact)
	g.DELETE("/contacts/:id", h.deleteContact)
	g.POST("/contacts/bulk/delete", h.bulkDeleteContacts)
}

func (h *AdminCatalogHandler) createCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), usecase.CategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateCategory(c.Request().Context(), id, usecase.CategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminCatalogHandler) bulkDeleteCategories(c echo.Context) error {
	var req BulkIDsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkDeleteCategories(c.Request().Context(), req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminCatalogHandler) createCar(c echo.Context) error {
	var req CarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateCar(c.Request().Context(), usecase.CarInput{
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) updateCar(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateCar(c.Request().Context(), id, usecase.CarInput{
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteCar(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteCar(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminCatalogHandler) bulkDeleteCars(c echo.Context) error {
	var req BulkIDsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkDeleteCars(c.Request().Context(), req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminCatalogHandler) createBanner(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateBanner(c.Request().Context(), userID, usecase.BannerInput{
		ImagePath: req.ImagePath,
		Position:  req.Position,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminCatalogHandler) updateBanner(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateBanner(c.Request().Context(), id, usecase.BannerInput{
		ImagePath: req.ImagePath,
		Position:  req.Position,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteBanner(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteBanner(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminCatalogHandler) bulkDeleteBanners(c echo.Context) error {
	var req BulkIDsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkDeleteBanners(c.Request().Context(), req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminCatalogHandler) listContacts(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	out, err := h.uc.ListContacts(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) getContact(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetContact(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminCatalogHandler) deleteContact(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteContact(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminCatalogHandler) bulkDeleteContacts(c echo.Context) error {
	var req BulkIDsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkDeleteContacts(c.Request().Context(), req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}
