package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 公開カタログ（カテゴリ・車種・バナー・お問い合わせ）のHTTP
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

type ContactRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.listCategories)
	e.GET("/cars", h.listCars)
	e.GET("/banners", h.listBanners)
	e.POST("/contact", h.submitContact)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listCars(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	in := usecase.ListCarsInput{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
	}
	if v := c.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid year"})
		}
		in.Year = &y
	}

	out, err := h.uc.ListCars(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listBanners(c echo.Context) error {
	out, err := h.uc.ListBanners(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) submitContact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SubmitContact(c.Request().Context(), usecase.ContactInput{
		FullName: req.FullName,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
