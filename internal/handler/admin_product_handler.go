package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/productsのHTTP
type AdminProductHandler struct {
	uc *usecase.AdminProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.AdminProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type AdminProductRequest struct {
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	PartCode        string `json:"part_code"`
	Brand           string `json:"brand"`
	CountryOfOrigin string `json:"country_of_origin"`
	Warranty        string `json:"warranty"`
	Price           int64  `json:"price"`
	StockQuantity   int64  `json:"stock_quantity"`
	PackageQuantity int64  `json:"package_quantity"`

	AllowIndividualSale bool `json:"allow_individual_sale"`

	CategoryID int64   `json:"category_id"`
	CarIDs     []int64 `json:"car_ids"`
	IsActive   bool    `json:"is_active"`
}

func (r AdminProductRequest) toInput() usecase.AdminProductInput {
	return usecase.AdminProductInput{
		Name:                r.Name,
		Slug:                r.Slug,
		Description:         r.Description,
		PartCode:            r.PartCode,
		Brand:               r.Brand,
		CountryOfOrigin:     r.CountryOfOrigin,
		Warranty:            r.Warranty,
		Price:               r.Price,
		StockQuantity:       r.StockQuantity,
		PackageQuantity:     r.PackageQuantity,
		AllowIndividualSale: r.AllowIndividualSale,
		CategoryID:          r.CategoryID,
		CarIDs:              r.CarIDs,
		IsActive:            r.IsActive,
	}
}

type UpdateStockRequest struct {
	StockQuantity int64 `json:"stock_quantity"`
}

type BulkSetActiveRequest struct {
	IDs      []int64 `json:"ids"`
	IsActive bool    `json:"is_active"`
}

type AddImageRequest struct {
	Path   string `json:"path"`
	IsMain bool   `json:"is_main"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PATCH("/:id/stock", h.updateStock)
	g.POST("/:id/images", h.addImage)
	g.DELETE("/:id/images/:imageID", h.deleteImage)

	g.POST("/bulk/active", h.bulkSetActive)
	g.POST("/bulk/delete", h.bulkDelete)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	in, err := bindListProductsInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	out, err := h.uc.ListProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) detail(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), productID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), productID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminProductHandler) updateStock(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStock(c.Request().Context(), productID, req.StockQuantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "stock updated"})
}

func (h *AdminProductHandler) addImage(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AddImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddImage(c.Request().Context(), productID, usecase.AddProductImageInput{
		Path:   req.Path,
		IsMain: req.IsMain,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) deleteImage(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	imageID, err := parseIDParam(c, "imageID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteImage(c.Request().Context(), productID, imageID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminProductHandler) bulkSetActive(c echo.Context) error {
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

func (h *AdminProductHandler) bulkDelete(c echo.Context) error {
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
