package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /productsの公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
}

// クエリから商品一覧の検索条件を組み立てる（公開・管理共用）。
func bindListProductsInput(c echo.Context) (usecase.ListProductsInput, error) {
	page, limit, err := parsePaging(c)
	if err != nil {
		return usecase.ListProductsInput{}, echo.NewHTTPError(http.StatusBadRequest)
	}

	in := usecase.ListProductsInput{
		Page:     page,
		Limit:    limit,
		Q:        c.QueryParam("q"),
		Name:     c.QueryParam("name"),
		Brand:    c.QueryParam("brand"),
		PartCode: c.QueryParam("part_code"),
		CarMake:  c.QueryParam("car_make"),
		CarModel: c.QueryParam("car_model"),
		Sort:     c.QueryParam("sort"),
	}

	if v := c.QueryParam("min_price"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return usecase.ListProductsInput{}, echo.NewHTTPError(http.StatusBadRequest)
		}
		in.MinPrice = &x
	}
	if v := c.QueryParam("max_price"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return usecase.ListProductsInput{}, echo.NewHTTPError(http.StatusBadRequest)
		}
		in.MaxPrice = &x
	}
	if v := c.QueryParam("in_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return usecase.ListProductsInput{}, echo.NewHTTPError(http.StatusBadRequest)
		}
		in.InStock = &b
	}
	if v := c.QueryParam("category_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return usecase.ListProductsInput{}, echo.NewHTTPError(http.StatusBadRequest)
		}
		in.CategoryID = &x
	}
	if v := c.QueryParam("car_year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return usecase.ListProductsInput{}, echo.NewHTTPError(http.StatusBadRequest)
		}
		in.CarYear = &y
	}

	return in, nil
}

func (h *ProductHandler) list(c echo.Context) error {
	in, err := bindListProductsInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	out, err := h.uc.ListPublicProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetPublicProduct(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
