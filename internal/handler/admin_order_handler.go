package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/ordersのHTTP
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type AdminOrderItemRequest struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type AdminCreateOrderRequest struct {
	UserID          int64                   `json:"user_id"`
	Status          string                  `json:"status"`
	ShippingAddress string                  `json:"shipping_address"`
	PaymentType     string                  `json:"payment_type"`
	Items           []AdminOrderItemRequest `json:"items"`
}

type AdminUpdateOrderRequest struct {
	Status          string `json:"status"`
	ShippingAddress string `json:"shipping_address"`
	PaymentType     string `json:"payment_type"`

	//省略なら明細は変更しない
	Items *[]AdminOrderItemRequest `json:"items,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type BulkUpdateOrderStatusRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

type UpdateOrderItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.PATCH("/:id/status", h.updateStatus)
	g.PATCH("/:id/items/:itemID", h.updateItem)
	g.POST("/:id/items/bulk/delete", h.bulkDeleteItems)

	g.POST("/bulk/status", h.bulkUpdateStatus)
	g.POST("/bulk/delete", h.bulkDelete)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	in := usecase.AdminListOrdersInput{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		Q:      c.QueryParam("q"),
		Sort:   c.QueryParam("sort"),
	}
	if v := c.QueryParam("user_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		}
		in.UserID = &x
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		in.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		in.To = &t
	}

	out, err := h.uc.ListOrders(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) create(c echo.Context) error {
	var req AdminCreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), usecase.AdminCreateOrderInput{
		UserID:          req.UserID,
		Status:          req.Status,
		ShippingAddress: req.ShippingAddress,
		PaymentType:     req.PaymentType,
		Items:           toOrderItemInputs(req.Items),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminOrderHandler) update(c echo.Context) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminUpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.AdminUpdateOrderInput{
		Status:          req.Status,
		ShippingAddress: req.ShippingAddress,
		PaymentType:     req.PaymentType,
	}
	if req.Items != nil {
		items := toOrderItemInputs(*req.Items)
		in.Items = &items
	}

	out, err := h.uc.UpdateOrder(c.Request().Context(), orderID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func toOrderItemInputs(rows []AdminOrderItemRequest) []usecase.AdminOrderItemInput {
	out := make([]usecase.AdminOrderItemInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, usecase.AdminOrderItemInput{ID: r.ID, ProductID: r.ProductID, Quantity: r.Quantity})
	}
	return out
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateItem(c echo.Context) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	itemID, err := parseIDParam(c, "itemID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateOrderItem(c.Request().Context(), orderID, itemID, usecase.AdminUpdateOrderItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) bulkDeleteItems(c echo.Context) error {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req BulkIDsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkDeleteItems(c.Request().Context(), orderID, req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminOrderHandler) bulkUpdateStatus(c echo.Context) error {
	var req BulkUpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkUpdateStatus(c.Request().Context(), req.IDs, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminOrderHandler) bulkDelete(c echo.Context) error {
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
