package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/paymentsのHTTP
type AdminPaymentHandler struct {
	uc *usecase.AdminPaymentUsecase
}

// DI
func NewAdminPaymentHandler(uc *usecase.AdminPaymentUsecase) *AdminPaymentHandler {
	return &AdminPaymentHandler{uc: uc}
}

type AdminUpdatePaymentRequest struct {
	Status        string `json:"status"`
	PaymentType   string `json:"payment_type"`
	TransactionID string `json:"transaction_id"`
}

type BulkSetPaymentStatusRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

func (h *AdminPaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/payments")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)

	g.POST("/bulk/status", h.bulkSetStatus)
	g.POST("/bulk/delete", h.bulkDelete)
}

func (h *AdminPaymentHandler) list(c echo.Context) error {
	page, limit, err := parsePaging(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	out, err := h.uc.ListPayments(c.Request().Context(), usecase.AdminListPaymentsInput{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("payment_type"),
		Q:      c.QueryParam("q"),
		Sort:   c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminPaymentHandler) detail(c echo.Context) error {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetPayment(c.Request().Context(), paymentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminPaymentHandler) update(c echo.Context) error {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AdminUpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdatePayment(c.Request().Context(), paymentID, usecase.AdminUpdatePaymentInput{
		Status:        req.Status,
		PaymentType:   req.PaymentType,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminPaymentHandler) bulkSetStatus(c echo.Context) error {
	var req BulkSetPaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.BulkSetStatus(c.Request().Context(), req.IDs, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusMultiStatus, out)
}

func (h *AdminPaymentHandler) bulkDelete(c echo.Context) error {
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
