package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 購入者向けの注文照会。
type OrderUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   repo.PaymentRepository
	products   repo.ProductRepository
}

// DI
func NewOrderUsecase(
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	payments repo.PaymentRepository,
	products repo.ProductRepository,
) *OrderUsecase {
	return &OrderUsecase{
		orders:     orders,
		orderItems: orderItems,
		payments:   payments,
		products:   products,
	}
}

type OrderItemOutput struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"product_id"`
	Name            string `json:"name"`
	Quantity        int64  `json:"quantity"`
	PriceAtPurchase int64  `json:"price_at_time_of_purchase"`
	LineTotal       int64  `json:"line_total"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	Status          string            `json:"status"`
	ShippingAddress string            `json:"shipping_address"`
	PaymentType     string            `json:"payment_type"`
	TotalAmount     int64             `json:"total_amount"`
	OrderDate       time.Time         `json:"order_date"`
	Items           []OrderItemOutput `json:"items,omitempty"`
	Payment         *PaymentOutput    `json:"payment,omitempty"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 20
	}
	if page < 1 || limit < 1 || limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page or limit")
	}

	orders, total, err := u.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := OrderListOutput{
		Items: make([]OrderOutput, 0, len(orders)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, o := range orders {
		out.Items = append(out.Items, toOrderHeaderOutput(o))
	}
	return out, nil
}

// GetMyOrder は注文詳細（明細・支払いつき）。他人の注文は404。
func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		//他人の注文は「存在しない扱い」
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return u.buildOrderDetail(ctx, o)
}

func (u *OrderUsecase) buildOrderDetail(ctx context.Context, o model.Order) (OrderOutput, error) {
	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toOrderHeaderOutput(o)
	out.Items = make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		row := OrderItemOutput{
			ID:              it.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
			LineTotal:       it.PriceAtPurchase * it.Quantity,
		}
		//商品名は現在のマスタから引く（消えていたら空のまま）
		if p, err := u.products.FindByID(ctx, it.ProductID); err == nil {
			row.Name = p.Name
		}
		out.Items = append(out.Items, row)
	}

	payment, err := u.payments.FindByOrderID(ctx, o.ID)
	if err == nil {
		out.Payment = &PaymentOutput{
			ID:            payment.ID,
			OrderID:       payment.OrderID,
			PaymentType:   string(payment.PaymentType),
			Status:        string(payment.Status),
			TransactionID: payment.TransactionID,
			Amount:        payment.Amount,
		}
	} else if err != repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return out, nil
}

func toOrderHeaderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		PaymentType:     string(o.PaymentType),
		TotalAmount:     o.TotalAmount,
		OrderDate:       o.OrderDate,
	}
}
