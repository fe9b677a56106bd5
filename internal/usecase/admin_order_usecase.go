package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// 管理者向けの注文CRUD。
// ステータスを変える操作は、同じトランザクションで支払いステータスも揃える。
type AdminOrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	items    repo.OrderItemRepository
	payments repo.PaymentRepository
	products repo.ProductRepository
}

// DI
func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	payments repo.PaymentRepository,
	products repo.ProductRepository,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:       tx,
		orders:   orders,
		items:    items,
		payments: payments,
		products: products,
	}
}

type AdminListOrdersInput struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	Q      string
	From   *time.Time
	To     *time.Time
	Sort   string
}

func (u *AdminOrderUsecase) ListOrders(ctx context.Context, in AdminListOrdersInput) (OrderListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 20
	}
	if in.Page < 1 || in.Limit < 1 || in.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page or limit")
	}
	if in.Status != "" && !model.ValidOrderStatus(in.Status) {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orders.ListAdmin(ctx, repo.AdminOrderListFilter{
		Page:   in.Page,
		Limit:  in.Limit,
		Status: in.Status,
		UserID: in.UserID,
		Q:      strings.TrimSpace(in.Q),
		From:   in.From,
		To:     in.To,
		Sort:   strings.TrimSpace(in.Sort),
	})
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := OrderListOutput{
		Items: make([]OrderOutput, 0, len(orders)),
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}
	for _, o := range orders {
		out.Items = append(out.Items, toOrderHeaderOutput(o))
	}
	return out, nil
}

func (u *AdminOrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
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

	items, err := u.items.ListByOrderID(ctx, orderID)
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
		if p, err := u.products.FindByID(ctx, it.ProductID); err == nil {
			row.Name = p.Name
		}
		out.Items = append(out.Items, row)
	}

	payment, err := u.payments.FindByOrderID(ctx, orderID)
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

type AdminOrderItemInput struct {
	//ID=0なら新規行。既存行はIDで特定する。
	ID        int64
	ProductID int64
	Quantity  int64
}

type AdminCreateOrderInput struct {
	UserID          int64
	Status          string
	ShippingAddress string
	PaymentType     string
	Items           []AdminOrderItemInput
}

// CreateOrder は管理者による注文の手動作成（電話注文など）。
// 価格は現在の商品価格で固定する。在庫はチェックアウト経路でしか動かさない。
func (u *AdminOrderUsecase) CreateOrder(ctx context.Context, in AdminCreateOrderInput) (OrderOutput, error) {
	if in.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	if in.Status == "" {
		in.Status = string(model.OrderStatusPending)
	}
	if !model.ValidOrderStatus(in.Status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if !model.ValidPaymentType(in.PaymentType) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_type")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping_address required")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}

	var orderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, in.UserID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "user not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var total int64 = 0
		for _, row := range in.Items {
			if row.Quantity < 1 {
				return NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}
			p, err := r.Products().FindByID(ctx, row.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			orderItems = append(orderItems, model.OrderItem{
				ProductID:       p.ID,
				Quantity:        row.Quantity,
				PriceAtPurchase: p.Price,
			})
			total += p.Price * row.Quantity
		}

		id, err := r.Orders().Create(ctx, model.Order{
			UserID:          in.UserID,
			Status:          model.OrderStatus(in.Status),
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			PaymentType:     model.PaymentType(in.PaymentType),
			TotalAmount:     total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		orderID = id

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//支払いステータスは注文ステータスから導出する
		if _, err := r.Payments().Create(ctx, model.Payment{
			OrderID:       orderID,
			PaymentType:   model.PaymentType(in.PaymentType),
			Status:        model.DerivePaymentStatus(model.OrderStatus(in.Status)),
			TransactionID: uuid.NewString(),
			Amount:        total,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return u.GetOrder(ctx, orderID)
}

type AdminUpdateOrderInput struct {
	Status          string
	ShippingAddress string
	PaymentType     string

	//nilなら明細は触らない
	Items *[]AdminOrderItemInput
}

// UpdateOrder は注文の編集。ステータスが変わるなら支払いも同Txで追従させる。
func (u *AdminOrderUsecase) UpdateOrder(ctx context.Context, orderID int64, in AdminUpdateOrderInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.ValidOrderStatus(in.Status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if !model.ValidPaymentType(in.PaymentType) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_type")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping_address required")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		statusChanged := o.Status != model.OrderStatus(in.Status)

		o.Status = model.OrderStatus(in.Status)
		o.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
		o.PaymentType = model.PaymentType(in.PaymentType)

		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if statusChanged {
			derived := model.DerivePaymentStatus(o.Status)
			if err := r.Payments().SyncStatusByOrderID(ctx, orderID, derived); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if in.Items != nil {
			if err := u.reconcileItemsInTx(ctx, r, o, *in.Items); err != nil {
				return err
			}
			if err := recomputeOrderTotalInTx(ctx, r, orderID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return u.GetOrder(ctx, orderID)
}

// reconcileItemsInTx は明細リストを宣言的に揃える。
// ID付きは数量更新、ID=0は新規追加、リストに無い既存行は削除する。
// 出荷前（pending/cancelled）の注文なら、削除した行の在庫を戻す。
func (u *AdminOrderUsecase) reconcileItemsInTx(ctx context.Context, r repo.TxRepos, o model.Order, items []AdminOrderItemInput) error {
	existing, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	byID := make(map[int64]model.OrderItem, len(existing))
	for _, it := range existing {
		byID[it.ID] = it
	}

	seen := make(map[int64]struct{}, len(items))
	for _, row := range items {
		if row.Quantity < 1 {
			return NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}

		if row.ID > 0 {
			it, ok := byID[row.ID]
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "invalid item id")
			}
			seen[row.ID] = struct{}{}
			if it.Quantity == row.Quantity {
				continue
			}
			it.Quantity = row.Quantity
			if err := r.OrderItems().Update(ctx, it); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			continue
		}

		//新規行は現在の商品価格で固定する
		p, err := r.Products().FindByID(ctx, row.ProductID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().CreateBulk(ctx, o.ID, []model.OrderItem{{
			ProductID:       p.ID,
			Quantity:        row.Quantity,
			PriceAtPurchase: p.Price,
		}}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	restock := o.Status == model.OrderStatusPending || o.Status == model.OrderStatusCancelled
	removed := make([]int64, 0, len(existing))
	for _, it := range existing {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		if restock {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil && err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		removed = append(removed, it.ID)
	}
	if len(removed) > 0 {
		if _, err := r.OrderItems().DeleteByIDs(ctx, o.ID, removed); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

// UpdateStatus はステータスだけの変更。支払いステータスも同Txで導出する。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.ValidOrderStatus(status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return u.updateStatusInTx(ctx, r, orderID, model.OrderStatus(status))
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return u.GetOrder(ctx, orderID)
}

func (u *AdminOrderUsecase) updateStatusInTx(ctx context.Context, r repo.TxRepos, orderID int64, status model.OrderStatus) error {
	if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	derived := model.DerivePaymentStatus(status)
	if err := r.Payments().SyncStatusByOrderID(ctx, orderID, derived); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// BulkUpdateStatus は一括ステータス変更。1件ずつ独立したTxで行い、失敗は該当IDだけに留める。
func (u *AdminOrderUsecase) BulkUpdateStatus(ctx context.Context, ids []int64, status string) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}
	if !model.ValidOrderStatus(status) {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	results := make([]BulkItemResult, 0, len(ids))
	for _, id := range ids {
		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			return u.updateStatusInTx(ctx, r, id, model.OrderStatus(status))
		})
		if err != nil {
			if he, ok := AsHTTPError(err); ok {
				results = append(results, bulkFailed(id, he.Message))
			} else {
				results = append(results, bulkFailed(id, "db error"))
			}
			continue
		}
		results = append(results, bulkOK(id))
	}
	return buildBulkOutput(results), nil
}

// BulkDelete は注文の一括削除。
// 出荷前（pending/cancelled）の注文は在庫を戻す。削除と在庫戻しは1トランザクション。
func (u *AdminOrderUsecase) BulkDelete(ctx context.Context, ids []int64) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}

	results := make([]BulkItemResult, 0, len(ids))

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByIDs(ctx, ids)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		found := make(map[int64]model.Order, len(orders))
		for _, o := range orders {
			found[o.ID] = o
		}

		deletable := make([]int64, 0, len(orders))
		for _, id := range ids {
			o, ok := found[id]
			if !ok {
				results = append(results, bulkFailed(id, "not found"))
				continue
			}

			//出荷前の注文だけ在庫を戻す
			if o.Status == model.OrderStatusPending || o.Status == model.OrderStatusCancelled {
				items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				for _, it := range items {
					if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil && err != repo.ErrNotFound {
						return NewHTTPError(http.StatusInternalServerError, "db error")
					}
				}
			}

			deletable = append(deletable, id)
			results = append(results, bulkOK(id))
		}

		if len(deletable) == 0 {
			return nil
		}

		//明細・支払い・注文本体の順で消す
		if err := r.OrderItems().DeleteByOrderIDs(ctx, deletable); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Payments().DeleteByOrderIDs(ctx, deletable); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if _, err := r.Orders().DeleteByIDs(ctx, deletable); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return BulkResultOutput{}, err
	}

	return buildBulkOutput(results), nil
}

// BulkDeleteItems は注文明細の一括削除。残った明細で合計金額を計算し直す。
// 出荷前（pending/cancelled）の注文なら、消した分の在庫も同Txで戻す。
func (u *AdminOrderUsecase) BulkDeleteItems(ctx context.Context, orderID int64, itemIDs []int64) (BulkResultOutput, error) {
	if orderID <= 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	itemIDs = normalizeIDs(itemIDs)
	if len(itemIDs) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}

	results := make([]BulkItemResult, 0, len(itemIDs))

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		restock := o.Status == model.OrderStatusPending || o.Status == model.OrderStatusCancelled

		//その注文に属する明細だけが削除対象
		existing, err := r.OrderItems().ListByOrderAndIDs(ctx, orderID, itemIDs)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		found := make(map[int64]model.OrderItem, len(existing))
		for _, it := range existing {
			found[it.ID] = it
		}

		deletable := make([]int64, 0, len(existing))
		for _, id := range itemIDs {
			it, ok := found[id]
			if !ok {
				results = append(results, bulkFailed(id, "not found"))
				continue
			}
			if restock {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil && err != repo.ErrNotFound {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
			deletable = append(deletable, id)
			results = append(results, bulkOK(id))
		}

		if len(deletable) > 0 {
			if _, err := r.OrderItems().DeleteByIDs(ctx, orderID, deletable); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//合計金額の再計算
		return recomputeOrderTotalInTx(ctx, r, orderID)
	})
	if err != nil {
		return BulkResultOutput{}, err
	}

	return buildBulkOutput(results), nil
}

type AdminUpdateOrderItemInput struct {
	Quantity int64
}

// UpdateOrderItem は明細の数量変更。合計金額も同Txで計算し直す。
func (u *AdminOrderUsecase) UpdateOrderItem(ctx context.Context, orderID int64, itemID int64, in AdminUpdateOrderItemInput) (OrderOutput, error) {
	if orderID <= 0 || itemID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.OrderItems().ListByOrderAndIDs(ctx, orderID, []int64{itemID})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		item := items[0]
		item.Quantity = in.Quantity
		if err := r.OrderItems().Update(ctx, item); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return recomputeOrderTotalInTx(ctx, r, orderID)
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return u.GetOrder(ctx, orderID)
}

// 明細の購入時価格×数量を積み上げてtotal_amountを更新する。
func recomputeOrderTotalInTx(ctx context.Context, r repo.TxRepos, orderID int64) error {
	remaining, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var total int64 = 0
	for _, it := range remaining {
		total += it.PriceAtPurchase * it.Quantity
	}

	if err := r.Orders().UpdateTotalAmount(ctx, orderID, total); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
