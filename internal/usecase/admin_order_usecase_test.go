package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"app/internal/domain/model"
	"app/internal/usecase"
)

func newAdminOrderUsecase(s *memStore) *usecase.AdminOrderUsecase {
	return usecase.NewAdminOrderUsecase(s.Tx(), s.OrderRepo(), s.OrderItemRepo(), s.PaymentRepo(), s.ProductRepo())
}

// 注文＋明細＋支払いを1セット作る
func seedOrder(s *memStore, status model.OrderStatus, productID, qty, price int64) model.Order {
	o := s.addOrder(model.Order{UserID: 1, Status: status, ShippingAddress: "somewhere", PaymentType: model.PaymentTypeCash, TotalAmount: price * qty})
	s.addOrderItem(model.OrderItem{OrderID: o.ID, ProductID: productID, Quantity: qty, PriceAtPurchase: price})
	s.addPayment(model.Payment{OrderID: o.ID, PaymentType: model.PaymentTypeCash, Status: model.DerivePaymentStatus(status), Amount: price * qty})
	return o
}

func TestAdminOrderUsecase_UpdateStatus_SyncsPayment(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Clutch Kit", Price: 4000, StockQuantity: 5, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusPending, p.ID, 1, 4000)
	uc := newAdminOrderUsecase(s)

	out, err := uc.UpdateStatus(context.Background(), o.ID, "shipped")

	assert.NoError(t, err)
	assert.Equal(t, "shipped", out.Status)
	if assert.NotNil(t, out.Payment) {
		assert.Equal(t, "completed", out.Payment.Status)
	}
}

func TestAdminOrderUsecase_UpdateStatus_CancelFailsPayment(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Clutch Kit", Price: 4000, StockQuantity: 5, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusConfirmed, p.ID, 1, 4000)
	uc := newAdminOrderUsecase(s)

	out, err := uc.UpdateStatus(context.Background(), o.ID, "cancelled")

	assert.NoError(t, err)
	if assert.NotNil(t, out.Payment) {
		assert.Equal(t, "failed", out.Payment.Status)
	}
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	s := newMemStore()
	uc := newAdminOrderUsecase(s)

	_, err := uc.UpdateStatus(context.Background(), 1, "teleported")

	assertHTTPError(t, err, http.StatusBadRequest, "invalid status")
}

func TestAdminOrderUsecase_UpdateOrder_UnchangedStatusKeepsPayment(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Clutch Kit", Price: 4000, StockQuantity: 5, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusPending, p.ID, 1, 4000)

	// 支払いを手で上書きしてある状態
	for id, pay := range s.payments {
		pay.Status = model.PaymentStatusCompleted
		s.payments[id] = pay
	}

	uc := newAdminOrderUsecase(s)
	out, err := uc.UpdateOrder(context.Background(), o.ID, usecase.AdminUpdateOrderInput{
		Status:          "pending",
		ShippingAddress: "new address",
		PaymentType:     "check",
	})

	assert.NoError(t, err)
	assert.Equal(t, "new address", out.ShippingAddress)
	// ステータスが変わっていないので支払いはそのまま
	if assert.NotNil(t, out.Payment) {
		assert.Equal(t, "completed", out.Payment.Status)
	}
}

func TestAdminOrderUsecase_BulkUpdateStatus_PartialSuccess(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Clutch Kit", Price: 4000, StockQuantity: 5, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusPending, p.ID, 1, 4000)
	uc := newAdminOrderUsecase(s)

	out, err := uc.BulkUpdateStatus(context.Background(), []int64{o.ID, 9999}, "confirmed")

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, model.OrderStatusConfirmed, s.orders[o.ID].Status)
}

func TestAdminOrderUsecase_BulkDelete_RestoresStockForPending(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Alternator", Price: 6000, StockQuantity: 2, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	pending := seedOrder(s, model.OrderStatusPending, p.ID, 3, 6000)
	shipped := seedOrder(s, model.OrderStatusShipped, p.ID, 4, 6000)
	uc := newAdminOrderUsecase(s)

	out, err := uc.BulkDelete(context.Background(), []int64{pending.ID, shipped.ID, 9999})

	assert.NoError(t, err)
	assert.Equal(t, 2, out.Succeeded)
	assert.Equal(t, 1, out.Failed)

	// pendingの分だけ在庫が戻る（shipped分は戻さない）
	assert.Equal(t, int64(5), s.products[p.ID].StockQuantity)

	// 注文・明細・支払いが消えている
	assert.Empty(t, s.orders)
	assert.Empty(t, s.orderItems)
	assert.Empty(t, s.payments)
}

func TestAdminOrderUsecase_BulkDelete_MissingIDReportedFailed(t *testing.T) {
	s := newMemStore()
	uc := newAdminOrderUsecase(s)

	out, err := uc.BulkDelete(context.Background(), []int64{42})

	assert.NoError(t, err)
	assert.Equal(t, 0, out.Succeeded)
	if assert.Len(t, out.Results, 1) {
		assert.Equal(t, "failed", out.Results[0].Outcome)
		assert.Contains(t, out.Results[0].Error, "not found")
	}
}

func TestAdminOrderUsecase_BulkDeleteItems_RecomputesTotal(t *testing.T) {
	s := newMemStore()
	p1 := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	p2 := s.addProduct(model.Product{Name: "Gasket", Price: 300, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})

	o := s.addOrder(model.Order{UserID: 1, Status: model.OrderStatusPending, ShippingAddress: "x", PaymentType: model.PaymentTypeCash, TotalAmount: 2600})
	it1 := s.addOrderItem(model.OrderItem{OrderID: o.ID, ProductID: p1.ID, Quantity: 2, PriceAtPurchase: 1000})
	s.addOrderItem(model.OrderItem{OrderID: o.ID, ProductID: p2.ID, Quantity: 2, PriceAtPurchase: 300})
	s.addPayment(model.Payment{OrderID: o.ID, PaymentType: model.PaymentTypeCash, Status: model.PaymentStatusPending, Amount: 2600})

	uc := newAdminOrderUsecase(s)
	out, err := uc.BulkDeleteItems(context.Background(), o.ID, []int64{it1.ID})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Succeeded)
	// 残った明細（300×2）で計算し直す
	assert.Equal(t, int64(600), s.orders[o.ID].TotalAmount)
	// pendingの注文なので消した2個分の在庫が戻る
	assert.Equal(t, int64(12), s.products[p1.ID].StockQuantity)
	assert.Equal(t, int64(10), s.products[p2.ID].StockQuantity)
}

// 出荷済みの注文は明細を消しても在庫を戻さない
func TestAdminOrderUsecase_BulkDeleteItems_NoRestockAfterShipment(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusShipped, p.ID, 3, 1000)

	var itemID int64
	for _, it := range s.orderItems {
		if it.OrderID == o.ID {
			itemID = it.ID
		}
	}

	uc := newAdminOrderUsecase(s)
	out, err := uc.BulkDeleteItems(context.Background(), o.ID, []int64{itemID})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, int64(10), s.products[p.ID].StockQuantity)
}

// 他の注文の明細IDは削除されず失敗行になる
func TestAdminOrderUsecase_BulkDeleteItems_ForeignItemRejected(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o1 := seedOrder(s, model.OrderStatusPending, p.ID, 2, 1000)
	o2 := seedOrder(s, model.OrderStatusPending, p.ID, 1, 1000)

	var foreign int64
	for _, it := range s.orderItems {
		if it.OrderID == o2.ID {
			foreign = it.ID
		}
	}

	uc := newAdminOrderUsecase(s)
	out, err := uc.BulkDeleteItems(context.Background(), o1.ID, []int64{foreign})

	assert.NoError(t, err)
	assert.Equal(t, 0, out.Succeeded)
	assert.Equal(t, 1, out.Failed)
	// o2の明細は残っている
	items, _ := s.OrderItemRepo().ListByOrderID(context.Background(), o2.ID)
	assert.Len(t, items, 1)
}

func TestAdminOrderUsecase_BulkDeleteItems_OrderNotFound(t *testing.T) {
	s := newMemStore()
	uc := newAdminOrderUsecase(s)

	_, err := uc.BulkDeleteItems(context.Background(), 12345, []int64{1})

	assertHTTPError(t, err, http.StatusNotFound, "")
}

func TestAdminOrderUsecase_UpdateOrderItem_RecomputesTotal(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusPending, p.ID, 2, 1000)

	var itemID int64
	for _, it := range s.orderItems {
		itemID = it.ID
	}

	uc := newAdminOrderUsecase(s)
	out, err := uc.UpdateOrderItem(context.Background(), o.ID, itemID, usecase.AdminUpdateOrderItemInput{Quantity: 5})

	assert.NoError(t, err)
	assert.Equal(t, int64(5000), out.TotalAmount)
	assert.Equal(t, int64(5000), s.orders[o.ID].TotalAmount)
}

func TestAdminOrderUsecase_CreateOrder_PricesAtCurrentPrice(t *testing.T) {
	s := newMemStore()
	u := s.addUser(model.User{Username: "taro", Email: "taro@example.com", Role: model.RoleUser, IsActive: true})
	p1 := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	p2 := s.addProduct(model.Product{Name: "Gasket", Price: 300, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})

	uc := newAdminOrderUsecase(s)
	out, err := uc.CreateOrder(context.Background(), usecase.AdminCreateOrderInput{
		UserID:          u.ID,
		PaymentType:     string(model.PaymentTypeCash),
		ShippingAddress: "somewhere",
		Items: []usecase.AdminOrderItemInput{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 3},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)
	assert.Equal(t, int64(2900), out.TotalAmount)
	assert.Len(t, out.Items, 2)
	if assert.NotNil(t, out.Payment) {
		assert.Equal(t, string(model.PaymentStatusPending), out.Payment.Status)
		assert.Equal(t, int64(2900), out.Payment.Amount)
		assert.NotEmpty(t, out.Payment.TransactionID)
	}
	// 手動作成は在庫を動かさない
	assert.Equal(t, int64(10), s.products[p1.ID].StockQuantity)
}

func TestAdminOrderUsecase_CreateOrder_DerivesPaymentFromStatus(t *testing.T) {
	s := newMemStore()
	u := s.addUser(model.User{Username: "taro", Email: "taro@example.com", Role: model.RoleUser, IsActive: true})
	p := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})

	uc := newAdminOrderUsecase(s)
	out, err := uc.CreateOrder(context.Background(), usecase.AdminCreateOrderInput{
		UserID:          u.ID,
		Status:          string(model.OrderStatusShipped),
		PaymentType:     string(model.PaymentTypeCheck),
		ShippingAddress: "somewhere",
		Items:           []usecase.AdminOrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})

	assert.NoError(t, err)
	if assert.NotNil(t, out.Payment) {
		assert.Equal(t, string(model.PaymentStatusCompleted), out.Payment.Status)
	}
}

func TestAdminOrderUsecase_CreateOrder_Validation(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	uc := newAdminOrderUsecase(s)

	_, err := uc.CreateOrder(context.Background(), usecase.AdminCreateOrderInput{
		UserID:          9999,
		PaymentType:     string(model.PaymentTypeCash),
		ShippingAddress: "somewhere",
		Items:           []usecase.AdminOrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	assertHTTPError(t, err, http.StatusNotFound, "user not found")

	u := s.addUser(model.User{Username: "taro", Email: "taro@example.com", Role: model.RoleUser, IsActive: true})

	_, err = uc.CreateOrder(context.Background(), usecase.AdminCreateOrderInput{
		UserID:          u.ID,
		PaymentType:     string(model.PaymentTypeCash),
		ShippingAddress: "somewhere",
	})
	assertHTTPError(t, err, http.StatusBadRequest, "items required")

	_, err = uc.CreateOrder(context.Background(), usecase.AdminCreateOrderInput{
		UserID:          u.ID,
		PaymentType:     string(model.PaymentTypeCash),
		ShippingAddress: "somewhere",
		Items:           []usecase.AdminOrderItemInput{{ProductID: 9999, Quantity: 1}},
	})
	assertHTTPError(t, err, http.StatusBadRequest, "product not found")
}

// 明細リスト付きの更新は、更新・追加・削除をまとめて揃える
func TestAdminOrderUsecase_UpdateOrder_ReconcilesItems(t *testing.T) {
	s := newMemStore()
	p1 := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	p2 := s.addProduct(model.Product{Name: "Gasket", Price: 500, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusPending, p1.ID, 2, 1000)

	var itemID int64
	for _, it := range s.orderItems {
		itemID = it.ID
	}

	items := []usecase.AdminOrderItemInput{
		{ID: itemID, Quantity: 3},
		{ProductID: p2.ID, Quantity: 2},
	}
	uc := newAdminOrderUsecase(s)
	out, err := uc.UpdateOrder(context.Background(), o.ID, usecase.AdminUpdateOrderInput{
		Status:          string(model.OrderStatusPending),
		ShippingAddress: "somewhere",
		PaymentType:     string(model.PaymentTypeCash),
		Items:           &items,
	})

	assert.NoError(t, err)
	// 3×1000 + 2×500
	assert.Equal(t, int64(4000), out.TotalAmount)
	assert.Len(t, out.Items, 2)
}

// リストから消えた既存明細は削除され、出荷前なら在庫が戻る
func TestAdminOrderUsecase_UpdateOrder_RemovedItemsRestock(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusPending, p.ID, 4, 1000)

	items := []usecase.AdminOrderItemInput{}
	uc := newAdminOrderUsecase(s)
	out, err := uc.UpdateOrder(context.Background(), o.ID, usecase.AdminUpdateOrderInput{
		Status:          string(model.OrderStatusPending),
		ShippingAddress: "somewhere",
		PaymentType:     string(model.PaymentTypeCash),
		Items:           &items,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.TotalAmount)
	assert.Len(t, out.Items, 0)
	assert.Equal(t, int64(14), s.products[p.ID].StockQuantity)
}

func TestAdminOrderUsecase_UpdateOrder_UnknownItemIDRejected(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Piston", Price: 1000, StockQuantity: 10, IsActive: true, PackageQuantity: 1, AllowIndividualSale: true})
	o := seedOrder(s, model.OrderStatusPending, p.ID, 2, 1000)

	items := []usecase.AdminOrderItemInput{{ID: 9999, Quantity: 1}}
	uc := newAdminOrderUsecase(s)
	_, err := uc.UpdateOrder(context.Background(), o.ID, usecase.AdminUpdateOrderInput{
		Status:          string(model.OrderStatusPending),
		ShippingAddress: "somewhere",
		PaymentType:     string(model.PaymentTypeCash),
		Items:           &items,
	})

	assertHTTPError(t, err, http.StatusBadRequest, "invalid item id")
}
