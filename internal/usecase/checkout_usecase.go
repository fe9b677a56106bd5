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

// 銀行振込（cash）の振込先案内。入金確認は運用側で行う。
const (
	cashPaymentCardNumber = "6037-9918-1234-5678"
	cashPaymentCardHolder = "AutoParts Store"
	cashPaymentNextStep   = "transfer the total amount and upload the receipt"
)

// CheckoutUsecase はカートから注文を作る。
// 注文・明細・在庫減算・支払い作成・カートクリアを1トランザクションで行う。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressRepository
}

// DI
func NewCheckoutUsecase(tx repo.TransactionManager, addresses repo.AddressRepository) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, addresses: addresses}
}

// 確認画面用の1行。現時点の在庫・価格で再検証した結果を持つ。
type SummaryItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`

	//空文字なら購入可能
	Issue string `json:"issue,omitempty"`
}

type CheckoutSummaryOutput struct {
	Items     []SummaryItemOutput `json:"items"`
	Total     int64               `json:"total"`
	Addresses []model.Address     `json:"addresses"`

	//全行が購入可能ならtrue
	CanCheckout bool `json:"can_checkout"`
}

type PlaceOrderInput struct {
	AddressID   int64
	PaymentType string
}

type PaymentOutput struct {
	ID            int64  `json:"id"`
	OrderID       int64  `json:"order_id"`
	PaymentType   string `json:"payment_type"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
}

// 振込先の案内（cashのときだけ返す）
type PaymentInstructionOutput struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	NextStep   string `json:"next_step"`
}

type PlaceOrderOutput struct {
	OrderID         int64                     `json:"order_id"`
	Status          string                    `json:"status"`
	ShippingAddress string                    `json:"shipping_address"`
	TotalAmount     int64                     `json:"total_amount"`
	OrderDate       time.Time                 `json:"order_date"`
	Payment         PaymentOutput             `json:"payment"`
	Instruction     *PaymentInstructionOutput `json:"instruction,omitempty"`
}

// GetSummary は確認画面のためにカートを現時点の在庫・価格で再検証する。
func (u *CheckoutUsecase) GetSummary(ctx context.Context, userID int64) (CheckoutSummaryOutput, error) {
	if userID <= 0 {
		return CheckoutSummaryOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	out := CheckoutSummaryOutput{Items: []SummaryItemOutput{}, CanCheckout: true}

	//届け先の選択肢も確認画面で一緒に返す
	addrs, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return CheckoutSummaryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.Addresses = addrs

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			out.CanCheckout = false
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			out.CanCheckout = false
			return nil
		}

		for _, it := range items {
			row := SummaryItemOutput{ProductID: it.ProductID, Quantity: it.Quantity}

			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				row.Issue = "product no longer available"
				out.CanCheckout = false
				out.Items = append(out.Items, row)
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			row.Name = p.Name
			row.Price = p.Price
			row.LineTotal = p.Price * it.Quantity

			if !p.IsActive {
				row.Issue = "product no longer available"
				out.CanCheckout = false
			} else if verr := validatePurchaseQuantity(p, it.Quantity); verr != nil {
				if he, ok := AsHTTPError(verr); ok {
					row.Issue = he.Message
				}
				out.CanCheckout = false
			}

			if row.Issue == "" {
				out.Total += row.LineTotal
			}
			out.Items = append(out.Items, row)
		}
		return nil
	})
	if err != nil {
		return CheckoutSummaryOutput{}, err
	}
	return out, nil
}

// PlaceOrder は注文を確定する。
// 在庫は条件つきUPDATEで減らし、足りなければ全体をロールバックする。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid address_id")
	}
	if !model.ValidPaymentType(in.PaymentType) {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_type")
	}

	//住所の存在＋所有チェック
	addr, err := u.addresses.FindByID(ctx, in.AddressID)
	if err == repo.ErrNotFound {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if addr.UserID != userID {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	//住所は注文時点の文字列として固定する
	shipping := formatShippingAddress(addr)

	var out PlaceOrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var total int64 = 0

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}

			//倍数ルールは確定時にも守らせる
			if verr := validatePurchaseQuantity(p, ci.Quantity); verr != nil {
				return verr
			}

			//在庫減算（足りないならロールバック）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "insufficient stock")
			}

			//価格は注文時点の値で固定する
			orderItems = append(orderItems, model.OrderItem{
				ProductID:       ci.ProductID,
				Quantity:        ci.Quantity,
				PriceAtPurchase: p.Price,
			})
			total += p.Price * ci.Quantity
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			Status:          model.OrderStatusPending,
			ShippingAddress: shipping,
			PaymentType:     model.PaymentType(in.PaymentType),
			TotalAmount:     total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//支払いレコード（pendingで作成）
		payment, err := r.Payments().Create(ctx, model.Payment{
			OrderID:       orderID,
			PaymentType:   model.PaymentType(in.PaymentType),
			Status:        model.PaymentStatusPending,
			TransactionID: uuid.NewString(),
			Amount:        total,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートは空にする（再注文防止）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PlaceOrderOutput{
			OrderID:         orderID,
			Status:          string(model.OrderStatusPending),
			ShippingAddress: shipping,
			TotalAmount:     total,
			OrderDate:       time.Now(),
			Payment: PaymentOutput{
				ID:            payment.ID,
				OrderID:       orderID,
				PaymentType:   string(payment.PaymentType),
				Status:        string(payment.Status),
				TransactionID: payment.TransactionID,
				Amount:        payment.Amount,
			},
		}

		//銀行振込は振込先を案内する
		if payment.PaymentType == model.PaymentTypeCash {
			out.Instruction = &PaymentInstructionOutput{
				CardNumber: cashPaymentCardNumber,
				CardHolder: cashPaymentCardHolder,
				NextStep:   cashPaymentNextStep,
			}
		}
		return nil
	})
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

func formatShippingAddress(a model.Address) string {
	parts := []string{a.Province, a.City, a.Street, a.Detail, a.PostalCode}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, ", ")
}
