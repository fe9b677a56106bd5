package usecase

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// カートはユーザーにつき1つで、初回アクセス時に作られる。
type CartUsecase struct {
	carts     repo.CartRepository
	cartItems repo.CartItemRepository
	products  repo.ProductRepository
}

// DI
func NewCartUsecase(
	carts repo.CartRepository,
	cartItems repo.CartItemRepository,
	products repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		carts:     carts,
		cartItems: cartItems,
		products:  products,
	}
}

// カート明細。価格は現在の商品価格（確定は注文時）。
type CartItemOutput struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

type CartOutput struct {
	Items []CartItemOutput `json:"items"`
	Total int64            `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// 購入数量のルールをまとめてチェックする。
// 在庫超過と、個別販売不可商品のパッケージ倍数ルール。
func validatePurchaseQuantity(p model.Product, qty int64) error {
	if qty > p.StockQuantity {
		return NewHTTPError(http.StatusBadRequest, "insufficient stock")
	}
	if !p.AllowIndividualSale && p.PackageQuantity > 1 && qty%p.PackageQuantity != 0 {
		return NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("quantity must be a multiple of %d", p.PackageQuantity))
	}
	return nil
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.carts.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartOutput(ctx, cart.ID)
}

// AddToCart はカートに追加。同一商品は数量を加算し、合算後の数量で検証する。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.carts.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//商品チェック（公開のみ）
	p, err := u.products.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	//既存数量と合算してから検証する
	existing, err := u.cartItems.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	if err != nil && err != repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newQty := in.Quantity
	if err == nil {
		newQty = existing.Quantity + in.Quantity
	}
	if verr := validatePurchaseQuantity(p, newQty); verr != nil {
		return CartOutput{}, verr
	}

	if err == repo.ErrNotFound {
		_, cerr := u.cartItems.Create(ctx, model.CartItem{
			CartID:    cart.ID,
			ProductID: in.ProductID,
			Quantity:  newQty,
		})
		if cerr != nil {
			return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else {
		if uerr := u.cartItems.UpdateQuantity(ctx, existing.ID, newQty); uerr != nil {
			return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return u.buildCartOutput(ctx, cart.ID)
}

// 数量変更（所有チェック＋在庫・倍数チェック）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	owned, err := u.cartItems.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := u.cartItems.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.products.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	if verr := validatePurchaseQuantity(p, in.Quantity); verr != nil {
		return CartOutput{}, verr
	}

	if err := u.cartItems.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartOutput(ctx, item.CartID)
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItems.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItems.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.carts.FindByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartOutput(ctx, cart.ID)
}

// カートを空にする
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.carts.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.carts.Clear(ctx, cart.ID); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartOutput{Items: []CartItemOutput{}, Total: 0}, nil
}

// cartIDの明細をまとめてCartOutputを作る。
// 価格は現在の商品価格で計算する（購入時価格の確定は注文作成時）。
func (u *CartUsecase) buildCartOutput(ctx context.Context, cartID int64) (CartOutput, error) {
	items, err := u.cartItems.ListByCartID(ctx, cartID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outItems := make([]CartItemOutput, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		p, err := u.products.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		if !p.IsActive {
			continue
		}

		line := p.Price * it.Quantity
		outItems = append(outItems, CartItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			LineTotal: line,
		})
		total += line
	}

	return CartOutput{Items: outItems, Total: total}, nil
}
