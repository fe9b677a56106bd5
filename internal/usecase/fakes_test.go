package usecase_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// インメモリのRepository群。1つのmemStoreを各インターフェース用の
// ラッパー型で包んで共有する。WithinTxはロールバックしない（成功パスと
// エラー返却だけを検証する）。
type memStore struct {
	nextID int64

	users      map[int64]model.User
	products   map[int64]model.Product
	addresses  map[int64]model.Address
	carts      map[int64]model.Cart
	cartItems  map[int64]model.CartItem
	orders     map[int64]model.Order
	orderItems map[int64]model.OrderItem
	payments   map[int64]model.Payment
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]model.User{},
		products:   map[int64]model.Product{},
		addresses:  map[int64]model.Address{},
		carts:      map[int64]model.Cart{},
		cartItems:  map[int64]model.CartItem{},
		orders:     map[int64]model.Order{},
		orderItems: map[int64]model.OrderItem{},
		payments:   map[int64]model.Payment{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// ----- テストデータ投入ヘルパー -----

func (s *memStore) addUser(u model.User) model.User {
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addProduct(p model.Product) model.Product {
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) addAddress(a model.Address) model.Address {
	if a.ID == 0 {
		a.ID = s.id()
	}
	s.addresses[a.ID] = a
	return a
}

func (s *memStore) addCart(userID int64) model.Cart {
	c := model.Cart{ID: s.id(), UserID: userID}
	s.carts[c.ID] = c
	return c
}

func (s *memStore) addCartItem(cartID, productID, qty int64) model.CartItem {
	it := model.CartItem{ID: s.id(), CartID: cartID, ProductID: productID, Quantity: qty}
	s.cartItems[it.ID] = it
	return it
}

func (s *memStore) addOrder(o model.Order) model.Order {
	if o.ID == 0 {
		o.ID = s.id()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	s.orders[o.ID] = o
	return o
}

func (s *memStore) addOrderItem(it model.OrderItem) model.OrderItem {
	if it.ID == 0 {
		it.ID = s.id()
	}
	s.orderItems[it.ID] = it
	return it
}

func (s *memStore) addPayment(p model.Payment) model.Payment {
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.payments[p.ID] = p
	return p
}

// ----- インターフェースの取り出し -----

func (s *memStore) UserRepo() repo.UserRepository           { return memUsers{s} }
func (s *memStore) ProductRepo() repo.ProductRepository     { return memProducts{s} }
func (s *memStore) InventoryRepo() repo.InventoryRepository { return memInventory{s} }
func (s *memStore) CartRepo() repo.CartRepository           { return memCarts{s} }
func (s *memStore) CartItemRepo() repo.CartItemRepository   { return memCartItems{s} }
func (s *memStore) OrderRepo() repo.OrderRepository         { return memOrders{s} }
func (s *memStore) OrderItemRepo() repo.OrderItemRepository { return memOrderItems{s} }
func (s *memStore) PaymentRepo() repo.PaymentRepository     { return memPayments{s} }
func (s *memStore) AddressRepo() repo.AddressRepository     { return memAddresses{s} }
func (s *memStore) Tx() repo.TransactionManager             { return memTx{s} }

// ----- TransactionManager / TxRepos -----

type memTx struct{ s *memStore }

func (t memTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t)
}

func (t memTx) Orders() repo.OrderRepository         { return memOrders{t.s} }
func (t memTx) OrderItems() repo.OrderItemRepository { return memOrderItems{t.s} }
func (t memTx) Carts() repo.CartRepository           { return memCarts{t.s} }
func (t memTx) CartItems() repo.CartItemRepository   { return memCartItems{t.s} }
func (t memTx) Inventory() repo.InventoryRepository  { return memInventory{t.s} }
func (t memTx) Products() repo.ProductRepository     { return memProducts{t.s} }
func (t memTx) Payments() repo.PaymentRepository     { return memPayments{t.s} }
func (t memTx) Users() repo.UserRepository           { return memUsers{t.s} }

// ----- UserRepository -----

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, u model.User) (model.User, error) {
	for _, x := range r.s.users {
		if x.Username == u.Username {
			return model.User{}, repo.ErrConflict
		}
	}
	u.ID = r.s.id()
	r.s.users[u.ID] = u
	return u, nil
}

func (r memUsers) FindByID(ctx context.Context, id int64) (model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r memUsers) FindByUsername(ctx context.Context, username string) (model.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repo.ErrNotFound
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repo.ErrNotFound
}

func (r memUsers) List(ctx context.Context, f repo.UserListFilter) ([]model.User, int64, error) {
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r memUsers) Update(ctx context.Context, u model.User) error {
	if _, ok := r.s.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.users[u.ID] = u
	return nil
}

func (r memUsers) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	u, ok := r.s.users[userID]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = passwordHash
	r.s.users[userID] = u
	return nil
}

func (r memUsers) SetActiveByIDs(ctx context.Context, ids []int64, isActive bool) (int64, error) {
	var n int64
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			u.IsActive = isActive
			r.s.users[id] = u
			n++
		}
	}
	return n, nil
}

func (r memUsers) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.s.users[id]; ok {
			delete(r.s.users, id)
			n++
		}
	}
	return n, nil
}

// ----- ProductRepository -----

type memProducts struct{ s *memStore }

func (r memProducts) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	out := []model.Product{}
	for _, p := range r.s.products {
		if q.ActiveOnly && !p.IsActive {
			continue
		}
		if q.Q != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Q)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r memProducts) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r memProducts) FindByIDWithRelations(ctx context.Context, id int64) (model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r memProducts) Create(ctx context.Context, p model.Product) (model.Product, error) {
	for _, x := range r.s.products {
		if x.PartCode == p.PartCode {
			return model.Product{}, repo.ErrConflict
		}
	}
	p.ID = r.s.id()
	r.s.products[p.ID] = p
	return p, nil
}

func (r memProducts) Update(ctx context.Context, p model.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.products[p.ID] = p
	return nil
}

func (r memProducts) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r memProducts) SetActiveByIDs(ctx context.Context, ids []int64, isActive bool) (int64, error) {
	var n int64
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			p.IsActive = isActive
			r.s.products[id] = p
			n++
		}
	}
	return n, nil
}

func (r memProducts) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.s.products[id]; ok {
			delete(r.s.products, id)
			n++
		}
	}
	return n, nil
}

func (r memProducts) ReplaceCompatibleCars(ctx context.Context, productID int64, carIDs []int64) error {
	return nil
}

func (r memProducts) AddImage(ctx context.Context, img model.ProductImage) (model.ProductImage, error) {
	p, ok := r.s.products[img.ProductID]
	if !ok {
		return model.ProductImage{}, repo.ErrNotFound
	}
	img.ID = r.s.id()
	p.Images = append(p.Images, img)
	r.s.products[img.ProductID] = p
	return img, nil
}

func (r memProducts) ClearMainImage(ctx context.Context, productID int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return nil
	}
	for i := range p.Images {
		p.Images[i].IsMain = false
	}
	r.s.products[productID] = p
	return nil
}

func (r memProducts) DeleteImage(ctx context.Context, productID int64, imageID int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	for i, img := range p.Images {
		if img.ID == imageID {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			r.s.products[productID] = p
			return nil
		}
	}
	return repo.ErrNotFound
}

// ----- InventoryRepository -----

type memInventory struct{ s *memStore }

func (r memInventory) SetStock(ctx context.Context, productID int64, newStock int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.StockQuantity = newStock
	r.s.products[productID] = p
	return nil
}

func (r memInventory) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	p, ok := r.s.products[productID]
	if !ok || p.StockQuantity < qty {
		return false, nil
	}
	p.StockQuantity -= qty
	r.s.products[productID] = p
	return true, nil
}

func (r memInventory) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.StockQuantity += qty
	r.s.products[productID] = p
	return nil
}

// ----- CartRepository -----

type memCarts struct{ s *memStore }

func (r memCarts) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	for _, c := range r.s.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	c := model.Cart{ID: r.s.id(), UserID: userID}
	r.s.carts[c.ID] = c
	return c, nil
}

func (r memCarts) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	for _, c := range r.s.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return model.Cart{}, repo.ErrNotFound
}

func (r memCarts) Clear(ctx context.Context, cartID int64) error {
	for id, it := range r.s.cartItems {
		if it.CartID == cartID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

// ----- CartItemRepository -----

type memCartItems struct{ s *memStore }

func (r memCartItems) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	out := []model.CartItem{}
	for _, it := range r.s.cartItems {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCartItems) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	it, ok := r.s.cartItems[cartItemID]
	if !ok {
		return model.CartItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r memCartItems) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	for _, it := range r.s.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			return it, nil
		}
	}
	return model.CartItem{}, repo.ErrNotFound
}

func (r memCartItems) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	item.ID = r.s.id()
	r.s.cartItems[item.ID] = item
	return item, nil
}

func (r memCartItems) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	it, ok := r.s.cartItems[cartItemID]
	if !ok {
		return repo.ErrNotFound
	}
	it.Quantity = qty
	r.s.cartItems[cartItemID] = it
	return nil
}

func (r memCartItems) DeleteByID(ctx context.Context, cartItemID int64) error {
	if _, ok := r.s.cartItems[cartItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.cartItems, cartItemID)
	return nil
}

func (r memCartItems) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	it, ok := r.s.cartItems[cartItemID]
	if !ok {
		return false, nil
	}
	cart, ok := r.s.carts[it.CartID]
	return ok && cart.UserID == userID, nil
}

// ----- OrderRepository -----

type memOrders struct{ s *memStore }

func (r memOrders) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r memOrders) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	out := []model.Order{}
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r memOrders) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	out := []model.Order{}
	for _, o := range r.s.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r memOrders) ListByIDs(ctx context.Context, ids []int64) ([]model.Order, error) {
	out := []model.Order{}
	for _, id := range ids {
		if o, ok := r.s.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memOrders) Create(ctx context.Context, order model.Order) (int64, error) {
	order.ID = r.s.id()
	order.OrderDate = time.Now()
	r.s.orders[order.ID] = order
	return order.ID, nil
}

func (r memOrders) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	r.s.orders[orderID] = o
	return nil
}

func (r memOrders) UpdateTotalAmount(ctx context.Context, orderID int64, total int64) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.TotalAmount = total
	r.s.orders[orderID] = o
	return nil
}

func (r memOrders) Update(ctx context.Context, order model.Order) error {
	if _, ok := r.s.orders[order.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.orders[order.ID] = order
	return nil
}

func (r memOrders) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.s.orders[id]; ok {
			delete(r.s.orders, id)
			n++
		}
	}
	return n, nil
}

// ----- OrderItemRepository -----

type memOrderItems struct{ s *memStore }

func (r memOrderItems) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	for _, it := range items {
		it.OrderID = orderID
		it.ID = r.s.id()
		r.s.orderItems[it.ID] = it
	}
	return nil
}

func (r memOrderItems) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	item.ID = r.s.id()
	r.s.orderItems[item.ID] = item
	return item, nil
}

func (r memOrderItems) Update(ctx context.Context, item model.OrderItem) error {
	if _, ok := r.s.orderItems[item.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.orderItems[item.ID] = item
	return nil
}

func (r memOrderItems) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memOrderItems) ListByOrderAndIDs(ctx context.Context, orderID int64, ids []int64) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	for _, id := range ids {
		if it, ok := r.s.orderItems[id]; ok && it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r memOrderItems) DeleteByIDs(ctx context.Context, orderID int64, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if it, ok := r.s.orderItems[id]; ok && it.OrderID == orderID {
			delete(r.s.orderItems, id)
			n++
		}
	}
	return n, nil
}

func (r memOrderItems) DeleteByOrderIDs(ctx context.Context, orderIDs []int64) error {
	for id, it := range r.s.orderItems {
		for _, oid := range orderIDs {
			if it.OrderID == oid {
				delete(r.s.orderItems, id)
			}
		}
	}
	return nil
}

// ----- PaymentRepository -----

type memPayments struct{ s *memStore }

func (r memPayments) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	p.ID = r.s.id()
	r.s.payments[p.ID] = p
	return p, nil
}

func (r memPayments) FindByID(ctx context.Context, id int64) (model.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return model.Payment{}, repo.ErrNotFound
	}
	return p, nil
}

func (r memPayments) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	for _, p := range r.s.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return model.Payment{}, repo.ErrNotFound
}

func (r memPayments) ListAdmin(ctx context.Context, f repo.PaymentListFilter) ([]model.Payment, int64, error) {
	out := []model.Payment{}
	for _, p := range r.s.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r memPayments) Update(ctx context.Context, p model.Payment) error {
	if _, ok := r.s.payments[p.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.payments[p.ID] = p
	return nil
}

func (r memPayments) SyncStatusByOrderID(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	for id, p := range r.s.payments {
		if p.OrderID == orderID {
			p.Status = status
			r.s.payments[id] = p
		}
	}
	return nil
}

func (r memPayments) SetStatusByIDs(ctx context.Context, ids []int64, status model.PaymentStatus) (int64, error) {
	var n int64
	for _, id := range ids {
		if p, ok := r.s.payments[id]; ok {
			p.Status = status
			r.s.payments[id] = p
			n++
		}
	}
	return n, nil
}

func (r memPayments) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.s.payments[id]; ok {
			delete(r.s.payments, id)
			n++
		}
	}
	return n, nil
}

func (r memPayments) DeleteByOrderIDs(ctx context.Context, orderIDs []int64) error {
	for id, p := range r.s.payments {
		for _, oid := range orderIDs {
			if p.OrderID == oid {
				delete(r.s.payments, id)
			}
		}
	}
	return nil
}

// ----- AddressRepository -----

type memAddresses struct{ s *memStore }

func (r memAddresses) Create(ctx context.Context, address model.Address) (model.Address, error) {
	address.ID = r.s.id()
	r.s.addresses[address.ID] = address
	return address, nil
}

func (r memAddresses) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	out := []model.Address{}
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memAddresses) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	a, ok := r.s.addresses[addressID]
	if !ok {
		return model.Address{}, repo.ErrNotFound
	}
	return a, nil
}

func (r memAddresses) Update(ctx context.Context, address model.Address) error {
	if _, ok := r.s.addresses[address.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.addresses[address.ID] = address
	return nil
}

func (r memAddresses) Delete(ctx context.Context, addressID int64) error {
	if _, ok := r.s.addresses[addressID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.addresses, addressID)
	return nil
}

func (r memAddresses) IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error) {
	a, ok := r.s.addresses[addressID]
	return ok && a.UserID == userID, nil
}
