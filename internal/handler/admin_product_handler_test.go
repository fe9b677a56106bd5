package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
)

// Bulk系テストで使う分だけ実装したProductRepository
type bulkProductRepoStub struct {
	existing map[int64]struct{}
}

func (s *bulkProductRepoStub) SetActiveByIDs(ctx context.Context, ids []int64, isActive bool) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := s.existing[id]; ok {
			n++
		}
	}
	return n, nil
}

func (s *bulkProductRepoStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.existing[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.existing, id)
	return nil
}

func (s *bulkProductRepoStub) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) FindByID(ctx context.Context, id int64) (model.Product, error) {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) FindByIDWithRelations(ctx context.Context, id int64) (model.Product, error) {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) Update(ctx context.Context, p model.Product) error {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) ReplaceCompatibleCars(ctx context.Context, productID int64, carIDs []int64) error {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) AddImage(ctx context.Context, img model.ProductImage) (model.ProductImage, error) {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) ClearMainImage(ctx context.Context, productID int64) error {
	panic("not used in bulk tests")
}

func (s *bulkProductRepoStub) DeleteImage(ctx context.Context, productID int64, imageID int64) error {
	panic("not used in bulk tests")
}

type inventoryRepoStub struct{}

func (inventoryRepoStub) SetStock(ctx context.Context, productID int64, newStock int64) error {
	panic("not used in bulk tests")
}

func (inventoryRepoStub) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	panic("not used in bulk tests")
}

func (inventoryRepoStub) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	panic("not used in bulk tests")
}

// 一部成功・一部失敗でも207で全行の結果を返す
func TestAdminProductHandler_BulkSetActive_MultiStatus(t *testing.T) {
	stub := &bulkProductRepoStub{existing: map[int64]struct{}{1: {}}}
	h := NewAdminProductHandler(usecase.NewAdminProductUsecase(stub, inventoryRepoStub{}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/products/bulk/active",
		strings.NewReader(`{"ids":[1,2],"is_active":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.bulkSetActive(c))
	assert.Equal(t, http.StatusMultiStatus, rec.Code)

	var out usecase.BulkResultOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Succeeded)
	assert.Equal(t, 1, out.Failed)
	if assert.Len(t, out.Results, 2) {
		assert.Equal(t, "ok", out.Results[0].Outcome)
		assert.Equal(t, "failed", out.Results[1].Outcome)
		assert.Contains(t, out.Results[1].Error, "not found")
	}
}

func TestAdminProductHandler_BulkDelete_MultiStatus(t *testing.T) {
	stub := &bulkProductRepoStub{existing: map[int64]struct{}{1: {}, 2: {}}}
	h := NewAdminProductHandler(usecase.NewAdminProductUsecase(stub, inventoryRepoStub{}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/products/bulk/delete",
		strings.NewReader(`{"ids":[1,2,3]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.bulkDelete(c))
	assert.Equal(t, http.StatusMultiStatus, rec.Code)

	var out usecase.BulkResultOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Succeeded)
	assert.Equal(t, 1, out.Failed)
	assert.Empty(t, stub.existing)
}

func TestAdminProductHandler_BulkSetActive_EmptyIDs(t *testing.T) {
	stub := &bulkProductRepoStub{existing: map[int64]struct{}{}}
	h := NewAdminProductHandler(usecase.NewAdminProductUsecase(stub, inventoryRepoStub{}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/products/bulk/active",
		strings.NewReader(`{"ids":[],"is_active":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.bulkSetActive(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
