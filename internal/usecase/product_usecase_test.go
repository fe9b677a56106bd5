package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"app/internal/domain/model"
	"app/internal/usecase"
)

func TestProductUsecase_ListPublicProducts_ActiveOnly(t *testing.T) {
	s := newMemStore()
	s.addProduct(model.Product{Name: "Visible", Price: 100, StockQuantity: 1, PackageQuantity: 1, IsActive: true})
	s.addProduct(model.Product{Name: "Hidden", Price: 100, StockQuantity: 1, PackageQuantity: 1, IsActive: false})
	uc := usecase.NewProductUsecase(s.ProductRepo())

	out, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{})

	assert.NoError(t, err)
	if assert.Len(t, out.Items, 1) {
		assert.Equal(t, "Visible", out.Items[0].Name)
	}
	assert.Equal(t, 1, out.Page)
}

func TestProductUsecase_ListPublicProducts_InvalidPage(t *testing.T) {
	uc := usecase.NewProductUsecase(newMemStore().ProductRepo())

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: -1})

	assertHTTPError(t, err, http.StatusBadRequest, "invalid page")
}

func TestProductUsecase_ListPublicProducts_InvalidLimit(t *testing.T) {
	uc := usecase.NewProductUsecase(newMemStore().ProductRepo())

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Limit: 101})

	assertHTTPError(t, err, http.StatusBadRequest, "invalid limit")
}

func TestProductUsecase_ListPublicProducts_InvalidSort(t *testing.T) {
	uc := usecase.NewProductUsecase(newMemStore().ProductRepo())

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Sort: "weight_desc"})

	assertHTTPError(t, err, http.StatusBadRequest, "invalid sort")
}

func TestProductUsecase_ListPublicProducts_QTooLong(t *testing.T) {
	uc := usecase.NewProductUsecase(newMemStore().ProductRepo())

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Q: strings.Repeat("a", 101)})

	assertHTTPError(t, err, http.StatusBadRequest, "q too long")
}

func TestProductUsecase_ListPublicProducts_PriceRange(t *testing.T) {
	uc := usecase.NewProductUsecase(newMemStore().ProductRepo())

	lo, hi := int64(500), int64(100)
	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{MinPrice: &lo, MaxPrice: &hi})

	assertHTTPError(t, err, http.StatusBadRequest, "min_price must be <= max_price")
}

func TestProductUsecase_GetPublicProduct_InactiveIsHidden(t *testing.T) {
	s := newMemStore()
	p := s.addProduct(model.Product{Name: "Retired", Price: 100, StockQuantity: 1, PackageQuantity: 1, IsActive: false})
	uc := usecase.NewProductUsecase(s.ProductRepo())

	_, err := uc.GetPublicProduct(context.Background(), p.ID)

	assertHTTPError(t, err, http.StatusNotFound, "")
}

func TestProductUsecase_GetPublicProduct_DerivedStockFields(t *testing.T) {
	s := newMemStore()
	// 在庫10、4個入り → パッケージ2つ＋端数2
	p := s.addProduct(model.Product{Name: "Wiper Blade", Price: 700, StockQuantity: 10, PackageQuantity: 4, AllowIndividualSale: true, IsActive: true})
	uc := usecase.NewProductUsecase(s.ProductRepo())

	out, err := uc.GetPublicProduct(context.Background(), p.ID)

	assert.NoError(t, err)
	assert.True(t, out.InStock)
	assert.Equal(t, int64(2), out.PackageCount)
	assert.Equal(t, int64(2), out.IndividualItemsAvailable)
	// 関連が無くてもnilにしない
	assert.NotNil(t, out.CompatibleCars)
	assert.NotNil(t, out.Images)
}

func TestProductUsecase_GetPublicProduct_NotFound(t *testing.T) {
	uc := usecase.NewProductUsecase(newMemStore().ProductRepo())

	_, err := uc.GetPublicProduct(context.Background(), 999)

	assertHTTPError(t, err, http.StatusNotFound, "")
}
