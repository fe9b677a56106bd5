package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者向けの支払いCRUD。
// ここでの変更は直接上書きで、注文ステータスからの導出より優先される
// （ただし以後に注文ステータスが変わると再導出で上書きされる）。
type AdminPaymentUsecase struct {
	payments repo.PaymentRepository
}

// DI
func NewAdminPaymentUsecase(payments repo.PaymentRepository) *AdminPaymentUsecase {
	return &AdminPaymentUsecase{payments: payments}
}

type AdminListPaymentsInput struct {
	Page   int
	Limit  int
	Status string
	Type   string
	Q      string
	Sort   string
}

type PaymentListOutput struct {
	Items []PaymentOutput `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *AdminPaymentUsecase) ListPayments(ctx context.Context, in AdminListPaymentsInput) (PaymentListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 20
	}
	if in.Page < 1 || in.Limit < 1 || in.Limit > 100 {
		return PaymentListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page or limit")
	}
	if in.Status != "" && !model.ValidPaymentStatus(in.Status) {
		return PaymentListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.Type != "" && !model.ValidPaymentType(in.Type) {
		return PaymentListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_type")
	}

	payments, total, err := u.payments.ListAdmin(ctx, repo.PaymentListFilter{
		Page:   in.Page,
		Limit:  in.Limit,
		Status: in.Status,
		Type:   in.Type,
		Q:      strings.TrimSpace(in.Q),
		Sort:   strings.TrimSpace(in.Sort),
	})
	if err != nil {
		return PaymentListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := PaymentListOutput{
		Items: make([]PaymentOutput, 0, len(payments)),
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}
	for _, p := range payments {
		out.Items = append(out.Items, toPaymentOutput(p))
	}
	return out, nil
}

func (u *AdminPaymentUsecase) GetPayment(ctx context.Context, paymentID int64) (PaymentOutput, error) {
	if paymentID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := u.payments.FindByID(ctx, paymentID)
	if err == repo.ErrNotFound {
		return PaymentOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toPaymentOutput(p), nil
}

type AdminUpdatePaymentInput struct {
	Status        string
	PaymentType   string
	TransactionID string
}

func (u *AdminPaymentUsecase) UpdatePayment(ctx context.Context, paymentID int64, in AdminUpdatePaymentInput) (PaymentOutput, error) {
	if paymentID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !model.ValidPaymentStatus(in.Status) {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if !model.ValidPaymentType(in.PaymentType) {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_type")
	}
	if len(in.TransactionID) > 100 {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "transaction_id too long")
	}

	p, err := u.payments.FindByID(ctx, paymentID)
	if err == repo.ErrNotFound {
		return PaymentOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Status = model.PaymentStatus(in.Status)
	p.PaymentType = model.PaymentType(in.PaymentType)
	p.TransactionID = strings.TrimSpace(in.TransactionID)

	if err := u.payments.Update(ctx, p); err != nil {
		return PaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toPaymentOutput(p), nil
}

// BulkSetStatus は支払いステータスの一括変更。
func (u *AdminPaymentUsecase) BulkSetStatus(ctx context.Context, ids []int64, status string) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}
	if !model.ValidPaymentStatus(status) {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	results := make([]BulkItemResult, 0, len(ids))
	for _, id := range ids {
		n, err := u.payments.SetStatusByIDs(ctx, []int64{id}, model.PaymentStatus(status))
		if err != nil {
			results = append(results, bulkFailed(id, "db error"))
			continue
		}
		if n == 0 {
			results = append(results, bulkFailed(id, "not found"))
			continue
		}
		results = append(results, bulkOK(id))
	}
	return buildBulkOutput(results), nil
}

// BulkDelete は支払いの一括削除。
func (u *AdminPaymentUsecase) BulkDelete(ctx context.Context, ids []int64) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}

	results := make([]BulkItemResult, 0, len(ids))
	for _, id := range ids {
		n, err := u.payments.DeleteByIDs(ctx, []int64{id})
		if err != nil {
			results = append(results, bulkFailed(id, "db error"))
			continue
		}
		if n == 0 {
			results = append(results, bulkFailed(id, "not found"))
			continue
		}
		results = append(results, bulkOK(id))
	}
	return buildBulkOutput(results), nil
}

func toPaymentOutput(p model.Payment) PaymentOutput {
	return PaymentOutput{
		ID:            p.ID,
		OrderID:       p.OrderID,
		PaymentType:   string(p.PaymentType),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
	}
}
