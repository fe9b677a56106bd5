package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/internal/usecase"
)

// usecaseが返したエラーのHTTPステータスとメッセージを確認する
func assertHTTPError(t *testing.T, err error, wantStatus int, wantSubstr string) {
	t.Helper()
	if !assert.Error(t, err) {
		return
	}
	he, ok := usecase.AsHTTPError(err)
	if !assert.True(t, ok, "expected *HTTPError, got %v", err) {
		return
	}
	assert.Equal(t, wantStatus, he.Status)
	if wantSubstr != "" {
		assert.Contains(t, he.Message, wantSubstr)
	}
}
