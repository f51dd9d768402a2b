package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/stretchr/testify/assert"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", e.Wrap("ProductUseCase.CreateProduct", e.ErrInvalidProductType), http.StatusBadRequest, e.ErrInvalidProductType.Error()},
		{"empty numbers", e.ErrProductNumbersRequired, http.StatusBadRequest, e.ErrProductNumbersRequired.Error()},
		{"not found", fmt.Errorf("repo: %w", e.ErrOrderNotFound), http.StatusNotFound, e.ErrOrderNotFound.Error()},
		{"stock not found", e.ErrStockNotFound, http.StatusNotFound, e.ErrStockNotFound.Error()},
		{"insufficient stock", e.Wrap("op", e.NewInsufficientStockError("001", 3, 2)), http.StatusConflict, "insufficient stock: product 001 requested 3, available 2"},
		{"number taken", e.ErrProductNumberTaken, http.StatusConflict, e.ErrProductNumberTaken.Error()},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, e.ErrInternalServerError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestNewApiResponse_Status(t *testing.T) {
	assert.Equal(t, "OK", NewApiResponse(http.StatusOK, "", nil).Status)
	assert.Equal(t, "BAD_REQUEST", NewApiResponse(http.StatusBadRequest, "", nil).Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", NewApiResponse(http.StatusInternalServerError, "", nil).Status)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		err  error
	}{
		{"4000", 4000, nil},
		{"4000.00", 4000, nil},
		{" 150 ", 150, nil},
		{"", 0, e.ErrPriceMustBePositive},
		{"0", 0, e.ErrPriceMustBePositive},
		{"-10", 0, e.ErrPriceMustBePositive},
		{"12.5", 0, e.ErrPricePrecision},
		{"abc", 0, e.ErrInvalidPrice},
		{"1000000001", 0, e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePrice(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumbers(t *testing.T) {
	assert.Equal(t, []string{"001", "002", "001"}, parseNumbers("001, 002,,001"))
	assert.Empty(t, parseNumbers(""))
}
