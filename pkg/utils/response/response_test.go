package response

import (
	"net/http"
	"testing"

	"github.com/kart-io/atlas/pkg/errors"
)

func TestSuccess(t *testing.T) {
	r := Success(map[string]string{"k": "v"})
	if !r.IsSuccess() {
		t.Error("Success response should report IsSuccess")
	}
	if r.HTTPStatus() != http.StatusOK {
		t.Errorf("HTTPStatus() = %d, want 200", r.HTTPStatus())
	}
}

func TestErr(t *testing.T) {
	r := Err(errors.ErrNotFound)
	if r.Code != errors.ErrNotFound.Code {
		t.Errorf("Code = %d, want %d", r.Code, errors.ErrNotFound.Code)
	}
	if r.HTTPStatus() != http.StatusNotFound {
		t.Errorf("HTTPStatus() = %d, want 404", r.HTTPStatus())
	}
	if r.Data != nil {
		t.Error("error responses must not carry data")
	}
}

func TestErrNilIsSuccess(t *testing.T) {
	if !Err(nil).IsSuccess() {
		t.Error("Err(nil) should be success")
	}
}

func TestHTTPStatusCategoryFallback(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"request", errors.MakeCode(77, errors.CategoryRequest, 1), http.StatusBadRequest},
		{"auth", errors.MakeCode(77, errors.CategoryAuth, 1), http.StatusUnauthorized},
		{"permission", errors.MakeCode(77, errors.CategoryPermission, 1), http.StatusForbidden},
		{"resource", errors.MakeCode(77, errors.CategoryResource, 1), http.StatusNotFound},
		{"internal", errors.MakeCode(77, errors.CategoryInternal, 1), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{Code: tt.code}
			if got := r.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPage(t *testing.T) {
	r := Page([]int{1, 2, 3}, 10, 1, 3)
	pd, ok := r.Data.(*PageData)
	if !ok {
		t.Fatalf("Data should be *PageData, got %T", r.Data)
	}
	if pd.Total != 10 || pd.Page != 1 || pd.PageSize != 3 {
		t.Errorf("PageData = %+v", pd)
	}
	if pd.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", pd.TotalPages)
	}
}

func TestPageZeroSize(t *testing.T) {
	r := Page(nil, 5, 1, 0)
	pd := r.Data.(*PageData)
	if pd.TotalPages != 0 {
		t.Errorf("TotalPages with zero page size = %d, want 0", pd.TotalPages)
	}
}
