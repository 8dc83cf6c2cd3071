package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCommandError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", errs.NewObjectNotFoundError("parcelId", kernel.NewUUID()), http.StatusNotFound},
		{"conflict", errs.NewConcurrencyConflictError("parcelId", kernel.NewUUID()), http.StatusConflict},
		{"invalid transition", parcel.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"invalid value", errs.NewValueIsInvalidError("status"), http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, rec := newTestContext()

			require.NoError(t, commandError(ctx, "assign_parcel", tt.err))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCommandError_CountsFailureByOperation(t *testing.T) {
	ctx, _ := newTestContext()

	counter := metrics.OperationErrorsTotal.WithLabelValues("update_parcel_status")
	before := testutil.ToFloat64(counter)

	require.NoError(t, commandError(ctx, "update_parcel_status",
		errs.NewObjectNotFoundError("parcelId", kernel.NewUUID())))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
