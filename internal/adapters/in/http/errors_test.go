package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/undo"
	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	id := kernel.NewUUID()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid transition", order.NewInvalidTransitionError(id, order.Shipped, order.Pending), http.StatusConflict, CodeInvalidState},
		{"terminal order", fmt.Errorf("%w: DELIVERED", order.ErrOrderIsFinal), http.StatusConflict, CodeInvalidState},
		{"nothing to undo", undo.NewNothingToUndoError(id), http.StatusConflict, CodeNothingToUndo},
		{"insufficient stock", &ledger.InsufficientStockError{MaterialID: id}, http.StatusConflict, CodeInsufficient},
		{"stale version", errs.NewVersionIsInvalidError("order"), http.StatusConflict, CodeStaleVersion},
		{"resolved record", conflict.ErrRecordAlreadyResolved, http.StatusConflict, CodeConflict},
		{"not found", errs.NewObjectNotFoundError("material", id), http.StatusNotFound, CodeNotFound},
		{"invalid value", errs.NewValueIsInvalidError("target"), http.StatusBadRequest, CodeBadRequest},
		{"required value", errs.NewValueIsRequiredError("actor"), http.StatusBadRequest, CodeBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("limit", 900, 1, 500), http.StatusBadRequest, CodeBadRequest},
		{"ledger failure", ledger.NewWriteFailure(id, ledger.MovementOut, nil, errors.New("disk full")), http.StatusInternalServerError, CodeLedgerFailure},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed, CodeBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestMapError_LedgerFailureOnMissingMaterialIsNotFound(t *testing.T) {
	id := kernel.NewUUID()
	err := ledger.NewWriteFailure(id, ledger.MovementIn, nil, errs.NewObjectNotFoundError("material", id))

	status, body := mapError(err)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, CodeNotFound, body.Code)
}

func TestMapError_ConflictCarriesRecordID(t *testing.T) {
	recordID := kernel.NewUUID()
	err := fmt.Errorf("update order: %w", &conflict.DetectedError{RecordID: recordID, Fields: []string{"total"}})

	status, body := mapError(err)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, CodeConflict, body.Code)
	require.NotNil(t, body.ConflictID)
	assert.Equal(t, recordID.Bytes(), *body.ConflictID)
}

func TestMapError_InternalDetailsAreHidden(t *testing.T) {
	_, body := mapError(errors.New("pq: password authentication failed"))

	assert.NotContains(t, body.Message, "password")
	assert.Empty(t, body.Details)
}
