package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runErrorHandler(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"location unknown", apperrors.ErrLocationUnknown, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"self complaint", apperrors.ErrSelfComplaint, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"banned", apperrors.ErrAccountBanned, http.StatusForbidden, dto.ErrorCodeAccountBanned},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeUnauthorized},
		{"posting missing", apperrors.ErrPostingNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"order missing", apperrors.ErrOrderNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"stock", apperrors.ErrInsufficientStock, http.StatusConflict, dto.ErrorCodeInsufficientStock},
		{"order state", apperrors.ErrInvalidOrderState, http.StatusConflict, dto.ErrorCodeInvalidOrderState},
		{"delisted", apperrors.ErrPostingDelisted, http.StatusConflict, dto.ErrorCodePostingDelisted},
		{"duplicate complaint", apperrors.ErrDuplicateOpenComplaint, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"unknown", assert.AnError, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := runErrorHandler(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleAPIErrorKeepsWrappedMessage(t *testing.T) {
	status, resp := runErrorHandler(t, apperrors.NewForbiddenError("only the seller can confirm the handoff"))

	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "only the seller can confirm the handoff", resp.Error.Message)
}

func TestHandleAPIErrorWrappedSentinelStillMaps(t *testing.T) {
	status, resp := runErrorHandler(t, apperrors.NewCustomError(apperrors.ErrInvalidOrderState, "order already handed off"))

	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeInvalidOrderState, resp.Error.Code)
	assert.Equal(t, "order already handed off", resp.Error.Message)
}
