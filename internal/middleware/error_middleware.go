package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// call it with any error coming out of the service layer.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	// 400
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrInvalidScope,
		apperrors.ErrInvalidStudentID):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message("Validation failed"))

	case errors.Is(err, apperrors.ErrInvalidFileType):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message("Unsupported file type"))

	case errors.Is(err, apperrors.ErrLocationUnknown):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed,
			"Bind a dormitory room before using a range filter")

	case errors.Is(err, apperrors.ErrSelfComplaint):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed,
			"Cannot file a complaint against yourself")

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Student ID or password is incorrect")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	// 403
	case errors.Is(err, apperrors.ErrAccountBanned):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountBanned, "Account is banned")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeUnauthorized, message("Permission denied"))

	// 404
	case apperrors.Is(err, apperrors.ErrUserNotFound,
		apperrors.ErrPostingNotFound,
		apperrors.ErrOrderNotFound,
		apperrors.ErrComplaintNotFound,
		apperrors.ErrNoticeNotFound,
		apperrors.ErrAnnouncementNotFound,
		apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message("Resource not found"))

	// 409
	case errors.Is(err, apperrors.ErrStudentIDExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student ID already registered")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered")

	case errors.Is(err, apperrors.ErrUsernameExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already taken")

	case errors.Is(err, apperrors.ErrDuplicateOpenComplaint):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists,
			"An open complaint for this order already exists")

	case errors.Is(err, apperrors.ErrInsufficientStock):
		respond(c, http.StatusConflict, dto.ErrorCodeInsufficientStock, "Not enough stock left")

	case errors.Is(err, apperrors.ErrInvalidOrderState):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidOrderState,
			message("Operation not allowed in the current order state"))

	case errors.Is(err, apperrors.ErrPostingDelisted):
		respond(c, http.StatusConflict, dto.ErrorCodePostingDelisted, "Posting is delisted")

	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, message("Conflict"))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleValidationError maps gin binding failures to a 400 response
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request validation failed").
		WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
