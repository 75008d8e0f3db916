package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpad/internal/app/models/dto"
	"github.com/derin/classpad/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Every
// controller funnels its errors through here so status codes and error
// payloads stay uniform.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidClassCode):
		respondError(c, http.StatusNotFound, dto.ErrorCodeInvalidClassCode, "No active classroom matches this code")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respondError(c, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, "Already enrolled in this classroom")
	case errors.Is(err, apperrors.ErrNotEnrolled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Not enrolled in this classroom")
	case errors.Is(err, apperrors.ErrClassroomNotFound),
		errors.Is(err, apperrors.ErrAssignmentNotFound),
		errors.Is(err, apperrors.ErrSubmissionNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, err.Error())
	case errors.Is(err, apperrors.ErrStoreUnavailable), errors.Is(err, apperrors.ErrClassCodeExhausted):
		respondError(c, http.StatusServiceUnavailable, dto.ErrorCodeStoreUnavailable, "Service temporarily unavailable")
	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleBindingError reports a malformed or invalid request body.
func HandleBindingError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
		WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
