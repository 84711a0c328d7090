package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/profile"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var ve *profile.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make([]dto.FieldError, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			fields = append(fields, dto.FieldError{Field: fe.Field, Message: fe.Message})
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile export", fields, err)
	case errors.Is(err, usecase.ErrInvalidProfileURL):
		return middleware.NewAppError(fiber.StatusBadRequest, usecase.ErrInvalidProfileURL.Error(), nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFile):
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, usecase.ErrUnsupportedFile.Error(), nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, usecase.ErrResumeNotFound.Error(), nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, usecase.ErrJobNotFound.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
