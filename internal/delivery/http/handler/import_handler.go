package handler

import (
	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ImportHandler struct {
	uc usecase.ImportUsecase
}

func NewImportHandler(uc usecase.ImportUsecase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

func (h *ImportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/resumes/import")
	grp.Post("/linkedin", h.LinkedIn)
	grp.Post("/profile", h.ProfileExport)
}

func (h *ImportHandler) LinkedIn(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.ImportLinkedInRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.ImportLinkedIn(c.Context(), userID, req.URL)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Profile imported", dto.NewResumeResponse(created, true))
}

// ProfileExport takes the raw JSON export as the request body.
func (h *ImportHandler) ProfileExport(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	body := c.Body()
	if len(body) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	created, err := h.uc.ImportProfileExport(c.Context(), userID, body)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Profile imported", dto.NewResumeResponse(created, true))
}
