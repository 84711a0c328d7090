package handler

import (
	"errors"
	"io"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const resumeFormField = "file"

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/resumes")
	grp.Post("/", h.Upload)
	grp.Post("/parse", h.Parse)
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", h.Delete)
	grp.Patch("/:id/level", h.UpdateLevel)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(resumeFormField)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing resume file", nil, err)
	}
	if fh.Size > usecase.MaxResumeBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume file is too large", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxResumeBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if len(data) > usecase.MaxResumeBytes {
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "Resume file is too large", nil, nil)
	}

	created, err := h.uc.Upload(c.Context(), usecase.UploadInput{
		UserID:      userID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Resume uploaded", dto.NewResumeResponse(created, true))
}

func (h *ResumeHandler) Parse(c fiber.Ctx) error {
	if _, err := middleware.UserID(c); err != nil {
		return err
	}

	var req dto.ParseResumeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	parsed, err := h.uc.Parse(c.Context(), req.Text)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, parsed)
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.ResumeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewResumeResponse(it, false))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	userID, id, err := ownerAndID(c)
	if err != nil {
		return err
	}

	r, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(r, true))
}

func (h *ResumeHandler) Delete(c fiber.Ctx) error {
	userID, id, err := ownerAndID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Resume deleted", nil)
}

func (h *ResumeHandler) UpdateLevel(c fiber.Ctx) error {
	userID, id, err := ownerAndID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateLevelRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.UpdateLevel(c.Context(), userID, id, req.JobLevel, *req.YearsOfExperience)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job level updated", dto.NewResumeResponse(updated, false))
}

// ownerAndID reads the caller and the :id path parameter. A malformed id
// reads as a missing resume.
func ownerAndID(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := middleware.UserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, mapUsecaseError(errors.Join(usecase.ErrResumeNotFound, err))
	}
	return userID, id, nil
}
