package handler

import (
	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AnalysisHandler struct {
	uc usecase.AnalysisUsecase
}

func NewAnalysisHandler(uc usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

func (h *AnalysisHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/analyses")
	grp.Post("/", h.Analyze)
	grp.Post("/batch", h.AnalyzeBatch)

	r.Get("/resumes/:id/analyses", h.ListForResume)
}

func (h *AnalysisHandler) Analyze(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.AnalyzeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Analyze(c.Context(), userID, uuid.MustParse(req.ResumeID), uuid.MustParse(req.JobID))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Analysis completed", res)
}

func (h *AnalysisHandler) AnalyzeBatch(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.BatchAnalyzeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	jobIDs := make([]uuid.UUID, 0, len(req.JobIDs))
	for _, s := range req.JobIDs {
		jobIDs = append(jobIDs, uuid.MustParse(s))
	}

	res, err := h.uc.AnalyzeBatch(c.Context(), userID, uuid.MustParse(req.ResumeID), jobIDs)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Analysis completed", res)
}

func (h *AnalysisHandler) ListForResume(c fiber.Ctx) error {
	userID, id, err := ownerAndID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListForResume(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
