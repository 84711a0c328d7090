package handler

import (
	"errors"
	"strconv"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("/", h.Search)
	grp.Get("/recent", h.Recent)
	grp.Post("/", h.Add)
	grp.Post("/seed", h.Seed)
	grp.Get("/:id", h.Get)
}

func (h *JobHandler) Add(c fiber.Ctx) error {
	var req dto.AddJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.Add(c.Context(), usecase.AddJobInput{
		Title:           req.Title,
		Company:         req.Company,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		Location:        req.Location,
		ExperienceLevel: req.ExperienceLevel,
		URL:             req.URL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job added", created)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return mapUsecaseError(errors.Join(usecase.ErrJobNotFound, err))
	}

	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *JobHandler) Search(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.Search(c.Context(), usecase.JobSearchInput{
		Query:           c.Query("q"),
		Location:        c.Query("location"),
		ExperienceLevel: c.Query("experience_level"),
		Limit:           limit,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *JobHandler) Recent(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.Recent(c.Context(), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *JobHandler) Seed(c fiber.Ctx) error {
	n, err := h.uc.SeedSamples(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Sample jobs seeded", dto.SeedResponse{Seeded: n})
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}
