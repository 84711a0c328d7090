package routes

import (
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every handler mounted on the app. Nil handlers are skipped.
type Registry struct {
	Auth *middleware.AuthMiddleware

	Health          *handler.HealthHandler
	Events          RouteRegistrar
	Resumes         *handler.ResumeHandler
	Imports         *handler.ImportHandler
	Jobs            *handler.JobHandler
	Analyses        *handler.AnalysisHandler
	Recommendations *handler.RecommendationHandler
}

type RouteRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Events != nil {
		r.Events.RegisterRoutes(app)
	}
	r.registerAPI(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1 := app.Group("/api/v1")

	var protected fiber.Router = v1
	if r.Auth != nil {
		protected = v1.Group("", r.Auth.Middleware())
	}

	// import routes go first so /resumes/import/* never reaches /resumes/:id
	if r.Imports != nil {
		r.Imports.RegisterRoutes(protected)
	}
	if r.Resumes != nil {
		r.Resumes.RegisterRoutes(protected)
	}
	if r.Jobs != nil {
		r.Jobs.RegisterRoutes(protected)
	}
	if r.Analyses != nil {
		r.Analyses.RegisterRoutes(protected)
	}
	if r.Recommendations != nil {
		r.Recommendations.RegisterRoutes(protected)
	}
}
