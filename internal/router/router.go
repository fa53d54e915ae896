// Package router assembles the HTTP route tree.
package router

import (
	"net/http"

	"workshop-bridge/internal/auth"
	"workshop-bridge/internal/handler"
	"workshop-bridge/internal/metrics"
	"workshop-bridge/internal/middleware"
	"workshop-bridge/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles the handlers the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Coupon      *handler.CouponHandler
	User        *handler.UserHandler
	PendingUser *handler.PendingUserHandler
	Workshop    *handler.WorkshopHandler
	Event       *handler.EventHandler
	Order       *handler.OrderHandler
	Testimonial *handler.TestimonialHandler
}

// New creates the HTTP router with all routes and middleware configured.
// Coupon mutations and the user admin surface require an authenticated
// admin; the role check runs against the service-role store.
func New(
	h Handlers,
	provider auth.Provider,
	handles *store.Handles,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS)

	requireAuth := auth.RequireAuth(provider, logger)
	requireAdmin := auth.RequireAdmin(handles.Admin.Users, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/register", h.Auth.Register)
		r.Post("/logout", h.Auth.Logout)
		r.Post("/reset-password", h.Auth.ResetPassword)
		r.Post("/update-password", h.Auth.UpdatePassword)
		r.Get("/user", h.Auth.GetUser)
	})

	r.Route("/coupons", func(r chi.Router) {
		r.Get("/", h.Coupon.List)
		r.Get("/by-code/{code}", h.Coupon.ValidateByCode)
		r.Get("/{id}", h.Coupon.GetByID)
		r.Post("/{id}/increment-usage", h.Coupon.IncrementUsage)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", h.Coupon.Create)
			r.Put("/{id}", h.Coupon.Update)
			r.Delete("/{id}", h.Coupon.Delete)
		})
	})

	r.Route("/workshops", func(r chi.Router) {
		r.Get("/", h.Workshop.List)
		r.Get("/sessions/upcoming", h.Workshop.UpcomingSessions)
		r.Get("/sessions/workshop/{id}", h.Workshop.SessionsForWorkshop)
		r.Get("/sessions/{id}", h.Workshop.GetSession)
		r.Get("/{slug}", h.Workshop.GetBySlug)
	})

	r.Route("/workshop-sessions", func(r chi.Router) {
		r.Post("/{id}/decrease-spots", h.Workshop.DecreaseSpots)
		r.Post("/{id}/increase-spots", h.Workshop.IncreaseSpots)
	})

	r.Get("/events/upcoming", h.Event.Upcoming)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Order.Create)
		r.Get("/user/{id}", h.Order.ListByUser)
		r.Get("/{id}", h.Order.GetByID)
		r.Put("/{id}/cancel", h.Order.Cancel)
		r.Put("/{id}", h.Order.UpdateStatus)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/profile", h.User.GetProfile)
		r.With(requireAuth).Put("/profile", h.User.UpdateProfile)
		r.Get("/by-email/{email}", h.User.GetIDByEmail)
		r.Post("/", h.User.Create)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Get("/all", h.User.AdminListAll)
			r.Post("/", h.User.AdminCreate)
			r.Get("/{id}", h.User.AdminGetByID)
			r.Put("/{id}", h.User.AdminUpdate)
			r.Delete("/{id}", h.User.AdminDelete)
		})

		r.Get("/{id}", h.User.GetByID)
		r.Put("/{id}", h.User.Update)
	})

	r.Route("/pending-users", func(r chi.Router) {
		r.Post("/", h.PendingUser.Create)
		r.Get("/by-email/{email}", h.PendingUser.GetByEmail)
		r.Delete("/by-email/{email}", h.PendingUser.DeleteByEmail)
	})

	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/approved", h.Testimonial.Approved)
		r.Get("/featured", h.Testimonial.Featured)
		r.Get("/workshop/{id}", h.Testimonial.ForWorkshop)
		r.Post("/", h.Testimonial.Create)
	})

	return r
}
