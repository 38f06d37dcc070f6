package router

import (
	"tably/internal/handlers/auth"
	"tably/internal/handlers/booking"
	"tably/internal/handlers/restaurant"
	"tably/internal/handlers/table"
	"tably/internal/handlers/user"
	"tably/shared/constant"
	"tably/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth       auth.Handler
	User       user.Handler
	Restaurant restaurant.Handler
	Table      table.Handler
	Booking    booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	authn := r.AuthMiddleware.Auth

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup, authn)
		r.DomainHandlers.Restaurant.Router(routerGroup, authn)
		r.DomainHandlers.Table.Router(routerGroup, authn)
		r.DomainHandlers.Booking.Router(routerGroup, authn)

		// User management is for admins and managers only.
		routerGroup.Group(func(staff chi.Router) {
			staff.Use(authn)
			staff.Use(r.AuthMiddleware.RequireRoles(constant.RoleAdmin, constant.RoleManager))
			r.DomainHandlers.User.Router(staff)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
