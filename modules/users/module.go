// Package users provides user registration and profile management.
// This is the public API for the users bounded context.
package users

import (
	"log/slog"
	"net/http"

	"github.com/rai/fooddelivery-go/modules/users/application/commands"
	"github.com/rai/fooddelivery-go/modules/users/application/queries"
	"github.com/rai/fooddelivery-go/modules/users/domain"
	httphandler "github.com/rai/fooddelivery-go/modules/users/infrastructure/http"
)

// Module is the public API for the users bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	Users  domain.Repository
	Logger *slog.Logger
}

type module struct {
	registerUser  *commands.RegisterUserHandler
	updateProfile *commands.UpdateProfileHandler
	getUser       *queries.GetUserHandler
}

// New creates a new users module.
func New(cfg Config) Module {
	return &module{
		registerUser:  commands.NewRegisterUserHandler(cfg.Users, cfg.Logger),
		updateProfile: commands.NewUpdateProfileHandler(cfg.Users, cfg.Logger),
		getUser:       queries.NewGetUserHandler(cfg.Users),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.registerUser, m.updateProfile, m.getUser)
}
