package app

import (
	"github.com/weatherlyhq/weatherly/internal/auth"
	"github.com/weatherlyhq/weatherly/internal/middleware"
	"github.com/weatherlyhq/weatherly/internal/platform/jwt"
	"github.com/weatherlyhq/weatherly/internal/platform/router"
	"github.com/weatherlyhq/weatherly/internal/platform/validation"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

func mountAuthRoutes(r router.Router, handler *auth.Handler, validator validation.Validator, maxBodySize int64) {
	r.Group("/auth", func(gr router.Router) {
		gr.Post("/register", handler.Register,
			middleware.DecodePayload[auth.RegisterRequest](maxBodySize),
			middleware.ValidateInput[auth.RegisterRequest](validator))
		gr.Post("/login", handler.Login,
			middleware.DecodePayload[auth.LoginRequest](maxBodySize),
			middleware.ValidateInput[auth.LoginRequest](validator))
		gr.Post("/refresh", handler.Refresh)
		gr.Post("/logout", handler.Logout)
	})
}

func mountSubscriberRoutes(r router.Router, handler *subscriber.Handler, signer jwt.Signer, validator validation.Validator, maxBodySize int64) {
	r.Group("/subscribers", func(gr router.Router) {
		gr.Get("/me", handler.Me)
		gr.Patch("/me", handler.UpdatePreferences,
			middleware.DecodePayload[subscriber.UpdatePreferencesRequest](maxBodySize),
			middleware.ValidateInput[subscriber.UpdatePreferencesRequest](validator))
		gr.Post("/me/resubscribe", handler.Resubscribe)
		gr.Post("/me/unsubscribe", handler.Unsubscribe)
	}, auth.RequireToken(signer))
}
