package app

import (
	"database/sql"

	"github.com/weatherlyhq/weatherly/internal/config"
	"github.com/weatherlyhq/weatherly/internal/platform/hash"
	"github.com/weatherlyhq/weatherly/internal/platform/identity"
	"github.com/weatherlyhq/weatherly/internal/platform/jwt"
	"github.com/weatherlyhq/weatherly/internal/platform/router"
	"github.com/weatherlyhq/weatherly/internal/platform/validation"
)

type Provider struct {
	DB        *sql.DB
	Signer    jwt.Signer
	Hasher    hash.Hasher
	Validator validation.Validator
	Router    router.Router
	Identity  identity.Service
}

func NewProvider(cfg *config.Config, securityKey string, dbConn *sql.DB) *Provider {
	return &Provider{
		DB:        dbConn,
		Signer:    jwt.NewGolangJWTSigner(cfg.JWT, securityKey),
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, securityKey),
		Validator: validation.NewGoPlaygroundValidator(),
		Router:    router.NewGoexpressRouter(),
		Identity:  identity.NewClient(cfg.Identity),
	}
}
