package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/weatherlyhq/weatherly/internal/config"
	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/pkg/security"
	"github.com/weatherlyhq/weatherly/internal/pkg/web"
	"github.com/weatherlyhq/weatherly/internal/platform/jwt"
	"github.com/weatherlyhq/weatherly/internal/subscriber"
)

const maskChar = "*"

type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (subscriber.Subscriber, error)
	Login(ctx context.Context, params LoginParams) (accessToken, refreshToken string, err error)
}

type Handler struct {
	svc    AuthService
	signer jwt.Signer
	cfg    *config.Config
}

func NewHandler(svc AuthService, signer jwt.Signer, cfg *config.Config) *Handler {
	return &Handler{
		svc:    svc,
		signer: signer,
		cfg:    cfg,
	}
}

type RegisterRequest struct {
	Email           string `json:"email,omitempty" validate:"required,email"`
	Password        string `json:"password,omitempty" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
	City            string `json:"city,omitempty" validate:"required"`
	PreferredTime   string `json:"preferred_time,omitempty" validate:"required,datetime=15:04"`
	Timezone        string `json:"timezone,omitempty" validate:"omitempty,timezone"`
	Frequency       string `json:"frequency,omitempty" validate:"omitempty,oneof=daily hourly"`
}

func (r *RegisterRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
		slog.String("password_confirm", maskChar),
	)
}

type RegisterResponse struct {
	Email         string    `json:"email"`
	City          string    `json:"city"`
	PreferredTime string    `json:"preferred_time"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[RegisterRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := RegisterParams{
		Email:         req.Email,
		Password:      req.Password,
		City:          req.City,
		PreferredTime: req.PreferredTime,
		Timezone:      req.Timezone,
		Frequency:     req.Frequency,
	}
	sub, err := h.svc.Register(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrSubscriberExists) {
			web.RespondConflict(w, err, "Subscriber already exists.", nil)
			return
		}

		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.SignupSuccess
	data := &RegisterResponse{
		Email:         sub.Email,
		City:          sub.City,
		PreferredTime: sub.PreferredTime,
		CreatedAt:     sub.CreatedAt,
	}
	web.RespondCreated(w, &msg, data)
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required"`
}

func (r *LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type LoginResponse struct {
	AccessToken string `json:"access_token,omitempty"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[LoginRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := LoginParams(req)
	accessToken, refreshToken, err := h.svc.Login(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.RespondUnauthorized(w, err, message.InvalidUser, nil)
			return
		}

		web.RespondInternalServerError(w, err)
		return
	}

	cookieCfg := h.cfg.Cookie
	refreshCookie := security.HardenedCookie(cookieCfg.Name, refreshToken, cookieCfg.MaxAge.Duration)
	http.SetCookie(w, refreshCookie)

	msg := message.LoginSuccess
	data := &LoginResponse{
		AccessToken: accessToken,
	}
	web.RespondOK(w, &msg, data)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshCookie, err := r.Cookie(h.cfg.Cookie.Name)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	email, err := h.signer.Verify(refreshCookie.Value)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	ttl := h.cfg.JWT.TTL.Duration
	newAccessToken, err := h.signer.Sign(email, []string{h.cfg.JWT.Issuer}, ttl)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.TokenRefreshed
	data := &LoginResponse{
		AccessToken: newAccessToken,
	}
	web.RespondOK(w, &msg, data)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookieName := h.cfg.Cookie.Name
	if _, err := r.Cookie(cookieName); err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	logoutCookie := security.HardenedCookie(cookieName, "", -time.Second)
	http.SetCookie(w, logoutCookie)

	msg := message.LogoutSuccess
	web.RespondOK(w, &msg, &struct{}{})
}
