package subscriber

import (
	"errors"
	"net/http"
	"time"

	"github.com/weatherlyhq/weatherly/internal/pkg/message"
	"github.com/weatherlyhq/weatherly/internal/pkg/web"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type profileData struct {
	Email         string    `json:"email"`
	City          string    `json:"city"`
	PreferredTime string    `json:"preferred_time"`
	Timezone      string    `json:"timezone,omitempty"`
	Frequency     string    `json:"frequency,omitempty"`
	Subscribed    bool      `json:"subscribed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newProfileData(sub Subscriber) *profileData {
	return &profileData{
		Email:         sub.Email,
		City:          sub.City,
		PreferredTime: sub.PreferredTime,
		Timezone:      sub.Timezone,
		Frequency:     sub.Frequency,
		Subscribed:    sub.Subscribed,
		CreatedAt:     sub.CreatedAt,
		UpdatedAt:     sub.UpdatedAt,
	}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, err := EmailFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	sub, err := h.svc.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.SubscriberNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, newProfileData(sub))
}

type UpdatePreferencesRequest struct {
	City          string `json:"city,omitempty" validate:"required"`
	PreferredTime string `json:"preferred_time,omitempty" validate:"required,datetime=15:04"`
	Timezone      string `json:"timezone,omitempty" validate:"omitempty,timezone"`
	Frequency     string `json:"frequency,omitempty" validate:"omitempty,oneof=daily hourly"`
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	email, err := EmailFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[UpdatePreferencesRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := UpdatePreferencesParams{
		City:          req.City,
		PreferredTime: req.PreferredTime,
		Timezone:      req.Timezone,
		Frequency:     req.Frequency,
	}
	if err := h.svc.UpdatePreferences(r.Context(), email, params); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.SubscriberNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.ProfileUpdated
	web.RespondOK(w, &msg, &struct{}{})
}

func (h *Handler) Resubscribe(w http.ResponseWriter, r *http.Request) {
	h.setSubscribed(w, r, true, message.Resubscribed)
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	h.setSubscribed(w, r, false, message.Unsubscribed)
}

func (h *Handler) setSubscribed(w http.ResponseWriter, r *http.Request, subscribed bool, msg string) {
	email, err := EmailFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	if err := h.svc.SetSubscribed(r.Context(), email, subscribed); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.SubscriberNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, &msg, &struct{}{})
}
