package api

import (
	"baro-server/auth"
	"baro-server/domain"
	serrors "baro-server/errors"
	"encoding/json"
	"errors"
	"net/http"
)

type LoginRequest struct {
	KakaoAccessToken string `json:"kakaoAccessToken"`
}

type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	User        domain.Profile `json:"user"`
	NeedsSignup bool           `json:"needsSignup"`
}

// Login handles POST /auth/login: it exchanges a provider token for an
// access token and the caller's profile (or the empty template on first
// login).
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.auth.Login(req.KakaoAccessToken)
	if err != nil {
		if errors.Is(err, serrors.ErrInvalidProviderToken) {
			h.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.JSON(w, http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		User:        result.Profile,
		NeedsSignup: result.NeedsSignup,
	})
}

// SignUp handles POST /auth/signup (authenticated).
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req domain.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile, err := h.auth.SignUp(identity, req)
	if err != nil {
		switch {
		case errors.Is(err, serrors.ErrInvalidProfile):
			h.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, serrors.ErrProfileAlreadyExists):
			h.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.JSON(w, http.StatusOK, profile)
}

// Me handles GET /auth/me (authenticated).
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.auth.Me(identity)
	if err != nil {
		if errors.Is(err, serrors.ErrProfileNotFound) {
			h.Error(w, http.StatusNotFound, "profile does not exist, sign up first")
			return
		}
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.JSON(w, http.StatusOK, profile)
}

// UpdateMe handles PATCH /auth/me (authenticated).
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req domain.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile, err := h.auth.UpdateMe(identity, req)
	if err != nil {
		switch {
		case errors.Is(err, serrors.ErrInvalidProfile):
			h.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, serrors.ErrProfileNotFound):
			h.Error(w, http.StatusNotFound, "profile does not exist, sign up first")
		default:
			h.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.JSON(w, http.StatusOK, profile)
}
