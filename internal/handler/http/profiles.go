// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/internal/app"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/service"
	"github.com/vkotlyar/go-host-keeper/internal/utils"
	"github.com/vkotlyar/go-host-keeper/models"
)

// listProfiles returns the full profile set of the authenticated user as a
// [models.ProfileListResponse]. Secrets stay sealed: the server relays the
// encrypted bytes it was given.
func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	profiles, err := h.services.ProfileService.ListByUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("profile listing failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	response := models.ProfileListResponse{
		Profiles: profiles,
		Length:   len(profiles),
	}
	if _, err := utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Err(err).Msg("writing profile list response failed")
	}
}

// upsertProfile creates or fully replaces one profile of the authenticated
// user. The operation is idempotent, so a client retrying after a lost
// response converges to the same state.
func (h *Handler) upsertProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.ProfileUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.ProfileService.Upsert(ctx, userID, request.Profile); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProfile):
			log.Err(err).Int64("userID", userID).Msg("profile rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Int64("userID", userID).Msg("profile upsert failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

// deleteProfile removes one profile of the authenticated user. Deleting a
// profile that is already gone returns 200: the desired end state holds
// either way, and the client treats both outcomes identically.
func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("invalid profile id")
		http.Error(w, app.MsgInvalidProfileID, http.StatusBadRequest)
		return
	}

	if err := h.services.ProfileService.Delete(ctx, userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProfile):
			log.Err(err).Int64("userID", userID).Msg("delete rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Int64("userID", userID).Msg("profile delete failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}
