package http

import (
	"errors"
	"net/http"

	"github.com/opsdeck/console/internal/console/domain"
	"github.com/opsdeck/console/internal/console/service"
	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/pkg/consolesdk"
	"github.com/opsdeck/console/pkg/httpx"
	"github.com/opsdeck/console/pkg/slogx"
)

// AccountHandler serves the three self-service endpoints under
// /api/v1/users/{id}/... Users can only touch their own account; admins can
// touch anyone's.
type AccountHandler struct {
	UserService *service.UserService
}

// HandleEmail godoc
//
//	@Summary		Change E-mail Endpoint
//	@Description	Change the account's e-mail address. Requires the current password and address, drops the account back to unverified and revokes every session.
//	@Tags			Account
//	@Accept			json
//	@Param			id		path	int							true	"Account id"
//	@Param			request	body	consolesdk.UpdateEmailRequest	true	"current and new address plus password"
//	@Success		204
//	@Failure		400	{object}	httpx.APIError	"current address does not match"
//	@Failure		403	{object}	httpx.APIError	"wrong password or foreign account"
//	@Failure		409	{object}	httpx.APIError	"address already taken"
//	@Router			/api/v1/users/{id}/email [patch].
func (h *AccountHandler) HandleEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := h.ownAccount(w, r)
	if !ok {
		return
	}

	var req consolesdk.UpdateEmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest("Invalid request body").WriteError(w)
		return
	}
	if req.CurrentEmail == "" || req.NewEmail == "" || req.Password == "" {
		httpx.BadRequest("current_email, new_email and password are required").WriteError(w)
		return
	}

	err := h.UserService.UpdateEmail(ctx, id, req.CurrentEmail, req.NewEmail, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			apiErr := httpx.Forbidden("Password is incorrect")
			apiErr.Field = "password"
			apiErr.WriteError(w)
		case errors.Is(err, service.ErrEmailMismatch):
			httpx.BadRequest("Current email does not match").WriteError(w)
		case errors.Is(err, store.ErrEmailExists):
			httpx.Conflict("Email already exists", "email").WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			httpx.NotFound("User not found").WriteError(w)
		default:
			log.Error("failed to change email", "err", err)
			httpx.Internal().WriteError(w)
		}
		return
	}

	httpx.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandlePassword godoc
//
//	@Summary		Change Own Password Endpoint
//	@Description	Change the account's password with the current one as proof. Revokes every session so all devices must sign in again.
//	@Tags			Account
//	@Accept			json
//	@Param			id		path	int								true	"Account id"
//	@Param			request	body	consolesdk.UpdatePasswordRequest	true	"current and new password, confirmed"
//	@Success		204
//	@Failure		400	{object}	httpx.APIError	"passwords do not match"
//	@Failure		403	{object}	httpx.APIError	"wrong password or foreign account"
//	@Router			/api/v1/users/{id}/password [patch].
func (h *AccountHandler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := h.ownAccount(w, r)
	if !ok {
		return
	}

	var req consolesdk.UpdatePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest("Invalid request body").WriteError(w)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		httpx.BadRequest("current_password and new_password are required").WriteError(w)
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		httpx.BadRequest("Passwords do not match").WriteError(w)
		return
	}

	err := h.UserService.UpdatePassword(ctx, id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			apiErr := httpx.Forbidden("Password is incorrect")
			apiErr.Field = "current_password"
			apiErr.WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			httpx.NotFound("User not found").WriteError(w)
		default:
			log.Error("failed to change password", "err", err)
			httpx.Internal().WriteError(w)
		}
		return
	}

	httpx.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleProfile godoc
//
//	@Summary		Update Profile Endpoint
//	@Description	Update the display fields of the account and return the fresh record
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Account id"
//	@Param			request	body		consolesdk.UpdateProfileRequest	true	"first name, last name, username"
//	@Success		200		{object}	consolesdk.User					"updated account"
//	@Failure		409		{object}	httpx.APIError					"username already taken"
//	@Router			/api/v1/users/{id}/profile [patch].
func (h *AccountHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := h.ownAccount(w, r)
	if !ok {
		return
	}

	var req consolesdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest("Invalid request body").WriteError(w)
		return
	}
	if req.Username == "" {
		httpx.BadRequest("username is required").WriteError(w)
		return
	}

	user, err := h.UserService.UpdateProfile(ctx, id, req.FirstName, req.LastName, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			httpx.Conflict("Username already exists", "username").WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			httpx.NotFound("User not found").WriteError(w)
		default:
			log.Error("failed to update profile", "err", err)
			httpx.Internal().WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireUser(user))
}

// ownAccount resolves the {id} path parameter and checks the caller is either
// that user or an admin.
func (h *AccountHandler) ownAccount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return 0, false
	}

	ctx := r.Context()
	if httpx.UserIDFromCtx(ctx) != id && httpx.RoleFromCtx(ctx) != domain.RoleAdmin {
		httpx.Forbidden("Insufficient privileges").WriteError(w)
		return 0, false
	}
	return id, true
}
