package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/opsdeck/console/internal/console/service"
	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/pkg/consolesdk"
	"github.com/opsdeck/console/pkg/httpx"
	"github.com/opsdeck/console/pkg/slogx"
)

type AuthHandler struct {
	AccountService *service.AccountService
}

// HandleRegister godoc
//
//	@Summary		Register Account Endpoint
//	@Description	Create an unverified account and send a verification mail to its address
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	consolesdk.RegisterRequest	true	"email and password"
//	@Success		204
//	@Failure		400	{object}	httpx.APIError	"error, message, statusCode"
//	@Failure		409	{object}	httpx.APIError	"error, message, statusCode, field"
//	@Router			/api/v1/auth [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req consolesdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest("Invalid request body").WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.BadRequest("email and password are required").WriteError(w)
		return
	}

	if err := h.AccountService.Register(ctx, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			httpx.Conflict("Email already exists", "email").WriteError(w)
		case errors.Is(err, store.ErrUsernameExists):
			httpx.Conflict("Email already exists", "email").WriteError(w)
		default:
			log.Error("failed to register account", "err", err)
			httpx.Internal().WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleVerify godoc
//
//	@Summary		Verify E-mail Endpoint
//	@Description	Redeem a verification token from the mailed link and mark the account verified
//	@Tags			Auth
//	@Produce		json
//	@Param			userId	query		int				true	"Account id from the mailed link"
//	@Param			token	query		string			true	"Verification token"
//	@Success		200		{object}	consolesdk.User	"verified account"
//	@Failure		404		{object}	httpx.APIError	"token invalid, expired or already used"
//	@Router			/api/v1/auth [delete].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, token, ok := actionParams(r)
	if !ok {
		httpx.BadRequest("userId and token are required").WriteError(w)
		return
	}

	user, err := h.AccountService.Verify(ctx, userID, token)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			httpx.NotFound("Token is invalid or expired").WriteError(w)
			return
		}
		log.Error("failed to verify account", "err", err)
		httpx.Internal().WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWireUser(user))
}

// HandleChange godoc
//
//	@Summary		Change Password Endpoint
//	@Description	Redeem a reset token from the mailed link and set a new password. Every session of the account is revoked.
//	@Tags			Auth
//	@Accept			json
//	@Param			userId	query	int								true	"Account id from the mailed link"
//	@Param			token	query	string							true	"Reset token"
//	@Param			request	body	consolesdk.ChangePasswordRequest	true	"new password, confirmed"
//	@Success		204
//	@Failure		400	{object}	httpx.APIError	"passwords do not match"
//	@Failure		404	{object}	httpx.APIError	"token invalid, expired or already used"
//	@Router			/api/v1/auth [patch].
func (h *AuthHandler) HandleChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, token, ok := actionParams(r)
	if !ok {
		httpx.BadRequest("userId and token are required").WriteError(w)
		return
	}

	var req consolesdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest("Invalid request body").WriteError(w)
		return
	}
	if req.NewPassword == "" {
		httpx.BadRequest("new_password is required").WriteError(w)
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		httpx.BadRequest("Passwords do not match").WriteError(w)
		return
	}

	if err := h.AccountService.ChangePassword(ctx, userID, token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			httpx.NotFound("Token is invalid or expired").WriteError(w)
			return
		}
		log.Error("failed to change password", "err", err)
		httpx.Internal().WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleResend godoc
//
//	@Summary		Resend Verification Endpoint
//	@Description	Send a fresh verification mail. Responds 204 regardless of whether the address has an account.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	consolesdk.EmailRequest	true	"address to mail"
//	@Success		204
//	@Failure		400	{object}	httpx.APIError	"error, message, statusCode"
//	@Router			/api/v1/auth/resend [post].
func (h *AuthHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req consolesdk.EmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" {
		httpx.BadRequest("email is required").WriteError(w)
		return
	}

	if err := h.AccountService.Resend(ctx, req.Email); err != nil {
		log.Error("failed to resend verification", "err", err)
		httpx.Internal().WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleReset godoc
//
//	@Summary		Request Password Reset Endpoint
//	@Description	Send a password reset mail. Responds 204 regardless of whether the address has an account.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	consolesdk.EmailRequest	true	"address to mail"
//	@Success		204
//	@Failure		400	{object}	httpx.APIError	"error, message, statusCode"
//	@Router			/api/v1/auth/reset [post].
func (h *AuthHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req consolesdk.EmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" {
		httpx.BadRequest("email is required").WriteError(w)
		return
	}

	if err := h.AccountService.Reset(ctx, req.Email); err != nil {
		log.Error("failed to send reset mail", "err", err)
		httpx.Internal().WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSignIn godoc
//
//	@Summary		Sign In Endpoint
//	@Description	Check credentials and set the session cookie. The username field accepts the e-mail address too.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.SignInRequest	true	"username (or email) and password"
//	@Success		200		{object}	consolesdk.User				"signed-in account"
//	@Failure		401		{object}	httpx.APIError				"invalid credentials"
//	@Router			/api/v1/auth/sign-in [post].
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req consolesdk.SignInRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest("Invalid request body").WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.BadRequest("username and password are required").WriteError(w)
		return
	}

	user, session, err := h.AccountService.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.Unauthorized("Invalid user ID or password").WriteError(w)
			return
		}
		log.Error("failed to sign in", "err", err)
		httpx.Internal().WriteError(w)
		return
	}

	httpx.SetSessionCookie(w, session.ID, session.ExpiresAt)
	httpx.WriteJSON(w, http.StatusOK, toWireUser(user))
}

// actionParams reads the userId and token query parameters the mailed links
// carry.
func actionParams(r *http.Request) (int64, string, bool) {
	token := r.URL.Query().Get("token")
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || token == "" {
		return 0, "", false
	}
	return userID, token, true
}
