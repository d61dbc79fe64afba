package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/opsdeck/console/internal/console/domain"
	"github.com/opsdeck/console/internal/console/service"
	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/pkg/consolesdk"
	"github.com/opsdeck/console/pkg/httpx"
	"github.com/opsdeck/console/pkg/slogx"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List Users Endpoint
//	@Description	Return one page of accounts for the users grid. offset is a zero-based page index, not a row offset.
//	@Tags			Users
//	@Produce		json
//	@Param			limit	query		int					false	"Page size"	default(5)
//	@Param			offset	query		int					false	"Page index"	default(0)
//	@Param			sort	query		string				false	"JSON sort model, e.g. [{\"field\":\"id\",\"sort\":\"asc\"}]"
//	@Success		200		{object}	consolesdk.UserPage	"count, rows"
//	@Failure		400		{object}	httpx.APIError		"unknown sort field or direction"
//	@Failure		403		{object}	httpx.APIError		"not an admin"
//	@Router			/api/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	limit := queryInt(r, "limit", defaultPageSize)
	page := queryInt(r, "offset", 0)
	if limit < 1 || limit > maxPageSize || page < 0 {
		httpx.BadRequest("Invalid pagination parameters").WriteError(w)
		return
	}

	pageData, err := h.UserService.List(ctx, limit, page, r.URL.Query().Get("sort"))
	if err != nil {
		if errors.Is(err, service.ErrBadSort) {
			httpx.BadRequest("Invalid sort model").WriteError(w)
			return
		}
		log.Error("failed to list users", "err", err)
		httpx.Internal().WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toWirePage(pageData))
}

// HandleCreate godoc
//
//	@Summary		Create User Endpoint
//	@Description	Create an account on behalf of an administrator. The account receives a reset mail to choose its password.
//	@Tags			Users
//	@Accept			json
//	@Param			request	body	consolesdk.UserUpsertRequest	true	"account fields"
//	@Success		204
//	@Failure		400	{object}	httpx.APIError	"error, message, statusCode"
//	@Failure		409	{object}	httpx.APIError	"duplicate email or username"
//	@Router			/api/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := decodeUpsert(w, r)
	if !ok {
		return
	}

	if err := h.UserService.Create(ctx, user); err != nil {
		writeUserWriteError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdate godoc
//
//	@Summary		Update User Endpoint
//	@Description	Replace the admin-editable fields of an account
//	@Tags			Users
//	@Accept			json
//	@Param			id		path	int								true	"Account id"
//	@Param			request	body	consolesdk.UserUpsertRequest	true	"account fields"
//	@Success		204
//	@Failure		404	{object}	httpx.APIError	"no such account"
//	@Failure		409	{object}	httpx.APIError	"duplicate email or username"
//	@Router			/api/v1/users/{id} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, ok := decodeUpsert(w, r)
	if !ok {
		return
	}
	user.ID = id

	if err := h.UserService.Update(ctx, user); err != nil {
		writeUserWriteError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Delete User Endpoint
//	@Description	Delete an account. Administrators cannot delete their own account.
//	@Tags			Users
//	@Param			id	path	int	true	"Account id"
//	@Success		204
//	@Failure		403	{object}	httpx.APIError	"attempted self deletion"
//	@Failure		404	{object}	httpx.APIError	"no such account"
//	@Router			/api/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.UserService.Remove(ctx, id, httpx.UserIDFromCtx(ctx)); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete):
			httpx.Forbidden("Not allowed: User prohibited from deleting self").WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			httpx.NotFound("User not found").WriteError(w)
		default:
			log.Error("failed to delete user", "err", err)
			httpx.Internal().WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeUpsert(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	var req consolesdk.UserUpsertRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest("Invalid request body").WriteError(w)
		return domain.User{}, false
	}
	if req.Email == "" || req.Username == "" {
		httpx.BadRequest("email and username are required").WriteError(w)
		return domain.User{}, false
	}
	if req.Role != "" && !domain.ValidRole(req.Role) {
		httpx.BadRequest("Invalid role").WriteError(w)
		return domain.User{}, false
	}

	return domain.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}, true
}

func writeUserWriteError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		httpx.Conflict("Email already exists", "email").WriteError(w)
	case errors.Is(err, store.ErrUsernameExists):
		httpx.Conflict("Username already exists", "username").WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		httpx.NotFound("User not found").WriteError(w)
	default:
		log.Error("failed to write user", "err", err)
		httpx.Internal().WriteError(w)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.BadRequest("Invalid user id").WriteError(w)
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}
