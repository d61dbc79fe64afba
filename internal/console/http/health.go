package http

import (
	"net/http"
	"time"

	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/pkg/consolesdk"
	"github.com/opsdeck/console/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness Probe Endpoint
//	@Description	Returns 200 with uptime and version whenever the process is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	consolesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, consolesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Probe Endpoint
//	@Description	Returns 200 when the database answers a ping, 503 otherwise
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	consolesdk.HealthResponse	"status, uptime, version"
//	@Failure		503	{object}	consolesdk.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := consolesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}

		if err := st.Ping(r.Context()); err != nil {
			response.Status = "degraded"
			httpx.WriteJSON(w, http.StatusServiceUnavailable, response)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
