package handler

import (
	"net/http"

	"github.com/mira-dev/mira/shared/utils"
	"github.com/sony/gobreaker/v2"
)

type healthReply struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// HealthHandler reports liveness. An open backend breaker marks the status degraded; the
// answer is still 200.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	state := h.APIClient.BreakerState()
	reply := healthReply{Status: "ok", Backend: state.String()}
	if state == gobreaker.StateOpen {
		reply.Status = "degraded"
	}
	utils.WriteJSON(w, http.StatusOK, reply)
}
