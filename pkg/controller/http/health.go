package http

import (
	"net/http"

	"github.com/m-mizutani/relmon/pkg/domain/interfaces"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

type statusHandler struct {
	watchUC interfaces.WatchUseCase
}

func (h *statusHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	watch := h.watchUC.Status()
	writeJSON(r.Context(), w, http.StatusOK, &model.HealthStatus{
		Status:  "healthy",
		Service: types.ServiceName,
		Version: types.Version,
		Watch:   &watch,
	})
}

func (h *statusHandler) handleVersions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	versions, err := h.watchUC.Versions(ctx)
	if err != nil {
		logging.From(ctx).Error("Failed to list versions", "error", err)
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, versions)
}
