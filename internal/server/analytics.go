package server

import (
	"net/http"

	"github.com/theheadmen/coffeeloyalty/internal/models"
)

func (ls *ServerSystem) AnalyticsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	var summary models.AnalyticsSummary
	if err := ls.Storage.GetAnalyticsSummary(r.Context(), &summary); err != nil {
		ls.serviceError(w, err)
		return
	}
	ls.writeJSON(w, http.StatusOK, summary)
}
