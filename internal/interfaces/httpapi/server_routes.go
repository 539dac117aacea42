package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-grid/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, recorder *metrics.Recorder) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if recorder == nil {
		return
	}

	mux.Handle("GET /metrics", recorder.Handler())
}

func registerGridRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/grids/today", handler.GetTodayGrid)
	mux.HandleFunc("GET /v1/grids/{date}", handler.GetGridByDate)
	mux.HandleFunc("POST /v1/verify", handler.Verify)
	mux.HandleFunc("GET /v1/players/search", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/categories", handler.ListCategories)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/stats-refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunStatsRefreshJob)))
	mux.Handle("POST /v1/internal/jobs/grid-pregenerate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunGridPregenerateJob)))
}
