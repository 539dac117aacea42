package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/usecase"
)

const maxRequestBodyBytes = 16 << 10

type Handler struct {
	gridService    *usecase.GridService
	verifyService  *usecase.VerifyService
	playerService  *usecase.PlayerService
	catalogService *usecase.CatalogService
	statsRefresh   *usecase.StatsRefreshService
	logger         *logging.Logger
	validator      *validator.Validate
	// jobCtx outlives the request that triggered a background job.
	jobCtx context.Context
}

// NewHandler builds the HTTP handler. statsRefresh may be nil when the refresh
// job is disabled.
func NewHandler(
	gridService *usecase.GridService,
	verifyService *usecase.VerifyService,
	playerService *usecase.PlayerService,
	catalogService *usecase.CatalogService,
	statsRefresh *usecase.StatsRefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gridService:    gridService,
		verifyService:  verifyService,
		playerService:  playerService,
		catalogService: catalogService,
		statsRefresh:   statsRefresh,
		logger:         logger,
		validator:      validator.New(),
		jobCtx:         context.Background(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetTodayGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTodayGrid")
	defer span.End()

	g, err := h.gridService.GetToday(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get today grid failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) GetGridByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGridByDate")
	defer span.End()

	date := strings.TrimSpace(r.PathValue("date"))
	g, err := h.gridService.GetByDate(ctx, grid.Day(date))
	if err != nil {
		h.logger.WarnContext(ctx, "get grid by date failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Verify")
	defer span.End()

	var req verifyRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload", usecase.ErrInvalidInput))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result := h.verifyService.Verify(ctx, usecase.VerifyInput{
		PlayerName: req.PlayerName,
		Row:        usecase.CategoryInput{Type: req.RowCat.Type, Value: req.RowCat.Value},
		Col:        usecase.CategoryInput{Type: req.ColCat.Type, Value: req.ColCat.Value},
	})

	writeSuccess(ctx, w, http.StatusOK, verifyResultToDTO(result))
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	query := r.URL.Query().Get("q")
	players, err := h.playerService.Search(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "player search failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToSearchDTO(players))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, listingToDTO(h.catalogService.List()))
}

// RunStatsRefreshJob starts a refresh in the background; a batch with polite
// delays easily outlasts any request timeout.
func (h *Handler) RunStatsRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunStatsRefreshJob")
	defer span.End()

	if h.statsRefresh == nil {
		writeError(ctx, w, fmt.Errorf("%w: stats refresh is disabled", usecase.ErrDependencyUnavailable))
		return
	}

	requestID := requestIDFromContext(ctx)
	go func() {
		result, err := h.statsRefresh.Run(h.jobCtx)
		if err != nil {
			h.logger.ErrorContext(h.jobCtx, "stats refresh job failed", "request_id", requestID, "error", err)
			return
		}
		h.logger.InfoContext(h.jobCtx, "stats refresh job finished",
			"request_id", requestID,
			"candidates", result.Candidates,
			"updated", result.Updated,
			"failed", result.Failed,
			"skipped", result.Skipped,
		)
	}()

	writeSuccess(ctx, w, http.StatusAccepted, jobAcceptedDTO{Job: "stats-refresh", Status: "accepted"})
}

// RunGridPregenerateJob ensures tomorrow's grid exists.
func (h *Handler) RunGridPregenerateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunGridPregenerateJob")
	defer span.End()

	day := h.gridService.Today().AddDays(1)
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := grid.ParseDay(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
		day = parsed
	}

	g, err := h.gridService.Ensure(ctx, day)
	if err != nil {
		h.logger.ErrorContext(ctx, "grid pre-generation failed", "date", day.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(g))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
