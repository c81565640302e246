package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/club_finance_app/internal/apperrors"
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/SscSPs/club_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// duesHandler handles the monthly dues calendar of each player.
type duesHandler struct {
	duesService portssvc.DuesSvcFacade
}

func newDuesHandler(ds portssvc.DuesSvcFacade) *duesHandler {
	return &duesHandler{duesService: ds}
}

// slotURI identifies one month of one player's calendar.
type slotURI struct {
	PlayerID   string `uri:"playerID" binding:"required"`
	MonthIndex int    `uri:"month" binding:"monthindex"`
}

// registerDuesRoutes registers calendar and ledger maintenance routes.
func registerDuesRoutes(rg *gin.RouterGroup, duesService portssvc.DuesSvcFacade) {
	h := newDuesHandler(duesService)

	dues := rg.Group("/players/:playerID/dues")
	{
		dues.GET("", h.getDues)
		dues.PUT("/:month", h.setSlot)
		dues.POST("/reconcile", h.reconcilePlayer)
	}
	rg.POST("/dues/rebuild", h.rebuildLedger)
}

// getDues godoc
// @Summary Get a player's dues calendar
// @Description Returns the twelve monthly slots with the financial status recomputed for today.
// @Tags dues
// @Produce  json
// @Param   playerID path string true "Player ID"
// @Success 200 {object} domain.DuesView
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /players/{playerID}/dues [get]
func (h *duesHandler) getDues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	playerID := c.Param("playerID")

	view, err := h.duesService.GetDues(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, logger.With(slog.String("player_id", playerID)), err, "Failed to retrieve dues")
		return
	}
	c.JSON(http.StatusOK, view)
}

// setSlot godoc
// @Summary Mark a month as paid, exempt or open
// @Description Stores the slot then synchronizes the matching ledger entry. When only the ledger
// @Description update fails the slot stays saved and the response carries ledgerSynced=false.
// @Tags dues
// @Accept  json
// @Produce  json
// @Param   playerID path string true "Player ID"
// @Param   month path int true "Month index, 0 for January"
// @Param   slot body dto.SetSlotRequest true "Slot flags"
// @Success 200 {object} dto.SlotUpdateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /players/{playerID}/dues/{month} [put]
func (h *duesHandler) setSlot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri slotURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: apperrors.ErrInvalidMonth.Error()})
		return
	}
	var req dto.SetSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("player_id", uri.PlayerID), slog.Int("month_index", uri.MonthIndex))

	result, err := h.duesService.SetSlot(c.Request.Context(), uri.PlayerID, uri.MonthIndex, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLedgerSyncFailed) && result != nil {
			logger.Warn("Slot saved without ledger sync", slog.String("error", err.Error()))
			c.JSON(http.StatusOK, dto.ToSlotUpdateResponse(result))
			return
		}
		respondError(c, logger, err, "Failed to update dues")
		return
	}
	c.JSON(http.StatusOK, dto.ToSlotUpdateResponse(result))
}

// reconcilePlayer godoc
// @Summary Re-derive a player's dues ledger entries
// @Tags dues
// @Accept  json
// @Produce  json
// @Param   playerID path string true "Player ID"
// @Param   body body dto.ReconcileRequest false "Optional fee override"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /players/{playerID}/dues/reconcile [post]
func (h *duesHandler) reconcilePlayer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	playerID := c.Param("playerID")
	req, ok := bindReconcileRequest(c)
	if !ok {
		return
	}

	report, err := h.duesService.ReconcilePlayer(c.Request.Context(), playerID, req.DuesAmount)
	if err != nil && (report == nil || !errors.Is(err, apperrors.ErrLedgerSyncFailed)) {
		respondError(c, logger.With(slog.String("player_id", playerID)), err, "Failed to reconcile player")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconcileResponse(report))
}

// rebuildLedger godoc
// @Summary Re-derive the dues ledger entries of every player
// @Tags dues
// @Accept  json
// @Produce  json
// @Param   body body dto.ReconcileRequest false "Optional fee override"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dues/rebuild [post]
func (h *duesHandler) rebuildLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	req, ok := bindReconcileRequest(c)
	if !ok {
		return
	}

	report, err := h.duesService.RebuildLedger(c.Request.Context(), req.DuesAmount)
	if err != nil {
		respondError(c, logger, err, "Failed to rebuild ledger")
		return
	}
	logger.Info("Ledger rebuilt", slog.Int("players", report.Players), slog.Int("failures", report.Failures))
	c.JSON(http.StatusOK, dto.ToReconcileResponse(report))
}

// bindReconcileRequest accepts an empty body.
func bindReconcileRequest(c *gin.Context) (dto.ReconcileRequest, bool) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return req, false
	}
	return req, true
}
