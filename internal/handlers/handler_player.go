package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/dto"
	"github.com/SscSPs/club_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// playerHandler handles HTTP requests for the club roster.
type playerHandler struct {
	playerService portssvc.PlayerSvcFacade
}

func newPlayerHandler(ps portssvc.PlayerSvcFacade) *playerHandler {
	return &playerHandler{playerService: ps}
}

// registerPlayerRoutes registers roster routes.
func registerPlayerRoutes(rg *gin.RouterGroup, playerService portssvc.PlayerSvcFacade) {
	h := newPlayerHandler(playerService)

	players := rg.Group("/players")
	{
		players.GET("", h.listPlayers)
		players.POST("", h.createPlayer)
		players.GET("/:playerID", h.getPlayer)
		players.PUT("/:playerID", h.updatePlayer)
		players.DELETE("/:playerID", h.deletePlayer)
	}
}

// createPlayer godoc
// @Summary Add a player to the roster
// @Tags players
// @Accept  json
// @Produce  json
// @Param   player body dto.CreatePlayerRequest true "Player details"
// @Success 201 {object} dto.PlayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /players [post]
func (h *playerHandler) createPlayer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create player request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	player, err := h.playerService.CreatePlayer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create player")
		return
	}

	logger.Info("Player created", slog.String("player_id", player.PlayerID))
	c.JSON(http.StatusCreated, dto.ToPlayerResponse(player))
}

// getPlayer godoc
// @Summary Get a player with the current dues calendar
// @Tags players
// @Produce  json
// @Param   playerID path string true "Player ID"
// @Success 200 {object} dto.PlayerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /players/{playerID} [get]
func (h *playerHandler) getPlayer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	playerID := c.Param("playerID")

	player, err := h.playerService.GetPlayerByID(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, logger.With(slog.String("player_id", playerID)), err, "Failed to retrieve player")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlayerResponse(player))
}

// updatePlayer godoc
// @Summary Update a player's profile
// @Description Only the fields present in the body change. A new name is carried over to the player's dues ledger entries.
// @Tags players
// @Accept  json
// @Produce  json
// @Param   playerID path string true "Player ID"
// @Param   player body dto.UpdatePlayerRequest true "Fields to change"
// @Success 200 {object} dto.PlayerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /players/{playerID} [put]
func (h *playerHandler) updatePlayer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	playerID := c.Param("playerID")
	var req dto.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind update player request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	player, err := h.playerService.UpdatePlayer(c.Request.Context(), playerID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("player_id", playerID)), err, "Failed to update player")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlayerResponse(player))
}

// listPlayers godoc
// @Summary List players
// @Description Lists the roster ordered by name. The status filter uses the freshly computed financial status.
// @Tags players
// @Produce  json
// @Param   position query string false "Position"
// @Param   status query string false "COMPLIANT or DELINQUENT"
// @Param   name query string false "Name substring"
// @Success 200 {object} dto.ListPlayersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /players [get]
func (h *playerHandler) listPlayers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPlayersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	players, err := h.playerService.ListPlayers(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list players")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPlayersResponse(players))
}

// deletePlayer godoc
// @Summary Remove a player and their dues ledger entries
// @Tags players
// @Param   playerID path string true "Player ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /players/{playerID} [delete]
func (h *playerHandler) deletePlayer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	playerID := c.Param("playerID")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.playerService.DeletePlayer(c.Request.Context(), playerID, userID); err != nil {
		respondError(c, logger.With(slog.String("player_id", playerID)), err, "Failed to delete player")
		return
	}

	logger.Info("Player deleted", slog.String("player_id", playerID))
	c.Status(http.StatusNoContent)
}
