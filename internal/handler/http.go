package handler

import (
	"errors"
	"net/http"

	"streetsaga-server/internal/authutils"
	"streetsaga-server/internal/catalog"
	"streetsaga-server/internal/middleware"
	"streetsaga-server/internal/models"
	"streetsaga-server/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GameHandler serves the streetsaga HTTP API.
type GameHandler struct {
	gameService    service.GameService
	profileService service.ProfileService
	logger         *zap.Logger
	tokenVerifier  *authutils.JWTVerifier
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(
	gameService service.GameService,
	profileService service.ProfileService,
	logger *zap.Logger,
	jwtSecret string,
) *GameHandler {
	verifier, err := authutils.NewJWTVerifier(jwtSecret, logger)
	if err != nil {
		logger.Fatal("Failed to create JWT verifier", zap.Error(err))
	}

	return &GameHandler{
		gameService:    gameService,
		profileService: profileService,
		logger:         logger.Named("GameHandler"),
		tokenVerifier:  verifier,
	}
}

// RegisterRoutes registers the API routes. The catalog, health and metrics
// endpoints are public; everything else requires a verified user token.
func (h *GameHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.health)
	e.GET("/metrics", echo.WrapHandler(metricsHandler()))

	api := e.Group("/api")

	catalogGroup := api.Group("/catalog")
	{
		catalogGroup.GET("/chapters", h.listChapters)
		catalogGroup.GET("/characters", h.listCharacters)
	}

	authMW := middleware.Auth(h.tokenVerifier.VerifyToken, h.logger)

	profileGroup := api.Group("/profile", authMW)
	{
		profileGroup.GET("", h.getProfile)
		profileGroup.PUT("", h.saveProfile)
	}

	api.GET("/progress", h.getProgress, authMW)

	gameGroup := api.Group("/game", authMW)
	{
		gameGroup.POST("/new", h.startNewGame)
		gameGroup.GET("", h.currentState)
		gameGroup.DELETE("", h.abandonSession)
		gameGroup.POST("/narrative/advance", h.advanceNarrative)
		gameGroup.POST("/choice", h.makeChoice)
		gameGroup.POST("/challenge/complete", h.completeChallenge)
		gameGroup.POST("/chapter/advance", h.advanceChapter)
		gameGroup.POST("/save", h.saveProgress)
		gameGroup.POST("/load", h.loadProgress)
	}
}

func (h *GameHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// --- Catalog ---

func (h *GameHandler) listChapters(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Chapters)
}

func (h *GameHandler) listCharacters(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Characters)
}

// --- Profile ---

func (h *GameHandler) getProfile(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	name, characterID, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, profileResponse{Name: name, CharacterID: characterID})
}

func (h *GameHandler) saveProfile(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body"})
	}

	if err := h.profileService.SaveProfile(c.Request().Context(), userID, req.Name, req.CharacterID); err != nil {
		return h.handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Progress ---

func (h *GameHandler) getProgress(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	progress, err := h.gameService.SavedProgress(c.Request().Context(), userID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, progressResponse{Progress: progress})
}

// --- Game session ---

func (h *GameHandler) startNewGame(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	var req startNewGameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body"})
	}

	state, err := h.gameService.StartNewGame(c.Request().Context(), userID, req.CharacterID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	actionsTotal.WithLabelValues("new_game").Inc()
	return c.JSON(http.StatusCreated, newStateResponse(state))
}

func (h *GameHandler) currentState(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	state, err := h.gameService.CurrentState(c.Request().Context(), userID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, newStateResponse(state))
}

func (h *GameHandler) abandonSession(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	if err := h.gameService.AbandonSession(c.Request().Context(), userID); err != nil {
		return h.handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *GameHandler) advanceNarrative(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	state, err := h.gameService.AdvanceNarrative(c.Request().Context(), userID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	actionsTotal.WithLabelValues("advance_narrative").Inc()
	return c.JSON(http.StatusOK, newStateResponse(state))
}

func (h *GameHandler) makeChoice(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	var req makeChoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body"})
	}
	if req.ChoiceID == "" {
		return c.JSON(http.StatusBadRequest, APIError{Message: "choiceId is required"})
	}

	state, err := h.gameService.MakeChoice(c.Request().Context(), userID, req.ChoiceID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	actionsTotal.WithLabelValues("make_choice").Inc()
	return c.JSON(http.StatusOK, newStateResponse(state))
}

func (h *GameHandler) completeChallenge(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	var req completeChallengeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body"})
	}

	result := service.ChallengeResult{
		Success: req.Success,
		Score:   req.Score,
		Reward:  req.Reward,
	}
	state, err := h.gameService.CompleteChallenge(c.Request().Context(), userID, result)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	actionsTotal.WithLabelValues("complete_challenge").Inc()
	return c.JSON(http.StatusOK, newStateResponse(state))
}

func (h *GameHandler) advanceChapter(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	state, err := h.gameService.AdvanceChapter(c.Request().Context(), userID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	actionsTotal.WithLabelValues("advance_chapter").Inc()
	return c.JSON(http.StatusOK, newStateResponse(state))
}

func (h *GameHandler) saveProgress(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	progress, err := h.gameService.SaveProgress(c.Request().Context(), userID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	savesTotal.Inc()
	return c.JSON(http.StatusOK, progressResponse{Progress: progress})
}

func (h *GameHandler) loadProgress(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	state, err := h.gameService.LoadProgress(c.Request().Context(), userID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	loadsTotal.Inc()
	return c.JSON(http.StatusOK, newStateResponse(state))
}

// handleServiceError maps service errors to HTTP responses.
func (h *GameHandler) handleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNoActiveSession),
		errors.Is(err, models.ErrProgressNotFound),
		errors.Is(err, models.ErrProfileNotFound),
		errors.Is(err, models.ErrNotFound):
		return c.JSON(http.StatusNotFound, APIError{Message: err.Error()})

	case errors.Is(err, models.ErrMissingCharacterData):
		return c.JSON(http.StatusConflict, APIError{
			Message: "Saved progress has no fighter attached. Pick a fighter, save again, and the slot will be upgraded.",
		})

	case errors.Is(err, models.ErrObjectiveAlreadyDone):
		return c.JSON(http.StatusConflict, APIError{Message: err.Error()})

	case errors.Is(err, models.ErrNoCharacterSelected),
		errors.Is(err, models.ErrEmptyProfileName),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, APIError{Message: err.Error()})

	case errors.Is(err, models.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, APIError{Message: "Unauthorized"})

	default:
		h.logger.Error("Unhandled service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
	}
}
