package api

import (
	"errors"
	wellnessapp "github.com/burenotti/go_wellness_backend/internal/app/wellness"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"net/http"
	"time"
)

func (s *Server) MountWellness() {
	loginRequired := LoginRequired(s.authorizer)

	routes := s.handler.Group("/wellness", loginRequired)
	routes.GET("/score", s.GetScore)
	routes.POST("/score", s.RecomputeScore)
	routes.GET("/history", s.GetScoreHistory)
	routes.GET("/trend", s.GetTrend)
}

type Score struct {
	Date string `json:"date"`
	wellness.Components
}

type ScoreStateResponse struct {
	Score     *Score    `json:"score"`
	Trend     float64   `json:"trend"`
	Message   string    `json:"message,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func scoreResponse(r *wellness.Record) *Score {
	return &Score{
		Date:       r.Date.Format(time.DateOnly),
		Components: r.Components,
	}
}

// GetScore returns today's score, calculating it on the first request of the day.
func (s *Server) GetScore(c echo.Context) error {
	return s.writeState(c, s.wellnessService.Refresh(c.Request().Context()))
}

func (s *Server) RecomputeScore(c echo.Context) error {
	return s.writeState(c, s.wellnessService.Recompute(c.Request().Context()))
}

// writeState answers with the last good score even when the latest attempt failed.
// Only a state without any score maps its message to an error status.
func (s *Server) writeState(c echo.Context, st wellnessapp.State) error {
	resp := ScoreStateResponse{
		Trend:     st.Trend,
		Message:   st.Message,
		UpdatedAt: st.UpdatedAt,
	}
	if st.Current != nil {
		resp.Score = scoreResponse(st.Current)
		return c.JSON(http.StatusOK, resp)
	}

	switch st.Message {
	case "":
		return c.JSON(http.StatusOK, resp)
	case wellnessapp.MessageNotSignedIn:
		return c.JSON(http.StatusUnauthorized, resp)
	case wellnessapp.MessageProfileNotFound:
		return c.JSON(http.StatusNotFound, resp)
	default:
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
}

type HistoryRequest struct {
	Days int `query:"days" validate:"gte=0,lte=365"`
}

type HistoryResponse struct {
	Scores []*Score `json:"scores"`
}

func (s *Server) GetScoreHistory(c echo.Context) error {
	var req HistoryRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	history, err := s.wellnessService.History(c.Request().Context(), req.Days)
	if err != nil {
		return s.wellnessError(c, err)
	}

	return c.JSON(http.StatusOK, HistoryResponse{
		Scores: lo.Map(history, func(r *wellness.Record, _ int) *Score {
			return scoreResponse(r)
		}),
	})
}

type TrendResponse struct {
	Trend float64 `json:"trend"`
}

func (s *Server) GetTrend(c echo.Context) error {
	trend, err := s.wellnessService.Trend(c.Request().Context())
	if err != nil {
		return s.wellnessError(c, err)
	}
	return c.JSON(http.StatusOK, TrendResponse{Trend: trend})
}

func (s *Server) wellnessError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, wellnessapp.ErrNotSignedIn):
		return JsonError(c, http.StatusUnauthorized, wellnessapp.Message(err))
	case errors.Is(err, wellnessapp.ErrProfileNotFound):
		return JsonError(c, http.StatusNotFound, wellnessapp.Message(err))
	}
	s.logger.Error("wellness request failed", "error", err)
	return JsonError(c, http.StatusServiceUnavailable, wellnessapp.Message(err))
}
