package api

import (
	"errors"
	"github.com/burenotti/go_wellness_backend/internal/domain/metric"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"net/http"
	"time"
)

func (s *Server) MountReadings() {
	loginRequired := LoginRequired(s.authorizer)
	s.handler.POST("/readings", s.RecordReading, loginRequired)
	s.handler.GET("/readings", s.ListReadings, loginRequired)
}

type RecordReadingRequest struct {
	ReadingID  string     `json:"reading_id" validate:"omitempty,uuid"`
	Kind       string     `json:"kind" validate:"required"`
	Value      *float64   `json:"value" validate:"required,gte=0"`
	RecordedAt *time.Time `json:"recorded_at"`
}

type Reading struct {
	ReadingID  string    `json:"reading_id"`
	Kind       string    `json:"kind"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func readingResponse(r *metric.Reading) Reading {
	return Reading{
		ReadingID:  r.ReadingID,
		Kind:       string(r.Kind),
		Value:      r.Value,
		RecordedAt: r.RecordedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func (s *Server) RecordReading(c echo.Context) error {
	var req RecordReadingRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	kind, err := metric.ParseKind(req.Kind)
	if err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	readingID := req.ReadingID
	if readingID == "" {
		readingID = uuid.New().String()
	}
	recordedAt := s.now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	user := currentUser(c)
	r, err := s.readingService.RecordReading(c.Request().Context(), readingID, user.UserID, kind, *req.Value, recordedAt)
	if err != nil {
		if errors.Is(err, metric.ErrReadingExists) {
			return JsonError(c, http.StatusConflict, "reading already exists")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusCreated, readingResponse(r))
}

type ListReadingsRequest struct {
	Kind  string `query:"kind"`
	Limit int    `query:"limit" validate:"gte=0,lte=1000"`
}

type ListReadingsResponse struct {
	Readings []Reading `json:"readings"`
}

func (s *Server) ListReadings(c echo.Context) error {
	var req ListReadingsRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	var kind metric.Kind
	if req.Kind != "" {
		var err error
		if kind, err = metric.ParseKind(req.Kind); err != nil {
			return JsonError(c, http.StatusBadRequest, err)
		}
	}

	user := currentUser(c)
	lst, err := s.readingService.ListReadings(c.Request().Context(), user.UserID, kind, req.Limit)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, ListReadingsResponse{
		Readings: lo.Map(lst, func(r *metric.Reading, _ int) Reading {
			return readingResponse(r)
		}),
	})
}
