package api

import (
	"errors"
	"github.com/burenotti/go_wellness_backend/internal/domain/profile"
	"github.com/labstack/echo/v4"
	"net/http"
	"time"
)

func (s *Server) MountProfile() {
	loginRequired := LoginRequired(s.authorizer)

	s.handler.POST("/profiles/me", s.CreateMyProfile, loginRequired)
	s.handler.GET("/profiles/me", s.GetMyProfile, loginRequired)
	s.handler.PATCH("/profiles/me", s.UpdateMyProfile, loginRequired)
}

type CreateProfileRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"max=100"`
	LastName  string `json:"last_name,omitempty" validate:"max=100"`
	BirthDate *Date  `json:"birth_date,omitempty"`
	Sex       string `json:"sex,omitempty" validate:"omitempty,oneof=male female"`
}

type ProfileResponse struct {
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	BirthDate *Date     `json:"birth_date,omitempty"`
	Sex       string    `json:"sex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func profileResponse(p *profile.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: NewDate(p.BirthDate),
		Sex:       p.Sex,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *Server) CreateMyProfile(c echo.Context) error {
	var req CreateProfileRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	user := currentUser(c)
	p, err := s.profileService.CreateProfile(
		c.Request().Context(),
		user.UserID,
		req.FirstName,
		req.LastName,
		req.BirthDate.Ptr(),
		req.Sex,
	)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrProfileExists):
			return JsonError(c, http.StatusConflict, "profile already exists")
		case errors.Is(err, profile.ErrInvalidSex):
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusCreated, profileResponse(p))
}

func (s *Server) GetMyProfile(c echo.Context) error {
	user := currentUser(c)

	p, err := s.profileService.GetProfileByID(c.Request().Context(), user.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return JsonError(c, http.StatusNotFound, "profile not found")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, profileResponse(p))
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	BirthDate *Date   `json:"birth_date"`
	Sex       *string `json:"sex" validate:"omitempty,oneof=male female"`
}

func (s *Server) UpdateMyProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := s.bind(c, &req); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	user := currentUser(c)
	p, err := s.profileService.UpdateProfile(c.Request().Context(), user.UserID, profile.Update{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate.Ptr(),
		Sex:       req.Sex,
	})
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrProfileNotFound):
			return JsonError(c, http.StatusNotFound, "profile not found")
		case errors.Is(err, profile.ErrInvalidSex):
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, profileResponse(p))
}
