package api

import (
	"github.com/burenotti/go_wellness_backend/internal/app/authapp"
	"log/slog"
	"net"
	"strconv"
	"time"
)

type Option func(*Server)

func Addr(host string, port int) Option {
	return func(s *Server) {
		s.addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
}

func Logger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func Authorizer(a *authapp.Authorizer) Option {
	return func(s *Server) {
		s.authorizer = a
	}
}

func WithAuthService(service AuthService) Option {
	return func(s *Server) {
		s.authService = service
	}
}

func WithProfileService(service ProfileService) Option {
	return func(s *Server) {
		s.profileService = service
	}
}

func WithReadingService(service ReadingService) Option {
	return func(s *Server) {
		s.readingService = service
	}
}

func WithWellnessService(service WellnessService) Option {
	return func(s *Server) {
		s.wellnessService = service
	}
}

// Clock replaces the time source used for reading timestamps.
func Clock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}
