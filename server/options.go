package server

import (
	"log/slog"

	"github.com/sig-0/tcbrates/server/config"
)

type Option func(s *Server)

// WithLogger specifies the logger for the server
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithConfig specifies the config for the server
func WithConfig(c *config.Config) Option {
	return func(s *Server) {
		s.config = c
	}
}

// WithStatus specifies the source of the provider watch statuses
func WithStatus(src StatusSource) Option {
	return func(s *Server) {
		s.status = src
	}
}
