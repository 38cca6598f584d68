package http_server

import (
	"net"
	"time"

	"github.com/duccv/weather-tracker/internal/apperror"
)

const (
	_defaultAddr            = ":80"
	_defaultTimeout         = 5 * time.Second
	_defaultShutdownTimeout = 10 * time.Second
)

// Option -.
type Option func(*Server)

// Port -.
func Port(port string) Option {
	return func(s *Server) {
		s.address = net.JoinHostPort("", port)
	}
}

// Timeout sets the per-request handler timeout.
func Timeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// ShutdownTimeout -.
func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// Translator sets the translator used for errors raised by the server
// itself, such as handler timeouts.
func Translator(tr *apperror.Translator) Option {
	return func(s *Server) {
		if tr != nil {
			s.translator = tr
		}
	}
}
