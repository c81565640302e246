package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/club_finance_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
	// Location is the club's time zone. Nil means UTC.
	Location *time.Location
}

// Now returns the current time in the club's time zone.
func (s *BaseService) Now() time.Time {
	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}
	return now().In(s.location())
}

func (s *BaseService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// ServiceOption configures the shared BaseService fields of any service.
type ServiceOption func(*BaseService)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

// WithLocation sets the club's time zone.
func WithLocation(loc *time.Location) ServiceOption {
	return func(b *BaseService) {
		b.Location = loc
	}
}

func newBaseService(opts []ServiceOption) BaseService {
	var b BaseService
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
