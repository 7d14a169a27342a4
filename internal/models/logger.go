package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// dbLogger routes gorm log output through zerolog.
type dbLogger struct {
	log zerolog.Logger

	// Queries slower than this are logged as warnings.
	slowThreshold time.Duration
}

func (l *dbLogger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *dbLogger) Info(_ context.Context, format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}

func (l *dbLogger) Warn(_ context.Context, format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l *dbLogger) Error(_ context.Context, format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l *dbLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	event := l.log.Debug()
	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound):
		event = l.log.Error().Err(err)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		event = l.log.Warn()
	}

	event.Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("database query")
}
