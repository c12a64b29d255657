package envcfg

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidLogLevel is returned when a log level string is not recognized.
var ErrInvalidLogLevel = errors.New("invalid log level")

type Intish interface {
	int | int8 | int16 | int32 | int64 | time.Duration
}

type Uintish interface {
	uint | uint8 | uint16 | uint32 | uint64
}

type Numeric interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64 | int | uint | time.Duration
}

func parseBool(value string) (bool, error) {
	return strconv.ParseBool(value)
}

func parseInt64(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}

func parseUint64(value string) (uint64, error) {
	return strconv.ParseUint(value, 10, 64)
}

func parseFloat64(value string) (float64, error) {
	return strconv.ParseFloat(value, 64)
}

func parseDuration(value string) (time.Duration, error) {
	return time.ParseDuration(value)
}

func trimSpace(s string) (string, error) {
	return strings.TrimSpace(s), nil
}

func toLower(s string) (string, error) {
	return strings.ToLower(s), nil
}

// parseSlogLevel accepts "debug", "info", "warn", and "error".
func parseSlogLevel(value string) (slog.Level, error) {
	switch value {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, value)
	}
}

// castNumeric converts a numeric value from one type to another.
// Note: this may truncate or lose precision depending on the types involved.
func castNumeric[A Numeric, B Numeric](value A) (B, error) { //nolint:ireturn
	return B(value), nil
}
