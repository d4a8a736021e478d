// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks personal and financial data in production
// ============================================================================
// Movement concepts, amounts and user names never reach production logs in
// clear text. Outside production everything is logged as is.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction switches masking on.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	// LogLevel filters output (DEBUG, INFO, WARN, ERROR).
	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	return ParseLogLevel(os.Getenv("LOG_LEVEL"))
}

// ParseLogLevel maps a LOG_LEVEL value to a level, defaulting to INFO.
func ParseLogLevel(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// ============================================================================
// MASKING PATTERNS
// ============================================================================

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Amounts with a currency marker
	amountWithCurrencyRegex = regexp.MustCompile(`(\$\s*\d[\d,]*([.]\d{1,2})?)|(\b\d[\d,]*([.]\d{1,2})?\s*(MXN|USD|EUR)\b)`)

	cardRegex = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)

	// Postgres echoes offending values back in error details
	detailRegex = regexp.MustCompile(`\(([^()]*)\)=\(([^()]*)\)`)
)

// ============================================================================
// MASKING FUNCTIONS
// ============================================================================

// MaskString masks sensitive data inside free text.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := emailRegex.ReplaceAllLiteralString(input, "***@***.***")
	result = cardRegex.ReplaceAllString(result, "****-****-****-****")
	result = amountWithCurrencyRegex.ReplaceAllLiteralString(result, "$***")
	result = detailRegex.ReplaceAllString(result, "($1)=(***)")
	return result
}

// MaskAmount masks a movement amount.
func MaskAmount(amount decimal.Decimal) string {
	if IsProduction {
		return "***"
	}
	return amount.StringFixed(2)
}

// MaskName keeps the first character of a user name or concept.
func MaskName(name string) string {
	if !IsProduction {
		return name
	}
	if name == "" {
		return "***"
	}
	r := []rune(name)
	return string(r[0]) + "***"
}

// ============================================================================
// SAFE LOGGING FUNCTIONS
// ============================================================================

// SafeLog logs regardless of LOG_LEVEL.
func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

// SafeDebug logs only when LOG_LEVEL=DEBUG.
func SafeDebug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeError(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// DOMAIN LOGGING
// ============================================================================

// LogMovementAction logs a movement mutation without exposing its content.
func LogMovementAction(action string, id int64, kind string, amount decimal.Decimal) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[Movement] %s - ID: %d Kind: %s Amount: %s", action, id, kind, MaskAmount(amount))
}

// LogIdentityAction logs a login or registration attempt.
func LogIdentityAction(action string, name string, success bool) {
	if LogLevel > LogLevelInfo {
		return
	}
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Identity] %s - User: %s Status: %s", action, MaskName(name), status)
}

// LogAPIRequest logs a finished request.
func LogAPIRequest(method string, path string, requestID string, statusCode int, duration string) {
	if statusCode < 500 && LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[API] %s %s - Request: %s Status: %d Duration: %s",
		method,
		path,
		requestID,
		statusCode,
		duration)
}

// LogWebSocket logs a change feed event.
func LogWebSocket(action string, detail string) {
	if action == "error" {
		SafeError("[WS] %s - %s", action, detail)
		return
	}
	SafeDebug("[WS] %s - %s", action, detail)
}

// ============================================================================
// UTILITIES
// ============================================================================

func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

// LogStartup logs the application banner.
func LogStartup(appName string, version string, port string, dialect string) {
	log.Printf("🚀 %s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	log.Printf("   Store: %s", dialect)
	log.Printf("   Log Level: %d", LogLevel)
	if IsProduction {
		log.Printf("   ⚠️  Production mode: Sensitive data will be masked in logs")
	}
}
