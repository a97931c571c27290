package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeRender represents browser-render service errors
	ErrorTypeRender ErrorType = "render"
	// ErrorTypeExport represents export errors
	ErrorTypeExport ErrorType = "export"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// HarvestError represents an error raised while harvesting a site
type HarvestError struct {
	Type    ErrorType
	Site    string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *HarvestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Site, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Site, e.Message)
}

// Unwrap returns the underlying error
func (e *HarvestError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is worth retrying on a later page
func (e *HarvestError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork, ErrorTypeRender:
		return true
	default:
		return false
	}
}

// New creates a new HarvestError
func New(errType ErrorType, site, message string, err error) *HarvestError {
	return &HarvestError{
		Type:    errType,
		Site:    site,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(site, message string, err error) *HarvestError {
	return New(ErrorTypeNetwork, site, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(site, message string, err error) *HarvestError {
	return New(ErrorTypeParsing, site, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(site string, duration time.Duration) *HarvestError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, site, message, nil)
}

// NewRender creates a new render error
func NewRender(site, message string, err error) *HarvestError {
	return New(ErrorTypeRender, site, message, err)
}

// NewExport creates a new export error
func NewExport(message string, err error) *HarvestError {
	return New(ErrorTypeExport, "", message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(site, message string, err error) *HarvestError {
	return New(ErrorTypePublisher, site, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *HarvestError {
	return New(ErrorTypeConfiguration, "", message, err)
}
