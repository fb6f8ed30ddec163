package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents page fetch errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeExtraction represents selector or price parsing errors
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypePersistence represents history storage errors
	ErrorTypePersistence ErrorType = "persistence"
	// ErrorTypeNotification represents alert delivery errors
	ErrorTypeNotification ErrorType = "notification"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// TrackerError represents a tracker-specific error
type TrackerError struct {
	Type     ErrorType
	Retailer string
	Message  string
	Err      error
	Time     time.Time
}

// Error implements the error interface
func (e *TrackerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Retailer, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Retailer, e.Message)
}

// Unwrap returns the underlying error
func (e *TrackerError) Unwrap() error {
	return e.Err
}

// New creates a new TrackerError
func New(errType ErrorType, retailer, message string, err error) *TrackerError {
	return &TrackerError{
		Type:     errType,
		Retailer: retailer,
		Message:  message,
		Err:      err,
		Time:     time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(retailer, message string, err error) *TrackerError {
	return New(ErrorTypeNetwork, retailer, message, err)
}

// NewExtraction creates a new extraction error
func NewExtraction(retailer, message string, err error) *TrackerError {
	return New(ErrorTypeExtraction, retailer, message, err)
}

// NewPersistence creates a new persistence error
func NewPersistence(message string, err error) *TrackerError {
	return New(ErrorTypePersistence, "", message, err)
}

// NewNotification creates a new notification error
func NewNotification(message string, err error) *TrackerError {
	return New(ErrorTypeNotification, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *TrackerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
