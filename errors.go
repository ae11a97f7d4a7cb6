package xsm

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the state machine
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// State was not found in the tree
	ErrCodeStateNotFound
	// Machine has not been initialized
	ErrCodeMachineNotInitialized
	// Machine was already initialized
	ErrCodeAlreadyInitialized
	// Tree configuration is invalid
	ErrCodeInvalidConfiguration
	// Two states resolve to the same qualified name
	ErrCodeAmbiguousName
	// A state was moved to a status its current one cannot lead to
	ErrCodeInvalidStatus
)

// StateError represents state-related errors
type StateError struct {
	Code    ErrorCode
	StateID string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error [%s]: %s", e.StateID, e.Message)
}

// NewStateNotFoundError creates a new state not found error
func NewStateNotFoundError(stateID string) *StateError {
	return &StateError{
		Code:    ErrCodeStateNotFound,
		StateID: stateID,
		Message: fmt.Sprintf("state '%s' not found", stateID),
	}
}

// NewAmbiguousNameError reports two states registering under the same qualified name
func NewAmbiguousNameError(key string) *StateError {
	return &StateError{
		Code:    ErrCodeAmbiguousName,
		StateID: key,
		Message: fmt.Sprintf("qualified name '%s' is used by more than one state", key),
	}
}

// NewInvalidStatusError reports an illegal status change of the state at path
func NewInvalidStatusError(path string, from, to Status) *StateError {
	return &StateError{
		Code:    ErrCodeInvalidStatus,
		StateID: path,
		Message: fmt.Sprintf("illegal status change %s -> %s", from, to),
	}
}

// ConfigurationError represents tree configuration errors
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// MachineError represents machine lifecycle errors
type MachineError struct {
	Code      ErrorCode
	Operation string
	Message   string
}

func (e *MachineError) Error() string {
	return fmt.Sprintf("machine error in %s: %s", e.Operation, e.Message)
}

// NewMachineNotInitializedError creates an error for operations requiring an initialized machine
func NewMachineNotInitializedError(operation string) *MachineError {
	return &MachineError{
		Code:      ErrCodeMachineNotInitialized,
		Operation: operation,
		Message:   "machine is not initialized",
	}
}

// NewMachineError creates a new machine error with custom values
func NewMachineError(code ErrorCode, operation string, message string) *MachineError {
	return &MachineError{
		Code:      code,
		Operation: operation,
		Message:   message,
	}
}

// IsStateError checks if an error is a StateError
func IsStateError(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsMachineError checks if an error is a MachineError
func IsMachineError(err error) bool {
	var target *MachineError
	return errors.As(err, &target)
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	var stateErr *StateError
	if errors.As(err, &stateErr) {
		return stateErr.Code
	}
	var machineErr *MachineError
	if errors.As(err, &machineErr) {
		return machineErr.Code
	}
	if IsConfigurationError(err) {
		return ErrCodeInvalidConfiguration
	}
	return ErrCodeNone
}
