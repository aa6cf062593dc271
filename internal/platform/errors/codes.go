// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Session lifecycle errors
	CodeInvalidConfiguration Code = "PEBBLES_INVALID_CONFIGURATION"
	CodeUninitializedState   Code = "PEBBLES_UNINITIALIZED_STATE"
	CodeSessionExists        Code = "PEBBLES_SESSION_EXISTS"

	// Collaborator errors
	CodeRandomUnavailable Code = "PEBBLES_RANDOM_UNAVAILABLE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeInvalidConfiguration:
		return codes.InvalidArgument
	case CodeUninitializedState, CodeSessionExists:
		return codes.FailedPrecondition
	case CodeRandomUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
