package service

import (
	"errors"
	"fmt"
)

// ErrMutationInFlight is returned when a mutation of the same kind is already
// running on this coordinator. The duplicate invocation issues no request.
var ErrMutationInFlight = errors.New("mutation already in flight")

// CatalogError indicates the remote catalog rejected a read or write
// (constraint violation, not-found, query failure). It is caught at the
// mutation coordinator boundary and never shown raw to the operator.
type CatalogError struct {
	Op  string
	Err error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s failed: %v", e.Op, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// TransportError indicates a job invocation never reached or never returned
// from the job endpoint. Distinct from a job that completed with failures,
// which is a partial success.
type TransportError struct {
	Job string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("job %s transport failure: %v", e.Job, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
