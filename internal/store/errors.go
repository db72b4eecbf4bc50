// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// RemoteError is a remote store failure tagged with a namespaced code
// such as "store/permission-denied" or "http/not-found".
type RemoteError struct {
	Code string
	Err  error
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *RemoteError) Unwrap() error { return e.Err }

// ErrorCode returns the namespaced code.
func (e *RemoteError) ErrorCode() string { return e.Code }

// Store error codes.
const (
	CodePermissionDenied   = "store/permission-denied"
	CodeUnauthenticated    = "store/unauthenticated"
	CodeFailedPrecondition = "store/failed-precondition"
	CodeUnavailable        = "store/unavailable"
	CodeUnknown            = "store/unknown"
)

// classifyPgError tags err with a store code derived from its SQLSTATE.
// Errors without a SQLSTATE are connection-level failures.
func classifyPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return &RemoteError{Code: CodeUnavailable, Err: err}
	}
	code := CodeUnknown
	switch {
	case pgErr.Code == "42501":
		code = CodePermissionDenied
	case pgErr.Code == "28000" || pgErr.Code == "28P01":
		code = CodeUnauthenticated
	case strings.HasPrefix(pgErr.Code, "23"), pgErr.Code == "42P01":
		// Constraint violations and a missing table both mean the store
		// is not in the state the write expects.
		code = CodeFailedPrecondition
	}
	return &RemoteError{Code: code, Err: err}
}
