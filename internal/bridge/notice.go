// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package bridge

import (
	"errors"
	"strings"
)

// Notice kinds.
const (
	NoticePermissionDenied   = "permission-denied"
	NoticeFailedPrecondition = "failed-precondition"
	NoticeUnauthenticated    = "unauthenticated"
	NoticeNotFound           = "not-found"
	NoticeOther              = "other"
)

// Notice is a dismissible, user-facing report of a remote failure.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// coder is implemented by errors that carry a namespaced code such as
// "store/permission-denied".
type coder interface {
	ErrorCode() string
}

// remoteMessages is matched in order against the error code; the first
// entry whose key occurs in the code wins.
var remoteMessages = []struct {
	match   string
	kind    string
	message string
}{
	{"permission-denied", NoticePermissionDenied, "The theme store rejected the request. Check that this account may edit themes."},
	{"failed-precondition", NoticeFailedPrecondition, "The theme store is not ready. Check that its schema has been migrated."},
	{"unauthenticated", NoticeUnauthenticated, "You are not signed in to the theme store. Check the admin token."},
	{"not-found", NoticeNotFound, "The theme store has no document for this theme yet."},
}

// ClassifyRemoteError maps a remote failure to a Notice. Codes are matched
// by substring, so "store/permission-denied" and "http/permission-denied"
// classify the same way.
func ClassifyRemoteError(err error) Notice {
	if err == nil {
		return Notice{}
	}
	code := err.Error()
	var c coder
	if errors.As(err, &c) {
		code = c.ErrorCode()
	}
	for _, m := range remoteMessages {
		if strings.Contains(code, m.match) {
			return Notice{Kind: m.kind, Message: m.message, Code: code}
		}
	}
	return Notice{Kind: NoticeOther, Message: "Could not reach the theme store. Your changes are kept locally.", Code: code}
}
