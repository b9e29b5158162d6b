// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package gateway

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Kind classifies a normalized gateway failure.
type Kind string

// Failure kinds. Every error leaving the gateway carries exactly one.
const (
	// KindServer: a response was received with a non-2xx status.
	KindServer Kind = "server"

	// KindNetwork: the request was dispatched but no response arrived.
	KindNetwork Kind = "network"

	// KindClient: request construction or response decoding failed locally.
	KindClient Kind = "client"

	// KindAuth: the refresh exchange was exhausted and the session was
	// cleared; the caller must re-authenticate.
	KindAuth Kind = "auth"
)

// Fixed messages for failures that carry no server-provided detail.
const (
	networkErrMessage = "unable to reach the server, check your connection"
	genericErrMessage = "something went wrong, please try again"
	authErrMessage    = "session expired, please log in again"
)

// Error is the uniform failure shape crossing the gateway boundary. The
// gateway never lets a raw transport error escape; stores and pages switch
// on Kind and display Message.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s error: %s", e.Kind, e.Message)
}

// errorBody is the error payload shape the backend responds with. Some
// endpoints use "error", others "message".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// serverError builds a KindServer error from a non-2xx response, extracting
// the message from the body's "error" or "message" field with a generic
// fallback.
func serverError(status int, body []byte) *Error {
	msg := genericErrMessage
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Error != "":
			msg = parsed.Error
		case parsed.Message != "":
			msg = parsed.Message
		}
	}
	return &Error{Kind: KindServer, Status: status, Message: msg}
}

// networkError builds a KindNetwork error with the fixed connectivity message.
func networkError() *Error {
	return &Error{Kind: KindNetwork, Status: 0, Message: networkErrMessage}
}

// clientError builds a KindClient error from a local failure.
func clientError(err error) *Error {
	msg := genericErrMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: KindClient, Status: 0, Message: msg}
}

// authError builds a KindAuth error signaling a forced logout.
func authError() *Error {
	return &Error{Kind: KindAuth, Status: 0, Message: authErrMessage}
}

// IsAuth reports whether err is a normalized authentication failure.
func IsAuth(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindAuth
}

// IsNetwork reports whether err is a normalized connectivity failure.
func IsNetwork(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindNetwork
}
