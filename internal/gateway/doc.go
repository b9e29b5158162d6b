// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

/*
Package gateway is the single outbound-call abstraction wrapping every
backend endpoint.

The gateway enforces the authentication and error contracts uniformly:

  - Request augmentation: when an access token is present it is attached as
    a bearer credential; nothing else about the request is modified.
  - 401 interception: an authentication-failure response triggers one
    transparent token refresh followed by a retry of the exact original
    request. The retried flag travels in the per-request value, so a request
    is retried at most once; a failed refresh clears the session, fires the
    session-expired hook and surfaces an auth error.
  - Error normalization: every failure is converted to *Error (server,
    network, client or auth kind) before it reaches a store or page. Raw
    transport errors never cross the gateway boundary.

Stores consume the API interface; *Client implements it directly and
*BreakerClient decorates it with a circuit breaker for flaky backends.
Image URL helpers live here too since they share the endpoint configuration.
*/
package gateway
