// Package client talks to the EduPilot REST backend.
//
// # Overview
//
// Client is the transport-agnostic contract the services depend on, one
// method per backend route. HTTPClient implements it over net/http: it
// prefixes every route with /api, attaches the bearer token from a
// TokenSource, tags each request with an X-Request-ID and decodes JSON
// responses.
//
// # Error Handling
//
// Non-2xx responses become *APIError carrying the server's "detail"
// message. APIError matches the sentinels with errors.Is: ErrUnauthorized
// (401), ErrNotFound (404), ErrValidation (400, 409, 422) and ErrServer
// (5xx). Transport failures match ErrUnavailable. Nothing is retried.
//
// When a request that carried a token is answered with 401 the optional
// OnUnauthorized hook runs before the error is returned, which lets the
// application force a fresh login.
package client
