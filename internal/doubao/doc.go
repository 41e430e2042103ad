// Package doubao is a small client for the Doubao (Volcengine Ark) image
// generation endpoint.
//
// GenerationRequest mirrors the request body accepted by the service. Every
// optional field is a pointer or an omitempty value so that only fields a
// caller explicitly set are serialized; the service applies its own defaults
// to everything else.
//
// GenerationResponse mirrors the response body. The raw body is retained so
// callers can relay it without losing fields this package does not model.
package doubao
