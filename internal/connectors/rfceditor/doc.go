// Package rfceditor implements driven.RemoteSource for the RFC Editor.
//
// It downloads the plain-text RFC index (rfc-index.txt) and individual RFC
// texts (rfc{number}.txt) over HTTPS.
//
// # Rate Limiting
//
// Requests pass through a token bucket (default 2 per second) so that bursts
// of cache misses stay polite towards rfc-editor.org. A 429 or 503 response
// carrying Retry-After pauses all further requests until that time.
//
// # Retries
//
// Network errors and 408, 429 and 5xx responses are retried with exponential
// backoff. 404 and 410 are reported as not found immediately. Every request
// is bounded by the configured timeout.
package rfceditor
