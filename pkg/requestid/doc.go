// Package requestid correlates log records belonging to one HTTP request.
//
// Middleware assigns every request an opaque ID, reusing a well-formed
// client supplied X-Request-ID and generating a UUID otherwise. The ID
// travels in the request context and is echoed back in the response
// header; LoggerExtractor feeds it into the structured logger so every
// record of a request carries the same request_id attribute.
package requestid
