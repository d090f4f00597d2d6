// Package api handles incoming HTTP requests for the memory exercise
// service: request decoding and validation, caller identity, and response
// formatting. It adapts the session, stats and preset services to HTTP
// and owns the translation of internal errors into status codes.
package api
