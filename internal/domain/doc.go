// Package domain contains the core entities and the error taxonomy for curlite.
//
// This package has no dependencies on infrastructure concerns (HTTP transport,
// flags, logging). It holds the values that flow through a single invocation:
//
//   - [ValidatedURL]: a URL that passed the two-phase URL check
//   - [RequestSpec]: method, URL, body and headers ready for the transport
//   - [Response]: a completed HTTP response, whatever its status
//
// Every user-facing failure is an [*Error] carrying a [Kind]. Callers match
// kinds with errors.Is against the Err* sentinels, or use [KindOf].
package domain
