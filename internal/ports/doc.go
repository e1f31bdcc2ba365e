// Package ports defines the interfaces that connect the request pipeline to
// infrastructure.
//
// The pipeline (internal/app) and the transport invoker depend only on these
// interfaces, so tests can substitute in-memory implementations.
//
//   - [HTTPClient]: the HTTP transport collaborator
package ports
