// Package service provides the business logic layer between the
// transports (HTTP, WebSocket, MCP) and the game engine.
//
// The service owns the process-wide serialization of game operations: a
// single mutex guards the one engine instance, so no two mutating
// operations ever interleave. It also translates engine sentinel errors
// into structured results with human-readable messages, leaving status
// code mapping to the transport.
//
// Usage:
//
//	catalog := level.DefaultCatalog()
//	eng, _ := engine.NewEngine(catalog)
//	svc := service.NewGameService(eng, catalog)
//
//	result, err := svc.Move(ctx, "up")
package service
