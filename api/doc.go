// Package api exposes the game over a small REST surface.
//
// The server is a thin request parsing and validation wrapper: it decodes
// requests, invokes the service layer, and maps engine sentinel errors to
// HTTP status codes. Game semantics live entirely in the engine; state
// broadcasting happens through the engine's observer, not here.
//
// Routes:
//
//	GET  /api/state              current game state snapshot
//	GET  /api/levels             level catalog listing
//	POST /api/levels/{id}/load   load a level
//	POST /api/game/start         body {"x": int, "y": int}
//	POST /api/game/move          body {"direction": "up|down|left|right"}
//	POST /api/game/reset         rebuild the current level
//	GET  /api/health             liveness check
//	GET  /ws                     WebSocket upgrade for live state updates
package api
