// Package websocket provides the live state-broadcast transport.
//
// The package uses a hub-and-spoke model: a central Hub holds all
// connected clients, and each connection runs dedicated read and write
// goroutines. Because the server hosts exactly one game instance, there is
// a single client set with no per-session routing.
//
// The hub implements engine.Observer, so subscribing it to the engine
// pushes the full GameState snapshot to every listener after each
// successful mutating operation. A newly connected client receives the
// latest snapshot immediately (initial sync). Delivery is best-effort:
// clients that cannot keep up with the broadcast are dropped.
//
// Usage:
//
//	hub := websocket.NewHub()
//	eng.Subscribe(hub)
//	hub.Broadcast(eng.Snapshot()) // seed initial sync
//	http.HandleFunc("/ws", hub.ServeWS)
package websocket
