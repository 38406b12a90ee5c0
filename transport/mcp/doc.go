// Package mcp exposes the game as MCP tools so model-driven clients can
// play over the Model Context Protocol.
//
// The tools call the game service directly and return human-readable text
// renderings of the board. The server can be mounted on an HTTP endpoint
// (POST /mcp) or served over stdio via the mcp subcommand.
package mcp
