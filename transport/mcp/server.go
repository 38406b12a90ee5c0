package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
	"github.com/Inselaffe03/mortail-coil-arena/game/service"
)

// Server exposes the game as a set of MCP tools backed directly by the
// game service.
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers all tools.
func NewServer(gameService service.GameService) *Server {
	s := &Server{
		service: gameService,
	}

	s.mcpServer = server.NewMCPServer(
		"Coil Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Coil Puzzle - MCP Interface

GAME OBJECTIVE:
Visit every open cell exactly once. Each move slides the player in one
direction until hitting a wall, a blocked cell, or an already-visited cell.

AVAILABLE TOOLS:
- game_state: Get the current board and progress
- list_levels: List all levels with their dimensions
- load_level: Load a level by id (resets the game)
- start_game: Place the player on a starting cell
- move: Slide up/down/left/right
- reset_game: Rebuild the current level
- game_instructions: Get the full rules

Pick a start cell with start_game before moving.`),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server, for mounting on HTTP or
// serving over stdio.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks, serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state: board, player position, and progress",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List all available levels with their dimensions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListLevels)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "load_level",
		Description: "Load a level by id, replacing the current game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "number",
					"description": "Level identifier",
				},
			},
			Required: []string{"id"},
		},
	}, s.handleLoadLevel)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Place the player on a starting cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "number",
					"description": "Column, 0-based from the left",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Row, 0-based from the top",
				},
			},
			Required: []string{"x", "y"},
		},
	}, s.handleStartGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide the player in a direction until stopped",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "One of: up, down, left, right",
					"enum":        []string{"up", "down", "left", "right"},
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Rebuild the current level from scratch",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the full game rules and board legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleInstructions)
}

// Tool handlers

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := s.service.GetState(ctx)
	return mcp.NewToolResultText(formatState(state)), nil
}

func (s *Server) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := s.service.ListLevels(ctx)

	var b strings.Builder
	fmt.Fprintf(&b, "Available levels (%d):\n", len(infos))
	for _, info := range infos {
		fmt.Fprintf(&b, "  level %d: %dx%d\n", info.ID, info.Width, info.Height)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleLoadLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	id, ok := args["id"].(float64)
	if !ok {
		return mcp.NewToolResultError("id must be a number"), nil
	}

	result, err := s.service.LoadLevel(ctx, int(id))
	if err != nil {
		return mcp.NewToolResultError(result.Message), nil
	}

	return mcp.NewToolResultText(result.Message + "\n\n" + formatState(s.service.GetState(ctx))), nil
}

func (s *Server) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	x, okX := args["x"].(float64)
	y, okY := args["y"].(float64)
	if !okX || !okY {
		return mcp.NewToolResultError("x and y must be numbers"), nil
	}

	result, err := s.service.Start(ctx, int(x), int(y))
	if err != nil {
		return mcp.NewToolResultError(result.Message), nil
	}

	return mcp.NewToolResultText(result.Message + "\n\n" + formatState(s.service.GetState(ctx))), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	direction, _ := args["direction"].(string)

	result, err := s.service.Move(ctx, direction)
	if err != nil {
		return mcp.NewToolResultError(result.Message), nil
	}

	return mcp.NewToolResultText(result.Message + "\n\n" + formatState(s.service.GetState(ctx))), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.Reset(ctx)
	if err != nil {
		return mcp.NewToolResultError(result.Message), nil
	}

	return mcp.NewToolResultText(result.Message + "\n\n" + formatState(s.service.GetState(ctx))), nil
}

func (s *Server) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(`COIL PUZZLE RULES

1. Load a level (load_level), then choose any open cell and start_game there.
2. Each move slides the player in one cardinal direction until the next cell
   is a wall, blocked, or already visited. All cells passed through become
   visited.
3. You win by visiting every open cell. If no direction offers a legal step
   before full coverage, the game is stuck and must be reset or reloaded.
4. A move that cannot take even a single step is rejected and changes nothing.

BOARD LEGEND (game_state):
  P  player          o  visited cell
  .  open cell       #  blocked cell`), nil
}

// formatState renders the game state as text for tool output.
func formatState(state *engine.GameState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Level %d (%dx%d), visited %d/%d\n", state.LevelID, state.Width, state.Height, state.VisitedCount, state.TotalCells)
	switch {
	case state.Won:
		b.WriteString("Status: WON\n")
	case state.Finished:
		b.WriteString("Status: STUCK\n")
	case state.Started:
		fmt.Fprintf(&b, "Status: active, player at (%d,%d)\n", state.PlayerX, state.PlayerY)
	default:
		b.WriteString("Status: waiting for start_game\n")
	}

	b.WriteString("\n")
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			cell := state.Board[y][x]
			switch {
			case x == state.PlayerX && y == state.PlayerY:
				b.WriteByte('P')
			case cell.Blocked:
				b.WriteByte('#')
			case cell.Visited:
				b.WriteByte('o')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}
