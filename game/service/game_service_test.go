package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
	"github.com/Inselaffe03/mortail-coil-arena/game/level"
)

func newTestService(t *testing.T) GameService {
	t.Helper()

	catalog, err := level.NewCatalog([]level.Definition{
		{ID: 1, Width: 3, Height: 1, Cells: "..."},
		{ID: 2, Width: 3, Height: 1, Cells: ".X."},
	})
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}

	eng, err := engine.NewEngine(catalog)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return NewGameService(eng, catalog)
}

func TestGetState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	st := svc.GetState(ctx)
	if st.LevelID != 1 || st.Started {
		t.Errorf("Unexpected initial state: %+v", st)
	}

	// The returned state is a snapshot; mutating it must not leak back.
	st.Board[0][0].Visited = true
	if svc.GetState(ctx).Board[0][0].Visited {
		t.Error("GetState must return an isolated snapshot")
	}
}

func TestListLevels(t *testing.T) {
	svc := newTestService(t)

	infos := svc.ListLevels(context.Background())
	if len(infos) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(infos))
	}
	if infos[0].ID != 1 || infos[1].ID != 2 {
		t.Errorf("Unexpected level order: %+v", infos)
	}
}

func TestLoadLevel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.LoadLevel(ctx, 2)
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Expected success, got %+v", res)
	}
	if svc.GetState(ctx).LevelID != 2 {
		t.Error("Level was not switched")
	}

	res, err = svc.LoadLevel(ctx, 99)
	if !errors.Is(err, level.ErrLevelNotFound) {
		t.Fatalf("Expected ErrLevelNotFound, got %v", err)
	}
	if res.Success {
		t.Error("Failure result must not report success")
	}
	if !strings.Contains(res.Message, "not found") {
		t.Errorf("Unexpected failure message: %q", res.Message)
	}
}

func TestStart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Start(ctx, 0, 0)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Expected success, got %+v", res)
	}

	res, err = svc.Start(ctx, 1, 0)
	if !errors.Is(err, engine.ErrAlreadyStarted) {
		t.Fatalf("Expected ErrAlreadyStarted, got %v", err)
	}
	if res.Success || !strings.Contains(res.Message, "already started") {
		t.Errorf("Unexpected failure result: %+v", res)
	}
}

func TestStart_FailureMessages(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		levelID  int
		x, y     int
		wantErr  error
		fragment string
	}{
		{"out of bounds", 1, 9, 0, engine.ErrOutOfBounds, "outside the grid"},
		{"blocked", 2, 1, 0, engine.ErrBlockedCell, "blocked cell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			if _, err := svc.LoadLevel(ctx, tt.levelID); err != nil {
				t.Fatalf("LoadLevel failed: %v", err)
			}

			res, err := svc.Start(ctx, tt.x, tt.y)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(res.Message, tt.fragment) {
				t.Errorf("Message %q missing %q", res.Message, tt.fragment)
			}
		})
	}
}

func TestMove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, 0, 0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	res, err := svc.Move(ctx, "right")
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !res.Success || !res.Won || !res.Finished {
		t.Errorf("Expected winning move, got %+v", res)
	}
	if res.PlayerX != 2 || res.PlayerY != 0 {
		t.Errorf("Expected player at (2,0), got (%d,%d)", res.PlayerX, res.PlayerY)
	}
	if res.VisitedCount != 3 || res.TotalCells != 3 {
		t.Errorf("Expected 3/3 visited, got %d/%d", res.VisitedCount, res.TotalCells)
	}
	if !strings.Contains(res.Message, "win") {
		t.Errorf("Winning message missing: %q", res.Message)
	}
}

func TestMove_Failures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Before start.
	res, err := svc.Move(ctx, "up")
	if !errors.Is(err, engine.ErrNotActive) {
		t.Fatalf("Expected ErrNotActive, got %v", err)
	}
	if res.Success {
		t.Error("Failure result must not report success")
	}

	// Bad direction token: parsed before touching the engine.
	res, err = svc.Move(ctx, "sideways")
	if !errors.Is(err, engine.ErrInvalidDirection) {
		t.Fatalf("Expected ErrInvalidDirection, got %v", err)
	}
	if !strings.Contains(res.Message, "sideways") {
		t.Errorf("Message should echo the bad token: %q", res.Message)
	}

	// Blocked slide.
	if _, err := svc.LoadLevel(ctx, 2); err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if _, err := svc.Start(ctx, 0, 0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	res, err = svc.Move(ctx, "right")
	if !errors.Is(err, engine.ErrNoMovement) {
		t.Fatalf("Expected ErrNoMovement, got %v", err)
	}
	if res.Success {
		t.Error("Blocked move must not report success")
	}
}

func TestReset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, 0, 0); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := svc.Move(ctx, "right"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	res, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !res.Success {
		t.Errorf("Expected success, got %+v", res)
	}

	st := svc.GetState(ctx)
	if st.Started || st.Finished || st.VisitedCount != 0 {
		t.Errorf("Reset left stale state: %+v", st)
	}
}
