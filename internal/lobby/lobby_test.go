package lobby

import "testing"

func TestLobbyJoinAndStart(t *testing.T) {
	l := NewLobby("abc123")

	if err := l.Join("p1", "Alice"); err != nil {
		t.Fatalf("join p1: %v", err)
	}
	if err := l.Join("p2", "Bob"); err != nil {
		t.Fatalf("join p2: %v", err)
	}
	if l.CanStart() {
		t.Error("should not start before everyone is ready")
	}

	l.SetReady("p1", true)
	l.SetReady("p2", true)
	if !l.CanStart() {
		t.Error("should start with two ready players")
	}

	if err := l.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := l.Start(); err == nil {
		t.Error("second start should fail")
	}
	if err := l.Join("p3", "Carol"); err == nil {
		t.Error("join after start should fail")
	}
}

func TestLobbyRejoinKeepsSeat(t *testing.T) {
	l := NewLobby("abc123")
	l.Join("p1", "Alice")
	l.Join("p2", "Bob")
	// Reconnecting under the same ID keeps the seat, updates the name.
	if err := l.Join("p1", "Alicia"); err != nil {
		t.Fatalf("rejoin: %v", err)
	}

	players := l.GetPlayers()
	if len(players) != 2 {
		t.Fatalf("players = %d, want 2", len(players))
	}
	if players[0].ID != "p1" || players[0].Name != "Alicia" {
		t.Errorf("seat 0 = %+v, want p1/Alicia", players[0])
	}
}

func TestLobbyFull(t *testing.T) {
	l := NewLobby("abc123")
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		if err := l.Join(id, id); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}
	if err := l.Join("p5", "p5"); err == nil {
		t.Error("fifth join should fail")
	}
}

func TestLobbyLeave(t *testing.T) {
	l := NewLobby("abc123")
	l.Join("p1", "Alice")
	l.Join("p2", "Bob")
	l.Leave("p1")

	players := l.GetPlayers()
	if len(players) != 1 || players[0].ID != "p2" {
		t.Errorf("players = %+v, want only p2", players)
	}
	if l.CanStart() {
		t.Error("one player cannot start")
	}
}

func TestMarkStarted(t *testing.T) {
	l := NewLobby("abc123")
	l.MarkStarted([]PlayerInfo{
		{ID: "p1", Name: "Alice"},
		{ID: "p2", Name: "Bob"},
	})

	if !l.Started {
		t.Error("lobby should be started")
	}
	for _, p := range l.GetPlayers() {
		if !p.Ready {
			t.Errorf("restored player %s not ready", p.ID)
		}
	}
	if err := l.Join("p3", "Carol"); err == nil {
		t.Error("join after restore should fail")
	}
}
