package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evergrove/internal/engine"
)

func sampleSnapshot() *engine.GameSnapshot {
	return &engine.GameSnapshot{
		Players: []engine.PlayerSnapshot{
			{ID: "p1", Name: "Alice", Resources: engine.Resources{engine.ResourceTwig: 2},
				Hand: []engine.CardName{"Farm"}, Workers: 2,
				Season: "WINTER", Status: engine.StatusActive},
		},
		Meadow:       []engine.CardName{"Mine"},
		Locations:    map[engine.LocationName][]string{"Three Twigs": {"p1"}},
		Events:       map[engine.EventName]string{},
		ActivePlayer: 0,
	}
}

func TestMemorySaveLoad(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "g1", sampleSnapshot()))

	got, err := m.Load(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, got.Players, 1)
	assert.Equal(t, "p1", got.Players[0].ID)
	assert.Equal(t, []engine.CardName{"Farm"}, got.Players[0].Hand)
	assert.Equal(t, []string{"p1"}, got.Locations["Three Twigs"])
}

func TestMemoryLoadMissing(t *testing.T) {
	m := NewMemory()
	_, err := m.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "g1", sampleSnapshot()))
	require.NoError(t, m.Delete(ctx, "g1"))
	_, err := m.Load(ctx, "g1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, m.Delete(ctx, "g1"))
}

func TestMemoryDoesNotAliasCallerState(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	snap := sampleSnapshot()
	require.NoError(t, m.Save(ctx, "g1", snap))
	snap.Players[0].Hand[0] = "Mine"

	got, err := m.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, engine.CardName("Farm"), got.Players[0].Hand[0])

	// Nor do two loads share state.
	other, err := m.Load(ctx, "g1")
	require.NoError(t, err)
	got.Players[0].Hand[0] = "Mine"
	assert.Equal(t, engine.CardName("Farm"), other.Players[0].Hand[0])
}

func TestMemoryOverwrite(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "g1", sampleSnapshot()))
	second := sampleSnapshot()
	second.ActivePlayer = 1
	require.NoError(t, m.Save(ctx, "g1", second))

	got, err := m.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ActivePlayer)
}
