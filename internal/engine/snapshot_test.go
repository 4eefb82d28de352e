package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.Hand = []CardName{"Orchard", "Gatherer"}
	p1.Resources = Resources{ResourceTwig: 3, ResourcePoint: 1}
	p1.City = append(p1.City, &PlayedCard{
		Card: "Orchard", Owner: "p1",
		StoredResources: Resources{ResourcePoint: 2},
	})
	p1.ClaimedEvents["Festival"] = &ClaimPayload{
		Cards:     []CardName{"Orchard"},
		Resources: Resources{ResourceTwig: 2},
	}
	g.Events["Festival"] = "p1"
	g.Locations["Twig Pile"] = []string{"p1"}
	g.PushPending(GameInput{
		Type:            InputSelectResources,
		Context:         EffectContext{Kind: KindCard, Name: "Gatherer"},
		ResourceOptions: BaseResourceTypes(),
		MinResources:    1,
		MaxResources:    1,
	})

	snap := g.Snapshot(true)

	// Snapshots survive a JSON round trip, which is how the store
	// persists them.
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded GameSnapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored, err := Restore(testRegistry(), &decoded)
	require.NoError(t, err)

	rp := restored.GetPlayer("p1")
	require.NotNil(t, rp)
	assert.Equal(t, p1.Hand, rp.Hand)
	assert.Equal(t, p1.Resources, rp.Resources)
	require.Len(t, rp.City, 1)
	assert.Equal(t, CardName("Orchard"), rp.City[0].Card)
	assert.Equal(t, 2, rp.City[0].StoredResources[ResourcePoint])
	require.Contains(t, rp.ClaimedEvents, EventName("Festival"))
	assert.Equal(t, []CardName{"Orchard"}, rp.ClaimedEvents["Festival"].Cards)
	assert.Equal(t, "p1", restored.Events["Festival"])
	assert.Equal(t, []string{"p1"}, restored.Locations["Twig Pile"])
	assert.Equal(t, g.Deck.Len(), restored.Deck.Len())
	assert.Equal(t, g.Meadow, restored.Meadow)
	require.Len(t, restored.Pending, 1)
	assert.Equal(t, InputSelectResources, restored.Pending[0].Type)

	// The restored game keeps playing: the open pending input accepts
	// its answer.
	_, err = restored.Next("p1", GameInput{
		Type:              InputSelectResources,
		Context:           EffectContext{Kind: KindCard, Name: "Gatherer"},
		SelectedResources: Resources{ResourceBerry: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rp.Resources[ResourceBerry])
}

func TestSnapshotPublicHidesPrivateZones(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.Hand = []CardName{"Orchard", "Tower"}

	snap := g.Snapshot(false)

	assert.Empty(t, snap.Deck)
	assert.Empty(t, snap.Discard)
	assert.Greater(t, snap.DeckSize, 0)
	for _, ps := range snap.Players {
		assert.Empty(t, ps.Hand)
		assert.Empty(t, ps.AdornmentHand)
	}
	assert.Equal(t, 2, snap.Players[0].HandSize)
}

func TestSnapshotIsDetached(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.Hand = []CardName{"Orchard"}
	g.Meadow = []CardName{"Orchard"}
	snap := g.Snapshot(true)

	snap.Meadow[0] = "Tower"
	snap.Players[0].Hand[0] = "Gatherer"
	snap.Players[0].Resources[ResourceTwig] = 99

	assert.NotEqual(t, CardName("Tower"), g.Meadow[0])
	assert.Equal(t, CardName("Orchard"), p1.Hand[0])
	assert.Equal(t, 0, p1.Resources[ResourceTwig])
}

func TestRestoreRequiresPrivateDeck(t *testing.T) {
	g, _, _ := newTestGame(t)
	snap := g.Snapshot(false)
	_, err := Restore(testRegistry(), snap)
	assert.ErrorContains(t, err, "private deck")
}

func TestViewFor(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.Hand = []CardName{"Orchard"}

	v := g.ViewFor("p1")
	assert.Equal(t, []CardName{"Orchard"}, v.Hand)
	assert.True(t, v.IsMyTurn)
	assert.Empty(t, v.GameSnapshot.Deck)

	v2 := g.ViewFor("p2")
	assert.False(t, v2.IsMyTurn)
	assert.Empty(t, v2.Hand)
}

func TestViewForUnknownPlayer(t *testing.T) {
	g, _, _ := newTestGame(t)
	v := g.ViewFor("ghost")
	assert.False(t, v.IsMyTurn)
	assert.Empty(t, v.Hand)
}
