package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentRegistry() *Registry {
	r := NewRegistry()
	r.RegisterCard(&CardDef{
		Name: "Lodge", Type: Destination,
		Cost: Resources{ResourceTwig: 2, ResourceResin: 1},
	})
	r.RegisterCard(&CardDef{
		Name: "Lodgekeeper", Type: Traveler, Critter: true,
		Cost:           Resources{ResourceBerry: 3},
		AssociatedCard: "Lodge",
	})
	r.RegisterCard(&CardDef{
		Name: "Builder", Type: Governance,
		Cost: Resources{ResourcePebble: 1},
		Discount: &HelperDiscount{
			Wild:             3,
			ForConstructions: true,
			Consumes:         true,
		},
	})
	return r
}

func paymentGame(t *testing.T) (*Game, *Player) {
	t.Helper()
	p := NewPlayer("p1", "Alice")
	g := NewGame([]*Player{p}, GameOptions{}, paymentRegistry())
	p.Resources = Resources{}
	return g, p
}

func TestCanAffordCard(t *testing.T) {
	g, p := paymentGame(t)
	lodge, err := g.reg.Card("Lodge")
	require.NoError(t, err)
	keeper, err := g.reg.Card("Lodgekeeper")
	require.NoError(t, err)

	assert.False(t, g.CanAffordCard(p, lodge))

	p.Resources = Resources{ResourceTwig: 2, ResourceResin: 1}
	assert.True(t, g.CanAffordCard(p, lodge))

	// A critter is affordable through its construction even with no
	// resources at all.
	p.Resources = Resources{}
	assert.False(t, g.CanAffordCard(p, keeper))
	p.City = append(p.City, &PlayedCard{Card: "Lodge", Owner: p.ID})
	assert.True(t, g.CanAffordCard(p, keeper))

	// An occupied construction no longer helps.
	p.City[0].UsedForCritter = true
	assert.False(t, g.CanAffordCard(p, keeper))
}

func TestCanAffordCardWithHelper(t *testing.T) {
	g, p := paymentGame(t)
	lodge, err := g.reg.Card("Lodge")
	require.NoError(t, err)

	p.City = append(p.City, &PlayedCard{Card: "Builder", Owner: p.ID})
	// Cost is 3 units total and the helper waives up to 3.
	assert.True(t, g.CanAffordCard(p, lodge))
}

func TestValidatePaidResources(t *testing.T) {
	g, p := paymentGame(t)
	lodge, _ := g.reg.Card("Lodge")
	keeper, _ := g.reg.Card("Lodgekeeper")

	p.Resources = Resources{ResourceTwig: 2, ResourceResin: 1}
	err := g.ValidatePaidResources(p, lodge, &CardPayment{
		Resources: Resources{ResourceTwig: 2, ResourceResin: 1},
	})
	assert.NoError(t, err)

	// Underpaying without a discount fails.
	err = g.ValidatePaidResources(p, lodge, &CardPayment{
		Resources: Resources{ResourceTwig: 2},
	})
	assert.ErrorContains(t, err, "insufficient RESIN paid")

	// Occupying the associated construction waives the full cost.
	p.City = append(p.City, &PlayedCard{Card: "Lodge", Owner: p.ID})
	err = g.ValidatePaidResources(p, keeper, &CardPayment{UseAssociated: true})
	assert.NoError(t, err)

	// But then no resources may ride along.
	err = g.ValidatePaidResources(p, keeper, &CardPayment{
		UseAssociated: true,
		Resources:     Resources{ResourceBerry: 1},
	})
	assert.ErrorContains(t, err, "waives the cost")

	p.City[0].UsedForCritter = true
	err = g.ValidatePaidResources(p, keeper, &CardPayment{UseAssociated: true})
	assert.ErrorContains(t, err, "already hosts a critter")
}

func TestValidatePaidResourcesWithHelper(t *testing.T) {
	g, p := paymentGame(t)
	lodge, _ := g.reg.Card("Lodge")
	keeper, _ := g.reg.Card("Lodgekeeper")

	p.City = append(p.City, &PlayedCard{Card: "Builder", Owner: p.ID})

	// The wild discount covers the whole construction cost.
	err := g.ValidatePaidResources(p, lodge, &CardPayment{
		CardToUse: "Builder",
		Resources: Resources{},
	})
	assert.NoError(t, err)

	// Construction-only helpers refuse critters.
	err = g.ValidatePaidResources(p, keeper, &CardPayment{CardToUse: "Builder"})
	assert.ErrorContains(t, err, "cannot be used for")

	// Overpaying a single kind is rejected even with the helper.
	p.Resources = Resources{ResourceTwig: 4}
	err = g.ValidatePaidResources(p, lodge, &CardPayment{
		CardToUse: "Builder",
		Resources: Resources{ResourceTwig: 3},
	})
	assert.ErrorContains(t, err, "too many TWIG paid")
}

func TestValidateDiscountedPayment(t *testing.T) {
	p := NewPlayer("p1", "Alice")
	cost := Resources{ResourceTwig: 2, ResourceResin: 1, ResourceBerry: 1}

	// Discount absorbs the whole shortfall.
	p.Resources = Resources{ResourceTwig: 1}
	err := ValidateDiscountedPayment(p, cost, Resources{ResourceTwig: 1}, 3)
	assert.NoError(t, err)

	// Shortfall beyond the discount fails.
	err = ValidateDiscountedPayment(p, cost, Resources{}, 3)
	assert.ErrorContains(t, err, "insufficient payment")

	// Proposed breakdown must be backed by held resources.
	err = ValidateDiscountedPayment(p, cost, Resources{ResourceTwig: 2}, 3)
	assert.ErrorContains(t, err, "insufficient resources")
}
