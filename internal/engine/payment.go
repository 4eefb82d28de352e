package engine

import "fmt"

// Payment validation. Legality queries (CanAffordCard) never mutate;
// ValidatePaidResources checks the exact breakdown the client proposed
// rather than silently picking one of several satisfying breakdowns.

// CanAffordCard reports whether p could pay for def by any legal means:
// paying the cost outright, occupying the associated construction, or
// using a discount helper present in the city.
func (g *Game) CanAffordCard(p *Player, def *CardDef) bool {
	if p.Resources.Covers(def.Cost) {
		return true
	}
	if def.Critter && def.AssociatedCard != "" {
		if host := p.FindInCity(def.AssociatedCard); host != nil && !host.UsedForCritter {
			return true
		}
	}
	for _, pc := range p.City {
		helper, err := g.reg.Card(pc.Card)
		if err != nil || helper.Discount == nil {
			continue
		}
		if !helperApplies(helper.Discount, def) {
			continue
		}
		if coverableWithDiscount(p.Resources, def.Cost, helper.Discount) {
			return true
		}
	}
	return false
}

// ValidatePaidResources verifies a client-proposed payment breakdown
// for def against the cost and discount rules. It returns a descriptive
// error for the first violated rule, nil when valid. It never mutates.
func (g *Game) ValidatePaidResources(p *Player, def *CardDef, pay *CardPayment) error {
	if pay == nil {
		pay = &CardPayment{}
	}
	paid := pay.Resources
	if paid == nil {
		paid = Resources{}
	}

	if pay.UseAssociated {
		if !def.Critter || def.AssociatedCard == "" {
			return fmt.Errorf("invalid payment: %s has no associated construction", def.Name)
		}
		host := p.FindInCity(def.AssociatedCard)
		if host == nil {
			return fmt.Errorf("invalid payment: %s is not in your city", def.AssociatedCard)
		}
		if host.UsedForCritter {
			return fmt.Errorf("invalid payment: %s already hosts a critter", def.AssociatedCard)
		}
		if paid.Total() > 0 {
			return fmt.Errorf("too many resources: occupying %s waives the cost", def.AssociatedCard)
		}
		return nil
	}

	var discount *HelperDiscount
	if pay.CardToUse != "" {
		helper, err := g.reg.Card(pay.CardToUse)
		if err != nil {
			return fmt.Errorf("invalid payment: %w", err)
		}
		if helper.Discount == nil {
			return fmt.Errorf("invalid payment: %s grants no discount", helper.Name)
		}
		if !p.HasInCity(helper.Name) {
			return fmt.Errorf("invalid payment: %s is not in your city", helper.Name)
		}
		if !helperApplies(helper.Discount, def) {
			return fmt.Errorf("invalid payment: %s cannot be used for %s", helper.Name, def.Name)
		}
		discount = helper.Discount
	}

	if err := checkBreakdown(def.Cost, paid, discount); err != nil {
		return err
	}
	if !p.Resources.Covers(paid) {
		return fmt.Errorf("insufficient resources to make that payment")
	}
	return nil
}

// ValidateDiscountedPayment checks a breakdown for cost under a plain
// wild discount (destination effects that let a player play a card for
// up to N fewer resources of any kind).
func ValidateDiscountedPayment(p *Player, cost, paid Resources, wild int) error {
	d := &HelperDiscount{Wild: wild, ForCritters: true, ForConstructions: true}
	if err := checkBreakdown(cost, paid, d); err != nil {
		return err
	}
	if !p.Resources.Covers(paid) {
		return fmt.Errorf("insufficient resources to make that payment")
	}
	return nil
}

func helperApplies(d *HelperDiscount, def *CardDef) bool {
	if def.Critter {
		return d.ForCritters
	}
	return d.ForConstructions
}

// checkBreakdown verifies paid against cost, optionally discounted.
// With no discount the breakdown must match the cost exactly.
func checkBreakdown(cost, paid Resources, d *HelperDiscount) error {
	for k, v := range paid {
		if v < 0 {
			return fmt.Errorf("invalid payment: negative %s", k)
		}
		if v > cost[k] {
			return fmt.Errorf("too many %s paid: cost requires %d", k, cost[k])
		}
	}

	if d == nil {
		for k, v := range cost {
			if paid[k] < v {
				return fmt.Errorf("insufficient %s paid: need %d, got %d", k, v, paid[k])
			}
		}
		return nil
	}

	if d.Wild > 0 {
		shortfall := 0
		for k, v := range cost {
			if paid[k] < v {
				shortfall += v - paid[k]
			}
		}
		if shortfall > d.Wild {
			return fmt.Errorf("insufficient payment: %d short with only %d discounted", shortfall, d.Wild)
		}
		return nil
	}

	for k, v := range cost {
		need := v
		if k == d.Kind {
			need -= d.KindAmount
			if need < 0 {
				need = 0
			}
		}
		if paid[k] < need {
			return fmt.Errorf("insufficient %s paid: need %d, got %d", k, need, paid[k])
		}
	}
	return nil
}

// coverableWithDiscount reports whether held resources can satisfy cost
// under d, choosing the breakdown most favorable to the player.
func coverableWithDiscount(held, cost Resources, d *HelperDiscount) bool {
	if d.Wild > 0 {
		shortfall := 0
		for k, v := range cost {
			if held[k] < v {
				shortfall += v - held[k]
			}
		}
		return shortfall <= d.Wild
	}
	for k, v := range cost {
		need := v
		if k == d.Kind {
			need -= d.KindAmount
			if need < 0 {
				need = 0
			}
		}
		if held[k] < need {
			return false
		}
	}
	return true
}
