// Package catalog defines the full set of cards, locations, events,
// adornments and wonders and assembles them into an engine.Registry.
// The engine itself knows nothing about concrete content; everything
// here is plain data plus effect callbacks registered at startup.
package catalog

import "evergrove/internal/engine"

// Standard builds the registry for a regular game. Expansion-only
// entries are registered too; the engine filters them out when the
// game is created without the expansion.
func Standard() *engine.Registry {
	r := engine.NewRegistry()
	registerCards(r)
	registerLocations(r)
	registerEvents(r)
	registerAdornments(r)
	registerWonders(r)
	return r
}

func cardCtx(name engine.CardName) engine.EffectContext {
	return engine.EffectContext{Kind: engine.KindCard, Name: string(name)}
}

func locCtx(name engine.LocationName) engine.EffectContext {
	return engine.EffectContext{Kind: engine.KindLocation, Name: string(name)}
}

func eventCtx(name engine.EventName) engine.EffectContext {
	return engine.EffectContext{Kind: engine.KindEvent, Name: string(name)}
}

func adornmentCtx(name engine.AdornmentName) engine.EffectContext {
	return engine.EffectContext{Kind: engine.KindAdornment, Name: string(name)}
}
