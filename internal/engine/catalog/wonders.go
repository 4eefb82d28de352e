package catalog

import "evergrove/internal/engine"

// Wonder names.
const (
	WonderSunkenLighthouse engine.WonderName = "Sunken Lighthouse"
	WonderMossyArchway     engine.WonderName = "Mossy Archway"
	WonderCrystalSpire     engine.WonderName = "Crystal Spire"
	WonderOpalThrone       engine.WonderName = "Opal Throne"
)

func registerWonders(r *engine.Registry) {
	r.RegisterWonder(&engine.WonderDef{
		Name: WonderSunkenLighthouse,
		Cost: engine.Resources{
			engine.ResourcePearl: 1, engine.ResourceTwig: 1,
			engine.ResourceResin: 1, engine.ResourcePebble: 1,
		},
		CardsToDiscard: 2,
		VP:             10,
	})

	r.RegisterWonder(&engine.WonderDef{
		Name: WonderMossyArchway,
		Cost: engine.Resources{
			engine.ResourcePearl: 1, engine.ResourceTwig: 2,
			engine.ResourceResin: 2, engine.ResourcePebble: 2,
		},
		CardsToDiscard: 2,
		VP:             15,
	})

	r.RegisterWonder(&engine.WonderDef{
		Name: WonderCrystalSpire,
		Cost: engine.Resources{
			engine.ResourcePearl: 2, engine.ResourceTwig: 3,
			engine.ResourceResin: 3, engine.ResourcePebble: 3,
		},
		CardsToDiscard: 3,
		VP:             20,
	})

	r.RegisterWonder(&engine.WonderDef{
		Name: WonderOpalThrone,
		Cost: engine.Resources{
			engine.ResourcePearl: 3, engine.ResourceTwig: 3,
			engine.ResourceResin: 3, engine.ResourcePebble: 3,
		},
		CardsToDiscard: 3,
		VP:             25,
	})
}
