package main

import (
	"github.com/edwinsyarief/slotecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type comp3 struct {
	Tag [8]byte
}

type body struct {
	slotecs.Base
}

// runChurn admits and removes a full population every iteration, the way a
// simulation spawns and despawns short-lived entities. Half of the removals
// happen out of order so the pool's free queue is exercised too.
func runChurn(cfg Config, log zerolog.Logger) error {
	for round := range cfg.Rounds {
		u := slotecs.NewUniverse[*body](
			slotecs.WithInitialCapacity(cfg.InitialCapacity),
			slotecs.WithLogger(log),
		)
		b := u.NewPrefabBuilder()
		slotecs.WithComponent(b, comp1{V: 1})
		slotecs.WithComponent(b, comp2{V: 2, W: 3})
		prefab := b.Build()

		c1 := slotecs.GetAccessor[comp1](u)
		c2 := slotecs.GetAccessor[comp2](u)
		c3 := slotecs.GetAccessor[comp3](u)

		bodies := make([]*body, cfg.Entities)
		for range cfg.Iterations {
			for i := range bodies {
				bodies[i] = &body{Base: slotecs.FromPrefab(prefab)}
			}
			if err := u.AddEntities(bodies...); err != nil {
				return err
			}
			for i, e := range bodies {
				a, err := c1.Get(e)
				if err != nil {
					return err
				}
				v, err := c2.Get(e)
				if err != nil {
					return err
				}
				a.V += v.V
				a.W += v.W
				if i%4 == 0 {
					if _, err := c3.PutZero(e); err != nil {
						return err
					}
				}
			}
			for i := 0; i < len(bodies); i += 2 {
				if err := u.RemoveEntity(bodies[i]); err != nil {
					return err
				}
			}
			last := len(bodies) - 1
			if last%2 == 0 {
				last--
			}
			for i := last; i > 0; i -= 2 {
				if err := u.RemoveEntity(bodies[i]); err != nil {
					return err
				}
			}
		}
		if u.Len() != 0 {
			return eris.Errorf("round %d leaked %d entities", round, u.Len())
		}
		log.Debug().Int("round", round).Int("capacity", u.Capacity()).Msg("round complete")
	}
	return nil
}

// runAccess keeps one population alive and hammers component reads and
// writes, which is the per-tick cost of a simulation step.
func runAccess(cfg Config, log zerolog.Logger) error {
	u := slotecs.NewUniverse[*body](
		slotecs.WithInitialCapacity(cfg.InitialCapacity),
		slotecs.WithLogger(log),
	)
	c1 := slotecs.GetAccessor[comp1](u)
	c2 := slotecs.GetAccessor[comp2](u)

	bodies := make([]*body, cfg.Entities)
	for i := range bodies {
		bodies[i] = &body{}
		if err := u.AddEntity(bodies[i]); err != nil {
			return err
		}
		if _, err := c1.Put(bodies[i], comp1{}); err != nil {
			return err
		}
		if _, err := c2.Put(bodies[i], comp2{V: 1, W: 1}); err != nil {
			return err
		}
	}
	u.Logger().LogComponents(u, zerolog.DebugLevel)

	for range cfg.Rounds * cfg.Iterations {
		for _, e := range bodies {
			a, err := c1.Get(e)
			if err != nil {
				return err
			}
			v, err := c2.Get(e)
			if err != nil {
				return err
			}
			a.V += v.V
			a.W += v.W
		}
	}
	return nil
}
