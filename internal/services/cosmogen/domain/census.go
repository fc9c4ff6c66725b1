package domain

// Census counts the entities in a Universe by kind.
type Census struct {
	Galaxies   int
	Stars      int
	Planets    int
	Inhabited  int // planets with HasLife set
	BlackHoles int
	Nebulae    int
	Asteroids  int
	Comets     int
}

// Total returns the number of entities of every kind.
func (c Census) Total() int {
	return c.Galaxies + c.Stars + c.Planets + c.BlackHoles + c.Nebulae + c.Asteroids + c.Comets
}

// Census walks the universe and counts its entities.
func (u Universe) Census() Census {
	c := Census{Galaxies: len(u.Galaxies)}
	for _, g := range u.Galaxies {
		c.Stars += len(g.Stars)
		c.BlackHoles += len(g.BlackHoles)
		c.Nebulae += len(g.Nebulae)
		c.Asteroids += len(g.Asteroids)
		c.Comets += len(g.Comets)
		for _, s := range g.Stars {
			c.Planets += len(s.Planets)
			for _, p := range s.Planets {
				if p.HasLife {
					c.Inhabited++
				}
			}
		}
	}
	return c
}
