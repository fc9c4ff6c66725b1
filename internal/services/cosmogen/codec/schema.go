package codec

import "github.com/louisbranch/cosmogen/internal/services/cosmogen/domain"

// SchemaVersion identifies the encoded layout below. Bump it whenever a key
// is added, removed or renamed.
const SchemaVersion uint16 = 1

type documentRecord struct {
	Version  uint16         `cbor:"version"`
	Galaxies []galaxyRecord `cbor:"galaxies"`
}

type versionRecord struct {
	Version uint16 `cbor:"version"`
}

type galaxyRecord struct {
	Code       string            `cbor:"code"`
	Stars      []starRecord      `cbor:"stars"`
	BlackHoles []blackHoleRecord `cbor:"black_holes"`
	Nebulae    []nebulaRecord    `cbor:"nebulae"`
	Asteroids  []asteroidRecord  `cbor:"asteroids"`
	Comets     []cometRecord     `cbor:"comets"`
}

type starRecord struct {
	Code         string         `cbor:"code"`
	Mass         float64        `cbor:"mass"`
	Temperature  float64        `cbor:"temperature"`
	SpectralType string         `cbor:"spectral_type"`
	Planets      []planetRecord `cbor:"planets"`
}

type planetRecord struct {
	Code        string             `cbor:"code"`
	Mass        float64            `cbor:"mass"`
	Temperature float64            `cbor:"temperature"`
	HasLife     bool               `cbor:"has_life"`
	Minerals    map[string]float64 `cbor:"minerals"`
}

type blackHoleRecord struct {
	Code string  `cbor:"code"`
	Mass float64 `cbor:"mass"`
	Spin float64 `cbor:"spin"`
}

type nebulaRecord struct {
	Code        string             `cbor:"code"`
	Mass        float64            `cbor:"mass"`
	Temperature float64            `cbor:"temperature"`
	Composition map[string]float64 `cbor:"composition"`
}

type asteroidRecord struct {
	Code        string             `cbor:"code"`
	Mass        float64            `cbor:"mass"`
	Composition map[string]float64 `cbor:"composition"`
}

type cometRecord struct {
	Code         string  `cbor:"code"`
	Mass         float64 `cbor:"mass"`
	TailLengthKm float64 `cbor:"tail_length_km"`
}

func toDocument(u domain.Universe) documentRecord {
	doc := documentRecord{
		Version:  SchemaVersion,
		Galaxies: make([]galaxyRecord, 0, len(u.Galaxies)),
	}
	for _, g := range u.Galaxies {
		gr := galaxyRecord{
			Code:       g.Code,
			Stars:      make([]starRecord, 0, len(g.Stars)),
			BlackHoles: make([]blackHoleRecord, 0, len(g.BlackHoles)),
			Nebulae:    make([]nebulaRecord, 0, len(g.Nebulae)),
			Asteroids:  make([]asteroidRecord, 0, len(g.Asteroids)),
			Comets:     make([]cometRecord, 0, len(g.Comets)),
		}
		for _, s := range g.Stars {
			sr := starRecord{
				Code:         s.Code,
				Mass:         s.Mass,
				Temperature:  s.Temperature,
				SpectralType: string(s.SpectralClass),
				Planets:      make([]planetRecord, 0, len(s.Planets)),
			}
			for _, p := range s.Planets {
				sr.Planets = append(sr.Planets, planetRecord{
					Code:        p.Code,
					Mass:        p.Mass,
					Temperature: p.Temperature,
					HasLife:     p.HasLife,
					Minerals:    p.Minerals,
				})
			}
			gr.Stars = append(gr.Stars, sr)
		}
		for _, bh := range g.BlackHoles {
			gr.BlackHoles = append(gr.BlackHoles, blackHoleRecord(bh))
		}
		for _, n := range g.Nebulae {
			gr.Nebulae = append(gr.Nebulae, nebulaRecord{
				Code:        n.Code,
				Mass:        n.Mass,
				Temperature: n.Temperature,
				Composition: n.Composition,
			})
		}
		for _, a := range g.Asteroids {
			gr.Asteroids = append(gr.Asteroids, asteroidRecord{
				Code:        a.Code,
				Mass:        a.Mass,
				Composition: a.Composition,
			})
		}
		for _, c := range g.Comets {
			gr.Comets = append(gr.Comets, cometRecord(c))
		}
		doc.Galaxies = append(doc.Galaxies, gr)
	}
	return doc
}

// fromDocument rebuilds the domain graph. Every collection comes back as a
// non-nil slice so decoded values compare equal to generated ones.
func fromDocument(doc documentRecord) domain.Universe {
	u := domain.Universe{Galaxies: make([]domain.Galaxy, 0, len(doc.Galaxies))}
	for _, gr := range doc.Galaxies {
		g := domain.Galaxy{
			Code:       gr.Code,
			Stars:      make([]domain.Star, 0, len(gr.Stars)),
			BlackHoles: make([]domain.BlackHole, 0, len(gr.BlackHoles)),
			Nebulae:    make([]domain.Nebula, 0, len(gr.Nebulae)),
			Asteroids:  make([]domain.Asteroid, 0, len(gr.Asteroids)),
			Comets:     make([]domain.Comet, 0, len(gr.Comets)),
		}
		for _, sr := range gr.Stars {
			s := domain.Star{
				Code:          sr.Code,
				Mass:          sr.Mass,
				Temperature:   sr.Temperature,
				SpectralClass: domain.SpectralClass(sr.SpectralType),
				Planets:       make([]domain.Planet, 0, len(sr.Planets)),
			}
			for _, pr := range sr.Planets {
				s.Planets = append(s.Planets, domain.Planet{
					Code:        pr.Code,
					Mass:        pr.Mass,
					Temperature: pr.Temperature,
					HasLife:     pr.HasLife,
					Minerals:    domain.Composition(pr.Minerals),
				})
			}
			g.Stars = append(g.Stars, s)
		}
		for _, br := range gr.BlackHoles {
			g.BlackHoles = append(g.BlackHoles, domain.BlackHole(br))
		}
		for _, nr := range gr.Nebulae {
			g.Nebulae = append(g.Nebulae, domain.Nebula{
				Code:        nr.Code,
				Mass:        nr.Mass,
				Temperature: nr.Temperature,
				Composition: domain.Composition(nr.Composition),
			})
		}
		for _, ar := range gr.Asteroids {
			g.Asteroids = append(g.Asteroids, domain.Asteroid{
				Code:        ar.Code,
				Mass:        ar.Mass,
				Composition: domain.Composition(ar.Composition),
			})
		}
		for _, cr := range gr.Comets {
			g.Comets = append(g.Comets, domain.Comet(cr))
		}
		u.Galaxies = append(u.Galaxies, g)
	}
	return u
}
