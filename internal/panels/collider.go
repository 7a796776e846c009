package panels

import "fmt"

type Collider struct{}

func (Collider) ID() string    { return "collider" }
func (Collider) Title() string { return "Particle Collider" }

func (Collider) Controls() []Control {
	energy := IntSlider("energy", "Collision Energy (TeV)", 1, 100, 13)
	energy.Unit = "TeV"
	return []Control{energy}
}

func (c Collider) Render(in Input) (*View, error) {
	in = Normalize(c, in)
	return &View{
		Header:      c.Title(),
		Description: "Run virtual particle collisions and observe the outcomes.",
		Lines: []string{
			fmt.Sprintf("Running collisions at %d TeV.", in.Int("energy")),
			"Collision outcomes will be displayed here.",
		},
	}, nil
}
