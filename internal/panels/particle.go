package panels

import "fmt"

var Particles = []string{"Electron", "Proton", "Neutron", "Higgs Boson"}

type Particle struct{}

func (Particle) ID() string    { return "particle" }
func (Particle) Title() string { return "Particle Physics" }

func (Particle) Controls() []Control {
	energy := IntSlider("energy", "Collision Energy (TeV)", 1, 100, 13)
	energy.Unit = "TeV"
	return []Control{
		energy,
		SelectBox("particle", "Select a Particle", Particles...),
	}
}

func (p Particle) Render(in Input) (*View, error) {
	in = Normalize(p, in)
	return &View{
		Header:      p.Title(),
		Description: "Explore particle interactions.",
		Lines: []string{
			fmt.Sprintf("Simulating collisions at %d TeV involving %s.", in.Int("energy"), in.Choice(control(p, "particle"))),
			"Collision results will be displayed here.",
		},
	}, nil
}
