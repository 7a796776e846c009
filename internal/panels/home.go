package panels

type Home struct{}

func (Home) ID() string          { return "home" }
func (Home) Title() string       { return "Home" }
func (Home) Controls() []Control { return nil }

func (Home) Render(Input) (*View, error) {
	return &View{
		Header:      "Home",
		Description: "Welcome to the Universe Explorer! This app lets you explore the fascinating world of the Theory of Everything through interactive simulations and visualizations.",
		Lines: []string{
			"Explore the various aspects of the Theory of Everything through this interactive application. Use the navigation panel to explore different sections.",
		},
	}, nil
}
