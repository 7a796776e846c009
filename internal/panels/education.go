package panels

import "fmt"

// Module titles in display order.
var Modules = []string{
	"General Relativity",
	"Quantum Mechanics",
	"String Theory",
	"Loop Quantum Gravity",
}

var moduleText = map[string]string{
	"General Relativity":   "Description of General Relativity.",
	"Quantum Mechanics":    "Description of Quantum Mechanics.",
	"String Theory":        "Description of String Theory.",
	"Loop Quantum Gravity": "Description of Loop Quantum Gravity.",
}

type Education struct{}

func (Education) ID() string    { return "education" }
func (Education) Title() string { return "Educational Modules" }

func (Education) Controls() []Control {
	return []Control{SelectBox("module", "Select a Module", Modules...)}
}

func (e Education) Render(in Input) (*View, error) {
	in = Normalize(e, in)
	module := in.Choice(control(e, "module"))
	text := moduleText[module]
	return &View{
		Header:      e.Title(),
		Description: "Learn about the Theory of Everything.",
		Lines:       []string{text},
		Markdown:    fmt.Sprintf("## %s\n\n%s\n", module, text),
	}, nil
}
