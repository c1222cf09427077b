package gocas

// LaTeX renders x as a LaTeX math-mode string.
func LaTeX(x Expr) string { return printer{latex: true}.render(x) }

func (e *Engine) LaTeX(x Expr) string { return LaTeX(x) }

var greek = map[string]bool{
	"alpha": true, "beta": true, "gamma": true, "delta": true, "epsilon": true,
	"zeta": true, "eta": true, "theta": true, "iota": true, "kappa": true,
	"lambda": true, "mu": true, "nu": true, "xi": true, "pi": true, "rho": true,
	"sigma": true, "tau": true, "upsilon": true, "phi": true, "chi": true,
	"psi": true, "omega": true,
	"Gamma": true, "Delta": true, "Theta": true, "Lambda": true, "Xi": true,
	"Pi": true, "Sigma": true, "Upsilon": true, "Phi": true, "Psi": true,
	"Omega": true,
}

func latexSymbol(name string) string {
	if greek[name] {
		return `\` + name
	}
	return name
}

func latexFunc(name, arg string) string {
	switch name {
	case "abs":
		return `\left|` + arg + `\right|`
	case "sqrt":
		return `\sqrt{` + arg + "}"
	}
	head := `\operatorname{` + name + "}"
	if canon, rule, ok := lookupFunc(name); ok && rule.latex != "" {
		head = rule.latex
		if canon != name {
			head = `\` + name
		}
	}
	return head + `\left(` + arg + `\right)`
}
