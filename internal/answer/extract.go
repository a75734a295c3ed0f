package answer

import "regexp"

// Style tells which delimiter pair surrounded an expression.
type Style int

const (
	Inline  Style = iota // \( ... \)
	Display              // \[ ... \]
)

func (s Style) String() string {
	if s == Display {
		return "display"
	}
	return "inline"
}

// Expression is one delimited LaTeX fragment found in model output.
type Expression struct {
	Body  string
	Style Style
}

// latexPattern matches \( … \) or \[ … \] across line breaks. Models emit either
// single or doubled backslashes depending on how their output was escaped, so
// both are accepted.
var latexPattern = regexp.MustCompile(`(?s)\\{1,2}\((.*?)\\{1,2}\)|\\{1,2}\[(.*?)\\{1,2}\]`)

// FindLatex returns every delimited expression in text, in order of appearance.
func FindLatex(text string) []Expression {
	matches := latexPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]Expression, 0, len(matches))
	for _, m := range matches {
		switch {
		case m[2] >= 0:
			out = append(out, Expression{Body: text[m[2]:m[3]], Style: Inline})
		case m[4] >= 0:
			out = append(out, Expression{Body: text[m[4]:m[5]], Style: Display})
		}
	}
	return out
}

// ExtractLatex returns the body of the last expression with a non-empty body.
func ExtractLatex(text string) (string, bool) {
	exprs := FindLatex(text)
	for i := len(exprs) - 1; i >= 0; i-- {
		if exprs[i].Body != "" {
			return exprs[i].Body, true
		}
	}
	return "", false
}
