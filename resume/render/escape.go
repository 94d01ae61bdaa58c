package render

import "strings"

// latexEscaper rewrites LaTeX control characters in user-supplied text.
// Backslash must map to \textbackslash{} rather than \\ (a line break),
// and tilde/caret need the text-mode command forms.
var latexEscaper = strings.NewReplacer(
	"\\", `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

// EscapeLaTeX escapes every LaTeX-significant character in s. Unescaped
// input corrupts the compiled document or injects arbitrary commands into
// it, so every interpolation site must go through this.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes HTML metacharacters in s.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
