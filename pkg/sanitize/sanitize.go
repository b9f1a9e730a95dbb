// Package sanitize limpia texto libre enviado por clientes antes de persistirlo.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// maxPasses tope de rondas sanitizar/decodificar para entidades anidadas (&amp;lt;...).
const maxPasses = 4

// Text elimina todo el HTML y recorta espacios. Las entidades se devuelven decodificadas
// para que "a & b" no se almacene como "a &amp; b", pero solo cuando el texto decodificado
// ya no cambia al sanitizarlo otra vez: "&lt;script&gt;" no puede revivir como etiqueta.
func Text(s string) string {
	if s == "" {
		return s
	}
	for i := 0; i < maxPasses; i++ {
		clean := strict.Sanitize(s)
		plain := html.UnescapeString(clean)
		if plain == s {
			return strings.TrimSpace(plain)
		}
		s = plain
	}
	// Sin punto fijo: se guarda la forma escapada, que no contiene marcado.
	return strings.TrimSpace(strict.Sanitize(s))
}

// Strings aplica Text a cada elemento y descarta los vacíos.
func Strings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := Text(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
