package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// conclusionsMarkdown is the static narrative for investors, kept in Spanish
// like the rest of the published dashboard copy.
const conclusionsMarkdown = `## Conclusiones para empresas interesadas en invertir en alquiler turístico en Valencia

**Rentabilidad y retorno de inversión:** Los barrios líderes en rentabilidad neta y bruta, como Ciutat Universitaria, Cami Fondo, Penya-Roja y La Roqueta, ofrecen retornos superiores al promedio de la ciudad. La diferencia entre rentabilidad bruta y neta es relativamente baja en los barrios más rentables, lo que indica una estructura de costes eficiente.

**Demanda sostenida y visibilidad:** Barrios como Cabanyal-Canyamelar, Russafa y El Mercat destacan por su alto volumen de reseñas, reflejando una demanda turística constante. Invertir en estas zonas garantiza visibilidad y ocupación, aunque implica una competencia intensa.

**Competencia y saturación:** La saturación de anuncios es especialmente alta en barrios turísticos y céntricos. Existen barrios con alta rentabilidad y baja competencia que representan oportunidades para captar reservas con menor riesgo de saturación.

**Calidad, amenities y tamaño de la vivienda:** Los barrios con mayor número medio de amenities y viviendas más espaciosas tienden a lograr mejores valoraciones y mayor rentabilidad.

**Diversidad de precios y accesibilidad:** Valencia presenta una amplia dispersión de precios de alquiler y compra por metro cuadrado, lo que permite adaptar la estrategia de inversión según el presupuesto y el perfil de riesgo.

**Relación entre precio y competencia:** Los barrios con precios de alquiler más altos suelen concentrar también mayor competencia; las zonas con precios elevados y menor saturación son especialmente atractivas.

**Recomendación estratégica:** La mejor estrategia combina barrios con alta rentabilidad neta, demanda sostenida y competencia controlada, junto con una apuesta por la calidad y la diferenciación. Diversificar la cartera en diferentes zonas permite equilibrar riesgo y retorno.
`

// renderConclusions converts the narrative markdown to HTML
func renderConclusions() string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(conclusionsMarkdown), p, renderer))
}

func (s *Server) handleConclusions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"markdown": conclusionsMarkdown,
		"html":     renderConclusions(),
	})
}
