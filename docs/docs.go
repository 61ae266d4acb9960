// Package docs expone la especificación OpenAPI de la API (servida en /docs).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// SwaggerJSON contenido de swagger.json.
//
//go:embed swagger.json
var SwaggerJSON []byte

type spec struct{}

func (spec) ReadDoc() string { return string(SwaggerJSON) }

func init() {
	swag.Register(swag.Name, spec{})
}
