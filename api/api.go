// Package api embeds the OpenAPI document the HTTP adapter validates
// requests against and Swagger UI serves.
package api

import _ "embed"

//go:embed openapi.yaml
var Spec []byte
