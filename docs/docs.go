// Package docs registers the swagger spec consumed by gin-swagger. It is
// normally produced by `swag init`; this is a hand-maintained stand-in
// describing the same two routes internal/api exposes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": { "description": "OK" }
                }
            }
        },
        "/v1/command": {
            "post": {
                "summary": "Submit a signed payment command",
                "parameters": [
                    {
                        "type": "string",
                        "description": "sender account address",
                        "name": "X-Verification-Key-Address",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": { "description": "OK" },
                    "400": { "description": "Bad Request" }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported swagger info, set by swag init and
// referenced by gin-swagger's handler.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Travel Rule Protocol Engine API",
	Description:      "Off-chain command exchange endpoint for the travel-rule protocol engine.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
