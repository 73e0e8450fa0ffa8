// Package docs registers the OpenAPI description of the quote server with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/quote": {
            "get": {
                "summary": "Quote a swap on the orderbook contract of the pair",
                "parameters": [
                    {"type": "string", "name": "fromAsset", "in": "query", "required": true},
                    {"type": "string", "name": "toAsset", "in": "query", "required": true},
                    {"type": "string", "name": "amount", "in": "query", "required": true},
                    {"type": "integer", "name": "slippageBps", "in": "query"},
                    {"type": "string", "name": "destination", "in": "query"},
                    {"type": "boolean", "name": "skipCache", "in": "query"},
                    {"type": "integer", "name": "maxStalenessMs", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/quote/routes": {
            "get": {"summary": "List configured routes", "responses": {"200": {"description": "OK"}}}
        },
        "/quote/routes/quotes": {
            "get": {
                "summary": "Quote configured routes",
                "parameters": [
                    {"type": "string", "name": "routes", "in": "query"},
                    {"type": "string", "name": "amount", "in": "query", "required": true},
                    {"type": "string", "name": "destination", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/discovery/markets": {
            "get": {"summary": "List discovered markets", "responses": {"200": {"description": "OK"}}}
        },
        "/discovery/market": {
            "get": {
                "summary": "Find the market of a pair",
                "parameters": [
                    {"type": "string", "name": "baseAsset", "in": "query", "required": true},
                    {"type": "string", "name": "quoteAsset", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/discovery/status": {
            "get": {"summary": "Discovery cache status", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FIN Quote Server API",
	Description:      "Swap quotes and orderbook contract discovery for the FIN DEX.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
