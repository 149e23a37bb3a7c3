// Package docs registers the OpenAPI description served under /swagger. Regenerate with `swag init -g cmd/main.go`.
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
        "/health": {
            "get": {
                "description": "Check if the service is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/api/v1/catalog": {
            "get": {
                "description": "Get the menu with optional category and name filtering",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List menu products",
                "parameters": [
                    {"type": "string", "description": "Category (pizza, sobremesa/dessert, bebida/beverage)", "name": "category", "in": "query"},
                    {"type": "string", "description": "Filter by product name (partial, case-insensitive)", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}}}}
            }
        },
        "/api/v1/catalog/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get product by ID",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/cart/preview": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Price preview",
                "parameters": [{"description": "Product selection", "name": "selection", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Selection"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.PricePreview"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List active orders",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.OrderLine"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Confirm an order line",
                "parameters": [{"description": "Product selection with customer data", "name": "selection", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Selection"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.OrderLine"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/orders/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Cart summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Summary"}}}
            }
        },
        "/api/v1/orders/checkout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Checkout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.CheckoutResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/orders/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Edit an order line",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "changes", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.LineChanges"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.OrderLine"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            },
            "delete": {
                "tags": ["orders"],
                "summary": "Remove an order line",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Must be true", "name": "confirm", "in": "query", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/orders/{id}/quantity": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Change quantity",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"description": "New quantity", "name": "quantity", "in": "body", "required": true, "schema": {"type": "object", "properties": {"quantity": {"type": "integer"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.OrderLine"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/orders/{id}/invoice": {
            "post": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Issue tax document",
                "parameters": [{"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        },
        "/api/v1/preferences": {
            "get": {
                "produces": ["application/json"],
                "tags": ["preferences"],
                "summary": "Get preferences",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/config.Preferences"}}}
            }
        },
        "/api/v1/preferences/theme": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["preferences"],
                "summary": "Set theme",
                "parameters": [{"description": "light or dark", "name": "theme", "in": "body", "required": true, "schema": {"type": "object", "properties": {"theme": {"type": "string"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/config.Preferences"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.Customer": {
            "type": "object",
            "required": ["name", "phone", "address"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "taxId": {"type": "string"}
            }
        },
        "models.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "basePrice": {"type": "number"},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "ingredients": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Selection": {
            "type": "object",
            "required": ["productId", "quantity"],
            "properties": {
                "productId": {"type": "string"},
                "size": {"type": "string"},
                "quantity": {"type": "integer", "minimum": 1},
                "removedIngredients": {"type": "array", "items": {"type": "string"}},
                "note": {"type": "string"},
                "surcharge": {"type": "number"},
                "customer": {"$ref": "#/definitions/models.Customer"}
            }
        },
        "models.LineChanges": {
            "type": "object",
            "properties": {
                "size": {"type": "string"},
                "quantity": {"type": "integer"},
                "removedIngredients": {"type": "array", "items": {"type": "string"}},
                "note": {"type": "string"},
                "customerName": {"type": "string"},
                "customerPhone": {"type": "string"},
                "customerAddress": {"type": "string"},
                "customerTaxId": {"type": "string"}
            }
        },
        "models.OrderLine": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "size": {"type": "string"},
                "quantity": {"type": "integer"},
                "unitPrice": {"type": "number"},
                "surcharge": {"type": "number"},
                "totalPrice": {"type": "number"},
                "removedIngredients": {"type": "array", "items": {"type": "string"}},
                "note": {"type": "string"},
                "customer": {"$ref": "#/definitions/models.Customer"},
                "createdAt": {"type": "string"}
            }
        },
        "services.Artifact": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "location": {"type": "string"}
            }
        },
        "services.CheckoutResult": {
            "type": "object",
            "properties": {
                "artifacts": {"type": "array", "items": {"$ref": "#/definitions/services.Artifact"}},
                "lines": {"type": "array", "items": {"$ref": "#/definitions/models.OrderLine"}},
                "total": {"type": "number"},
                "at": {"type": "string"}
            }
        },
        "services.PricePreview": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/models.Product"},
                "size": {"type": "string"},
                "quantity": {"type": "integer"},
                "unitPrice": {"type": "number"},
                "total": {"type": "number"}
            }
        },
        "services.Summary": {
            "type": "object",
            "properties": {
                "subtotal": {"type": "number"},
                "lineCount": {"type": "integer"},
                "itemCount": {"type": "integer"},
                "byCategory": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "config.Preferences": {
            "type": "object",
            "properties": {
                "theme": {"type": "string"},
                "lastCustomer": {"$ref": "#/definitions/models.Customer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PizzaOne API",
	Description:      "Ordering storefront for the PizzaOne pizzeria",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
