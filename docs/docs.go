// Package docs registra el documento OpenAPI servido en /swagger.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mis mascotas",
                "parameters": [{"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Adoptar una mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Datos de la mascota", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petDetailResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Ver mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petDetailResponse"}},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/pets/{petID}/traits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Rasgos visuales de la mascota",
                "parameters": [{"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/pets/{petID}/feed": {
            "post": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Alimentar",
                "parameters": [{"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}}, "409": {"description": "Mascota en estado crítico"}}
            }
        },
        "/pets/{petID}/play": {
            "post": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Jugar",
                "parameters": [{"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}}, "409": {"description": "Mascota en estado crítico"}}
            }
        },
        "/pets/{petID}/chat": {
            "post": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Conversar",
                "parameters": [{"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}}, "409": {"description": "Mascota en estado crítico"}}
            }
        },
        "/pets/{petID}/revive": {
            "post": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Revivir con un ítem de recuperación",
                "parameters": [{"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "No está en estado crítico o no hay ítems"}}
            }
        },
        "/pets/{petID}/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Timeline de la mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "description": "Tipos separados por coma", "name": "types", "in": "query"},
                    {"type": "string", "description": "RFC3339", "name": "from", "in": "query"},
                    {"type": "string", "description": "RFC3339", "name": "to", "in": "query"},
                    {"type": "integer", "description": "1-200", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/me/inventory": {
            "get": {
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Mi inventario",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/me/inventory/grant": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inventory"],
                "summary": "Acreditar ítems",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/traits/preview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["traits"],
                "summary": "Previsualizar rasgos para un seed",
                "parameters": [{"type": "string", "description": "Seed (1-128 caracteres)", "name": "seed", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "seed is required"}}
            }
        }
    },
    "definitions": {
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "timezone_offset_minutes": {"type": "integer"}
            }
        },
        "pets.statsResponse": {
            "type": "object",
            "properties": {
                "health": {"type": "integer"},
                "hunger": {"type": "integer"},
                "happiness": {"type": "integer"},
                "energy": {"type": "integer"},
                "max_health_penalty": {"type": "integer"},
                "effective_max_health": {"type": "integer"}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_user_id": {"type": "string"},
                "name": {"type": "string"},
                "stats": {"$ref": "#/definitions/pets.statsResponse"},
                "is_critical": {"type": "boolean"},
                "last_stat_update": {"type": "string"},
                "last_interaction": {"type": "string"},
                "neglect_started_at": {"type": "string"},
                "timezone_offset_minutes": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "pets.petDetailResponse": {
            "allOf": [{"$ref": "#/definitions/pets.petResponse"}],
            "type": "object",
            "properties": {
                "traits": {"type": "object"},
                "warnings": {"type": "array", "items": {"type": "object"}},
                "in_grace_period": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Virtual Pet API",
	Description:      "Mascotas virtuales: rasgos determinísticos, degradación de stats y recuperación.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
