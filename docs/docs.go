// Package docs registers the OpenAPI document served under /swagger.
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
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Sign-in page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.pageResponse"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Backend credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign out",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.logoutResponse"}}}
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/unauthorized": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Unauthorized page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.pageResponse"}}}
            }
        },
        "/sinrol": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "No-role page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.pageResponse"}}}
            }
        },
        "/{section}/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sections"],
                "summary": "Section dashboard",
                "parameters": [{"type": "string", "description": "administrador, cordinador or docente", "name": "section", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dashboardResponse"}}}
            }
        },
        "/{section}/perfil": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sections"],
                "summary": "Profile",
                "parameters": [{"type": "string", "description": "administrador, cordinador or docente", "name": "section", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Identity"}}}
            }
        },
        "/{section}/api/{path}": {
            "get": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sections"],
                "summary": "Backend pass-through",
                "parameters": [
                    {"type": "string", "description": "administrador, cordinador or docente", "name": "section", "in": "path", "required": true},
                    {"type": "string", "description": "backend path", "name": "path", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Role": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "nombre": {"type": "string"}}
        },
        "domain.Identity": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "nombre": {"type": "string"},
                "apellido_paterno": {"type": "string"},
                "apellido_materno": {"type": "string"},
                "email": {"type": "string"},
                "direccion": {"type": "string"},
                "fecha_nacimiento": {"type": "string"},
                "sexo": {"type": "string"},
                "rol": {"$ref": "#/definitions/domain.Role"}
            }
        },
        "domain.MenuItem": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "to": {"type": "string"},
                "action": {"type": "string"},
                "sub_items": {"type": "array", "items": {"$ref": "#/definitions/domain.MenuItem"}}
            }
        },
        "domain.UiError": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "status": {"type": "integer"},
                "code": {"type": "string"},
                "raw": {}
            }
        },
        "handler.ErrorBody": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/domain.UiError"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/domain.Identity"}, "redirect": {"type": "string"}}
        },
        "handler.logoutResponse": {
            "type": "object",
            "properties": {"redirect": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "phase": {"type": "string"},
                "loading": {"type": "boolean"},
                "identity": {"$ref": "#/definitions/domain.Identity"},
                "display_name": {"type": "string"},
                "landing": {"type": "string"}
            }
        },
        "handler.pageResponse": {
            "type": "object",
            "properties": {"page": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.dashboardResponse": {
            "type": "object",
            "properties": {
                "section": {"type": "string"},
                "display_name": {"type": "string"},
                "role": {"type": "string"},
                "menu": {"type": "array", "items": {"$ref": "#/definitions/domain.MenuItem"}}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "error": {"type": "string"}}
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
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
	Title:            "Horarios admin console",
	Description:      "Session, role sections and backend pass-through of the academic scheduling console.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
