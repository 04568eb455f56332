// Package docs registers the OpenAPI document served at /swagger/doc.json
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}}, "400": {"description": "Bad Request"}, "409": {"description": "Email taken"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/risk/assess": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["risk"],
                "summary": "Score a feature vector without persisting it",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/FeatureVector"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/RiskAssessment"}}, "400": {"description": "Invalid features"}}
            }
        },
        "/screen": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["screening"],
                "summary": "Screen free text for distress and crisis language",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/JournalRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/TextScreenResult"}}}
            }
        },
        "/trend": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["risk"],
                "summary": "Classify the direction of a probability series",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/students": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["students"], "summary": "List students", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["students"], "summary": "Enroll a student", "responses": {"201": {"description": "Created"}}}
        },
        "/students/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["students"], "summary": "Get a student", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/students/{id}/features": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["students"], "summary": "Replace a student's metrics", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/students/{id}/assessments": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["risk"], "summary": "Assess and record a student's dropout risk", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/RiskAssessment"}}}}
        },
        "/students/{id}/history": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["risk"], "summary": "Recent assessments with trend", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/students/{id}/journal": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["screening"], "summary": "List journal entries", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["screening"], "summary": "Screen and store a journal entry", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/alerts/recent": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["alerts"], "summary": "Most recent alerts", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/analytics": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Dashboard summary", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/audit": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Audit trail", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create an account with any role", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}], "responses": {"201": {"description": "Created"}}}
        }
    },
    "definitions": {
        "FeatureVector": {
            "type": "object",
            "properties": {
                "attendance_rate": {"type": "number"},
                "gpa": {"type": "number"},
                "financial_stress_score": {"type": "number"},
                "family_support_score": {"type": "number"}
            }
        },
        "RiskAssessment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "studentId": {"type": "string"},
                "probability": {"type": "number"},
                "tier": {"type": "string", "enum": ["Low", "Medium", "High", "Critical"]},
                "attributions": {"type": "object", "additionalProperties": {"type": "number"}},
                "alertTriggered": {"type": "boolean"},
                "alertMessage": {"type": "string"},
                "source": {"type": "string"},
                "features": {"$ref": "#/definitions/FeatureVector"},
                "createdAt": {"type": "string"}
            }
        },
        "TextScreenResult": {
            "type": "object",
            "properties": {
                "distressScore": {"type": "number"},
                "crisisFlag": {"type": "boolean"},
                "source": {"type": "string"}
            }
        },
        "JournalRequest": {"type": "object", "properties": {"text": {"type": "string"}}},
        "RegisterRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string", "enum": ["student", "counselor", "admin"]}}
        },
        "LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "LoginResponse": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/User"}}},
        "User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "role": {"type": "string"}, "createdAt": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "RiskWatch API",
	Description:      "Student dropout-risk scoring, wellbeing screening and counselor alerts",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
