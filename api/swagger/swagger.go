package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Legacy Learning Intake API",
        "description": "Client brief intake, triage, and strategy document generation",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "AdminToken": {
            "type": "apiKey",
            "name": "X-Admin-Token",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Submissions", "description": "Client brief intake"},
        {"name": "Admin", "description": "Submission triage and reporting"},
        {"name": "Export", "description": "Strategy document rendering"},
        {"name": "Outline", "description": "LLM-assisted outline drafting"},
        {"name": "Uploads", "description": "Source material uploads"},
        {"name": "Blob", "description": "Local blob driver endpoints"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/submissions": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit a client brief",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubmissionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/submissions": {
            "get": {
                "tags": ["Admin"],
                "summary": "List submissions for triage",
                "security": [{"AdminToken": []}],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["submitted", "new", "in_progress", "done"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/admin/submission": {
            "get": {
                "tags": ["Admin"],
                "summary": "Fetch one submission",
                "security": [{"AdminToken": []}],
                "parameters": [
                    {"name": "id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/admin/submissions/mark": {
            "post": {
                "tags": ["Admin"],
                "summary": "Move a submission through triage",
                "security": [{"AdminToken": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid status"}
                }
            }
        },
        "/admin/submissions/export.csv": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export the filtered listing as CSV",
                "security": [{"AdminToken": []}],
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/admin/metrics": {
            "get": {
                "tags": ["Admin"],
                "summary": "Aggregated service metrics",
                "security": [{"AdminToken": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Render a stored submission as a document",
                "security": [{"AdminToken": []}],
                "parameters": [
                    {"name": "id", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["docx", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document download"}
                }
            },
            "post": {
                "tags": ["Export"],
                "summary": "Render a posted record as a document",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmissionRecord"}},
                    {"name": "format", "in": "query", "type": "string", "enum": ["docx", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document download"}
                }
            }
        },
        "/outline/draft": {
            "post": {
                "tags": ["Outline"],
                "summary": "Draft outcomes and module titles from source text",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OutlineDraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Provider failure"}
                }
            }
        },
        "/uploads/url": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Issue a pre-authorized upload URL",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UploadURLRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/blob/object": {
            "put": {
                "tags": ["Blob"],
                "summary": "Accept a blob upload against a signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Stored"},
                    "401": {"description": "Invalid token"}
                }
            },
            "get": {
                "tags": ["Blob"],
                "summary": "Serve a blob against a signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Blob contents"},
                    "401": {"description": "Invalid token"}
                }
            }
        }
    },
    "definitions": {
        "CreateSubmissionRequest": {
            "type": "object",
            "properties": {
                "client": {"type": "string"},
                "scope": {"type": "string"},
                "overview": {"type": "string"},
                "approach": {"type": "string"},
                "format": {"type": "string"},
                "outcomes": {"type": "array", "items": {"type": "string"}},
                "modules": {"type": "array", "items": {"$ref": "#/definitions/Module"}},
                "notes": {"type": "string"},
                "fileUrls": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Module": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "objective": {"type": "string"},
                "activities": {"type": "array", "items": {"type": "string"}}
            }
        },
        "SubmissionRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "key": {"type": "string"},
                "client": {"type": "string"},
                "scope": {"type": "string"},
                "overview": {"type": "string"},
                "approach": {"type": "string"},
                "format": {"type": "string"},
                "outcomes": {"type": "array", "items": {"type": "string"}},
                "modules": {"type": "array", "items": {"$ref": "#/definitions/Module"}},
                "notes": {"type": "string"},
                "fileUrls": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "MarkStatusRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string", "enum": ["new", "in_progress", "done"]}
            },
            "required": ["id", "status"]
        },
        "OutlineDraftRequest": {
            "type": "object",
            "properties": {
                "client": {"type": "string"},
                "scope": {"type": "string"},
                "text": {"type": "string"},
                "max_outcomes": {"type": "integer"},
                "target_modules": {"type": "integer"}
            },
            "required": ["text"]
        },
        "UploadURLRequest": {
            "type": "object",
            "properties": {
                "filename": {"type": "string"},
                "contentType": {"type": "string"}
            },
            "required": ["filename"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
