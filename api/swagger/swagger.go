package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scholaris SIS API",
        "description": "School information system computational core: ledger, billing, grades, dashboards and snapshots",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Dashboard", "description": "Student dashboard composition"},
        {"name": "Billing", "description": "Ledger statements and due evaluation"},
        {"name": "Grades", "description": "Quarter averages and report cards"},
        {"name": "Backups", "description": "Snapshot create/restore/download"},
        {"name": "Audit", "description": "Audit trail"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Account behind the presented token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/students/{student_id}/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Student dashboard summary",
                "parameters": [
                    {"name": "student_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/students/{student_id}/billing": {
            "get": {
                "tags": ["Billing"],
                "summary": "Billing information for a student",
                "parameters": [
                    {"name": "student_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/students/{student_id}/billing/export": {
            "get": {
                "tags": ["Billing"],
                "summary": "Export the student statement of account",
                "parameters": [
                    {"name": "student_id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/enrollments/{enrollment_id}/grades": {
            "get": {
                "tags": ["Grades"],
                "summary": "Academic summary for an enrollment",
                "parameters": [
                    {"name": "enrollment_id", "in": "path", "required": true, "type": "string"},
                    {"name": "quarter", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/backups": {
            "get": {
                "tags": ["Backups"],
                "summary": "List snapshot files",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Backups"],
                "summary": "Create a database snapshot",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/backups/restore": {
            "post": {
                "tags": ["Backups"],
                "summary": "Restore a database snapshot",
                "responses": {
                    "200": {"description": "Restored"},
                    "422": {"description": "Restore failed and rolled back"}
                }
            }
        },
        "/backups/download": {
            "get": {
                "tags": ["Backups"],
                "summary": "Download a snapshot via a signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/audit-logs": {
            "get": {
                "tags": ["Audit"],
                "summary": "List audit trail entries",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
