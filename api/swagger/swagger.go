package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Skillmint API",
        "description": "Course delivery platform: access requests, session content and code workspaces",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Authentication and session management"},
        {"name": "Courses", "description": "Course catalog"},
        {"name": "Access", "description": "Course access gate"},
        {"name": "Content", "description": "Session and code file content"},
        {"name": "Workspace", "description": "Per-user video and code file viewing state"},
        {"name": "Exports", "description": "Admin exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the current refresh token",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List available courses",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a single course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/courses/{id}/access": {
            "get": {
                "tags": ["Access"],
                "summary": "Resolve the caller's access state for a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Access"],
                "summary": "Request access to a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "A request already exists"}
                }
            }
        },
        "/courses/{id}/tree": {
            "get": {
                "tags": ["Content"],
                "summary": "Load the full session/file tree for a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Course access not approved"}
                }
            }
        },
        "/workspace": {
            "get": {
                "tags": ["Workspace"],
                "summary": "Get the caller's workspace state",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/video": {
            "post": {
                "tags": ["Workspace"],
                "summary": "Switch the viewer to a session's video",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectVideoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/files": {
            "post": {
                "tags": ["Workspace"],
                "summary": "Open a code file in a new tab",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OpenFileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/files/{fileId}": {
            "patch": {
                "tags": ["Workspace"],
                "summary": "Edit the working copy of the active file",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "fileId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EditFileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "File is not active"}
                }
            },
            "delete": {
                "tags": ["Workspace"],
                "summary": "Close an open tab",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "fileId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/files/{fileId}/activate": {
            "post": {
                "tags": ["Workspace"],
                "summary": "Make an open tab the active one",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "fileId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workspace/files/{fileId}/download": {
            "get": {
                "tags": ["Workspace"],
                "summary": "Download the working copy of an open file",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "fileId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File contents"},
                    "404": {"description": "File is not open"}
                }
            }
        },
        "/admin/access-requests": {
            "get": {
                "tags": ["Access"],
                "summary": "List access requests for review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "courseId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/access-requests/{id}/approve": {
            "post": {
                "tags": ["Access"],
                "summary": "Approve an access request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admin/access-requests/{id}/reject": {
            "post": {
                "tags": ["Access"],
                "summary": "Reject an access request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/access-requests/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export access requests as CSV",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "courseId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV attachment"}
                }
            }
        },
        "/admin/language": {
            "get": {
                "tags": ["Content"],
                "summary": "Suggest an editor language tag for a file name",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "fileName", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/admin/courses/{id}/sessions": {
            "get": {
                "tags": ["Content"],
                "summary": "List sessions of a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Content"],
                "summary": "Add a session to a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/admin/courses/{id}/outline.pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a course outline as PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF attachment"}
                }
            }
        },
        "/admin/sessions/{id}": {
            "put": {
                "tags": ["Content"],
                "summary": "Edit a session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Content"],
                "summary": "Delete a session and its code files",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "confirm", "in": "query", "type": "boolean", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "428": {"description": "Confirmation required"}
                }
            }
        },
        "/admin/sessions/{id}/files": {
            "get": {
                "tags": ["Content"],
                "summary": "List code files of a session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Content"],
                "summary": "Attach a code file to a session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCodeFileRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/files/{id}": {
            "put": {
                "tags": ["Content"],
                "summary": "Edit a code file",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCodeFileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Content"],
                "summary": "Delete a code file",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "CreateSessionRequest": {
            "type": "object",
            "properties": {
                "sessionNumber": {"type": "integer", "minimum": 1},
                "topic": {"type": "string"},
                "videoUrl": {"type": "string"}
            },
            "required": ["sessionNumber", "topic"]
        },
        "UpdateSessionRequest": {
            "type": "object",
            "properties": {
                "sessionNumber": {"type": "integer", "minimum": 1},
                "topic": {"type": "string"},
                "videoUrl": {"type": "string"}
            },
            "required": ["sessionNumber", "topic"]
        },
        "CreateCodeFileRequest": {
            "type": "object",
            "properties": {
                "fileName": {"type": "string"},
                "fileContent": {"type": "string"},
                "language": {"type": "string"}
            },
            "required": ["fileName", "language"]
        },
        "UpdateCodeFileRequest": {
            "type": "object",
            "properties": {
                "fileName": {"type": "string"},
                "fileContent": {"type": "string"},
                "language": {"type": "string"}
            },
            "required": ["fileName", "language"]
        },
        "LanguageSuggestion": {
            "type": "object",
            "properties": {
                "fileName": {"type": "string"},
                "language": {"type": "string"}
            }
        },
        "SelectVideoRequest": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"}
            },
            "required": ["sessionId"]
        },
        "OpenFileRequest": {
            "type": "object",
            "properties": {
                "fileId": {"type": "string"}
            },
            "required": ["fileId"]
        },
        "EditFileRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"}
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
