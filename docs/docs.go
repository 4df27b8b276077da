// Package docs holds the Swagger document of the API, registered with swag
// and served by the swagger UI route. Keep it in step with the handler annotations.
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
        "/auth/login": {
            "post": {
                "description": "Exchanges a roll number and password for a bearer session token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with a roll number",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "loginBody",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "401": {"description": "Invalid password, bad format or unknown roll number", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "422": {"description": "Malformed body", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the profile of the authenticated user.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.Profile"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/notices": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Notices"],
                "summary": "List notices",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/records.Notice"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Admin only. Any id in the body is ignored; a new one is assigned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Notices"],
                "summary": "Create a notice",
                "parameters": [
                    {"description": "Notice", "name": "notice", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.Notice"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/records.CreatedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "List events",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/records.Event"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Admin only.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "Create an event",
                "parameters": [
                    {"description": "Event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.Event"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/records.CreatedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/timetable": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Students only see their own semester and section.",
                "produces": ["application/json"],
                "tags": ["Timetable"],
                "summary": "List timetable entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/records.TimetableEntry"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Admin only.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Timetable"],
                "summary": "Create a timetable entry",
                "parameters": [
                    {"description": "Timetable entry", "name": "entry", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.TimetableEntry"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/records.CreatedResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/resources": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Students only see resources of their own semester.",
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "List resources",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/records.Resource"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Admin only. uploaded_by and upload_date default to the caller and today.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "Upload a resource",
                "parameters": [
                    {"description": "Resource", "name": "resource", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.Resource"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/records.CreatedResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/faculty": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Faculty"],
                "summary": "List faculty",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/records.Faculty"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Admin only.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Faculty"],
                "summary": "Add a faculty member",
                "parameters": [
                    {"description": "Faculty member", "name": "faculty", "in": "body", "required": true, "schema": {"$ref": "#/definitions/records.Faculty"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/records.CreatedResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/feed": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Streams records created after the connection was opened, as Server-Sent Events named \"<kind>.created\". Only records visible to the caller are sent.",
                "produces": ["text/event-stream"],
                "tags": ["Feed"],
                "summary": "Live feed of new records",
                "responses": {
                    "200": {"description": "event stream", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string", "example": "Invalid token"}}
        },
        "auth.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "2473A31139"},
                "roll_no": {"type": "string", "example": "2473A31139"}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "bearer"},
                "user": {"$ref": "#/definitions/users.Profile"}
            }
        },
        "users.Profile": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "LIKITH NAIDU"},
                "role": {"type": "string", "example": "student"},
                "roll_no": {"type": "string", "example": "2473A31139"},
                "section": {"type": "string", "example": "FIRE FLIES"},
                "semester": {"type": "string", "example": "3"}
            }
        },
        "records.CreatedResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "message": {"type": "string", "example": "Notice created successfully"}
            }
        },
        "records.Notice": {
            "type": "object",
            "required": ["category", "date", "description", "title"],
            "properties": {
                "category": {"type": "string", "example": "Exams"},
                "date": {"type": "string", "example": "2024-03-01"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "pdf_url": {"type": "string"},
                "title": {"type": "string", "example": "Mid-Term Examinations Schedule"}
            }
        },
        "records.Event": {
            "type": "object",
            "required": ["date", "description", "location", "title"],
            "properties": {
                "date": {"type": "string", "example": "2024-03-25"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "location": {"type": "string", "example": "AI Department Auditorium"},
                "rsvp_link": {"type": "string"},
                "title": {"type": "string", "example": "AI Tech Fest 2024"}
            }
        },
        "records.TimetableEntry": {
            "type": "object",
            "required": ["day", "faculty", "section", "semester", "subject", "time"],
            "properties": {
                "day": {"type": "string", "example": "Monday"},
                "faculty": {"type": "string", "example": "Dr. Smith"},
                "id": {"type": "string"},
                "section": {"type": "string", "example": "A"},
                "semester": {"type": "string", "example": "3"},
                "subject": {"type": "string", "example": "Machine Learning"},
                "time": {"type": "string", "example": "09:00-10:00"}
            }
        },
        "records.Resource": {
            "type": "object",
            "required": ["file_url", "semester", "subject", "title"],
            "properties": {
                "file_url": {"type": "string"},
                "id": {"type": "string"},
                "semester": {"type": "string", "example": "3"},
                "subject": {"type": "string", "example": "Neural Networks"},
                "title": {"type": "string"},
                "upload_date": {"type": "string", "example": "2024-03-01"},
                "uploaded_by": {"type": "string", "example": "Department Admin"}
            }
        },
        "records.Faculty": {
            "type": "object",
            "required": ["designation", "email", "name"],
            "properties": {
                "designation": {"type": "string", "example": "Professor & Head of Department"},
                "email": {"type": "string", "example": "sarah.smith@pbrvits.edu.in"},
                "id": {"type": "string"},
                "linkedin": {"type": "string"},
                "name": {"type": "string", "example": "Dr. Sarah Smith"},
                "photo_url": {"type": "string"}
            }
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {
                "service": {"type": "string", "example": "Dept-AI Hub - PBR VITS API"},
                "status": {"type": "string", "example": "healthy"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Dept-AI Hub - PBR VITS API",
	Description:      "Backend of the AI department portal: roll-number login, notices, events, timetable, resources and faculty.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
