package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Transcript API",
        "description": "Academic transcript generation for enrolled students",
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
        {"name": "Transcripts", "description": "Transcript download and preview"}
    ],
    "paths": {
        "/completedCourses/download": {
            "post": {
                "tags": ["Transcripts"],
                "summary": "Download transcript PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "Transcript attachment", "schema": {"type": "file"}},
                    "400": {"description": "Transcript could not be generated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing, invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student record not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/transcripts/download": {
            "post": {
                "tags": ["Transcripts"],
                "summary": "Download transcript",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf", "text/csv"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "Transcript attachment", "schema": {"type": "file"}},
                    "400": {"description": "Transcript could not be generated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing, invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/transcripts/me": {
            "get": {
                "tags": ["Transcripts"],
                "summary": "Preview transcript",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TranscriptEnvelope"}},
                    "400": {"description": "Transcript could not be built", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing, invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/transcripts/grade-scale": {
            "get": {
                "tags": ["Transcripts"],
                "summary": "Grade scale",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Grade scale unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "TranscriptCourse": {
            "type": "object",
            "properties": {
                "course_code": {"type": "string"},
                "course_title": {"type": "string"},
                "course_level": {"type": "integer"},
                "grade": {"type": "string"},
                "mark": {"type": "integer"},
                "points": {"type": "number"},
                "semester": {"type": "integer"}
            }
        },
        "GpaSummary": {
            "type": "object",
            "properties": {
                "gpa": {"type": "number"},
                "completed": {"type": "integer"},
                "passed": {"type": "integer"},
                "failed": {"type": "integer"}
            }
        },
        "Transcript": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "name": {"type": "string"},
                "programme": {"type": "string"},
                "history": {"type": "array", "items": {"$ref": "#/definitions/TranscriptCourse"}},
                "passed": {"type": "array", "items": {"$ref": "#/definitions/TranscriptCourse"}},
                "failed": {"type": "array", "items": {"$ref": "#/definitions/TranscriptCourse"}},
                "summary": {"$ref": "#/definitions/GpaSummary"}
            }
        },
        "TranscriptEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Transcript"}
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
