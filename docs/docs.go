// Package docs registers the OpenAPI description served at /swagger/.
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
        "/exams/parse": {
            "post": {
                "description": "Salvages an exam document from raw, possibly malformed model output. Never fails on bad input: unrecoverable text yields default questions.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Exams"],
                "summary": "Parse model output",
                "parameters": [
                    {"description": "Raw output and expected shape", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ParseExamRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ParseExamResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/practice/generate": {
            "post": {
                "description": "Builds a batch one question at a time from the supplied model outputs, regenerating on duplicates and falling back to default questions.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Practice"],
                "summary": "Generate practice questions",
                "parameters": [
                    {"description": "Batch request", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.GeneratePracticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.GeneratePracticeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/grade": {
            "post": {
                "description": "Deterministic all-or-nothing verdict for a single answer.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Grading"],
                "summary": "Grade an answer",
                "parameters": [
                    {"description": "Grading triple", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.GradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/grader.Result"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/evaluations": {
            "post": {
                "description": "Grades every answer immediately. Detailed analysis is filled in asynchronously; poll the status endpoint to see when it is complete.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Evaluations"],
                "summary": "Evaluate a practice attempt",
                "parameters": [
                    {"description": "Questions and answers", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateEvaluationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.EvaluationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/evaluations/{evaluationID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Evaluations"],
                "summary": "Get an evaluation",
                "parameters": [
                    {"type": "string", "description": "Evaluation ID", "name": "evaluationID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.EvaluationResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/evaluations/{evaluationID}/status": {
            "get": {
                "description": "Per-item flag telling whether detailed analysis is still pending.",
                "produces": ["application/json"],
                "tags": ["Evaluations"],
                "summary": "Get analysis status",
                "parameters": [
                    {"type": "string", "description": "Evaluation ID", "name": "evaluationID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.EvaluationStatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "api.ParseExamRequest": {
            "type": "object",
            "properties": {
                "raw": {"type": "string"},
                "subject": {"type": "string", "example": "Go"},
                "shape": {"type": "string", "example": "items"},
                "field": {"type": "string", "example": "questions"},
                "quotas": {"type": "array", "items": {"$ref": "#/definitions/question.Quota"}},
                "default_type": {"type": "string", "example": "choice"}
            }
        },
        "api.AttemptResponse": {
            "type": "object",
            "properties": {
                "strategy": {"type": "string", "example": "truncation"},
                "succeeded": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "api.ParseExamResponse": {
            "type": "object",
            "properties": {
                "document": {"type": "object"},
                "provenance": {"type": "string", "example": "strict"},
                "diagnostic": {"type": "string", "example": "truncated input"},
                "replaced": {"type": "integer"},
                "attempts": {"type": "array", "items": {"$ref": "#/definitions/api.AttemptResponse"}}
            }
        },
        "api.GeneratePracticeRequest": {
            "type": "object",
            "properties": {
                "topic": {"type": "string", "example": "closures"},
                "type": {"type": "string", "example": "fill"},
                "difficulty": {"type": "string", "example": "medium"},
                "count": {"type": "integer", "example": 5},
                "outputs": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.GeneratePracticeResponse": {
            "type": "object",
            "properties": {
                "bank_id": {"type": "string"},
                "topic": {"type": "string", "example": "closures"},
                "questions": {"type": "array", "items": {"type": "object"}},
                "total_score": {"type": "integer", "example": 50},
                "generated": {"type": "integer", "example": 4},
                "defaults": {"type": "integer", "example": 1}
            }
        },
        "api.GradeRequest": {
            "type": "object",
            "properties": {
                "questionType": {"type": "string", "example": "multiple"},
                "studentAnswer": {"type": "string", "example": "C,A"},
                "referenceAnswer": {"type": "string", "example": "A,C"},
                "points": {"type": "integer", "example": 10}
            }
        },
        "grader.Result": {
            "type": "object",
            "properties": {
                "isCorrect": {"type": "boolean"},
                "score": {"type": "integer", "example": 10}
            }
        },
        "api.CreateEvaluationRequest": {
            "type": "object",
            "properties": {
                "topic": {"type": "string", "example": "closures"},
                "questions": {"type": "array", "items": {"type": "object"}},
                "answers": {"type": "array", "items": {"type": "string"}},
                "time_used": {"type": "integer", "example": 300}
            }
        },
        "api.EvaluationItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "question_id": {"type": "integer", "example": 1},
                "type": {"type": "string", "example": "fill"},
                "title": {"type": "string"},
                "user_answer": {"type": "string"},
                "correct_answer": {"type": "string"},
                "is_correct": {"type": "boolean"},
                "score": {"type": "integer", "example": 10},
                "max_score": {"type": "integer", "example": 10},
                "feedback": {"type": "string"},
                "explanation": {"type": "string"},
                "detailed_analysis": {"type": "string"},
                "suggestion": {"type": "string"},
                "needs_ai_analysis": {"type": "boolean"}
            }
        },
        "api.EvaluationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "topic": {"type": "string", "example": "closures"},
                "total_score": {"type": "integer", "example": 30},
                "max_score": {"type": "integer", "example": 50},
                "correct_count": {"type": "integer", "example": 3},
                "accuracy": {"type": "number", "example": 60},
                "grade": {"type": "string", "example": "pass"},
                "suggestion": {"type": "string"},
                "time_used": {"type": "integer", "example": 300},
                "created_at": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/api.EvaluationItemResponse"}}
            }
        },
        "api.ItemStatusResponse": {
            "type": "object",
            "properties": {
                "item_id": {"type": "string"},
                "position": {"type": "integer"},
                "needs_ai_analysis": {"type": "boolean"}
            }
        },
        "api.EvaluationStatusResponse": {
            "type": "object",
            "properties": {
                "evaluation_id": {"type": "string"},
                "all_completed": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/api.ItemStatusResponse"}}
            }
        },
        "question.Quota": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "choice"},
                "count": {"type": "integer", "example": 5},
                "scorePer": {"type": "integer", "example": 2},
                "difficulty": {"type": "string", "example": "easy"}
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
	Title:            "Quizcore API",
	Description:      "Exam output salvage, practice generation and answer grading.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
