// Package docs registers the swagger spec served at /swagger. Regenerate
// with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/api/ai-status": {
            "get": {"produces": ["application/json"], "tags": ["quizzes"], "summary": "Check if AI question generation is configured", "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}}
        },
        "/api/questions/generate": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["quizzes"], "summary": "Generate questions",
                "parameters": [{"description": "Generation parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.GenerateQuestionsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QuestionsResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/quizzes": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["quizzes"], "summary": "Start a quiz session",
                "parameters": [{"description": "Quiz parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.StartQuizRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/services.PlayState"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/quizzes/{id}": {
            "get": {"produces": ["application/json"], "tags": ["quizzes"], "summary": "Get quiz session state",
                "parameters": [{"type": "string", "description": "Quiz session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.PlayState"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}},
            "delete": {"produces": ["application/json"], "tags": ["quizzes"], "summary": "Discard a quiz session",
                "parameters": [{"type": "string", "description": "Quiz session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/quizzes/{id}/answer": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["quizzes"], "summary": "Submit an answer",
                "parameters": [{"type": "string", "description": "Quiz session ID", "name": "id", "in": "path", "required": true}, {"description": "Selected option", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SubmitAnswerRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.PlayState"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/quizzes/{id}/next": {
            "post": {"produces": ["application/json"], "tags": ["quizzes"], "summary": "Move to next question",
                "parameters": [{"type": "string", "description": "Quiz session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.PlayState"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/quizzes/{id}/report": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["quizzes"], "summary": "Get the session report",
                "parameters": [{"type": "string", "description": "Quiz session ID", "name": "id", "in": "path", "required": true}, {"description": "Whether the user liked the quiz", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handlers.ReportRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/users": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Create a user",
                "parameters": [{"description": "User data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateUserRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"type": "object"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/users/{id}": {
            "get": {"produces": ["application/json"], "tags": ["users"], "summary": "Get a user",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/users/{id}/stats": {
            "get": {"produces": ["application/json"], "tags": ["users"], "summary": "Get user statistics",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/users/{id}/suggest-difficulty": {
            "get": {"produces": ["application/json"], "tags": ["users"], "summary": "Suggest a difficulty",
                "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/api/leaderboard": {
            "get": {"produces": ["application/json"], "tags": ["users"], "summary": "Top users by points",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}}}}
        },
        "/ws/quiz/{id}": {
            "get": {"tags": ["websocket"], "summary": "WebSocket connection for quiz updates",
                "parameters": [{"type": "string", "description": "Quiz session ID", "name": "id", "in": "path", "required": true}],
                "responses": {"404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string", "example": "something went wrong"}}},
        "handlers.MessageResponse": {"type": "object", "properties": {"message": {"type": "string", "example": "operation successful"}}},
        "handlers.CreateUserRequest": {"type": "object", "required": ["email", "username"], "properties": {"email": {"type": "string", "example": "student42@studypal.com"}, "username": {"type": "string", "maxLength": 100, "minLength": 1, "example": "Student42"}}},
        "handlers.GenerateQuestionsRequest": {"type": "object", "required": ["difficulty", "topic"], "properties": {"difficulty": {"type": "string", "enum": ["easy", "medium", "hard"], "example": "medium"}, "num_questions": {"type": "integer", "maximum": 20, "minimum": 1, "example": 5}, "topic": {"type": "string", "maxLength": 200, "minLength": 1, "example": "Photosynthesis"}}},
        "handlers.StartQuizRequest": {"type": "object", "required": ["difficulty", "topic"], "properties": {"user_id": {"type": "integer", "example": 1}, "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"], "example": "medium"}, "num_questions": {"type": "integer", "maximum": 20, "minimum": 1, "example": 5}, "topic": {"type": "string", "maxLength": 200, "minLength": 1, "example": "Photosynthesis"}}},
        "handlers.SubmitAnswerRequest": {"type": "object", "required": ["answer"], "properties": {"answer": {"type": "string", "example": "Chlorophyll"}}},
        "handlers.ReportRequest": {"type": "object", "properties": {"liked": {"type": "boolean", "example": true}}},
        "handlers.QuestionsResponse": {"type": "object", "properties": {"questions": {"type": "array", "items": {"$ref": "#/definitions/quiz.Question"}}}},
        "quiz.Question": {"type": "object", "properties": {"question": {"type": "string"}, "options": {"type": "array", "items": {"type": "string"}}, "correct_answer": {"type": "string"}, "explanation": {"type": "string"}}},
        "services.PlayState": {"type": "object"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StudyPal API",
	Description:      "Adaptive quiz sessions with scoring, streaks and AI feedback",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
