// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/matches": {
            "get": {
                "summary": "List matches",
                "parameters": [{"name": "sort", "in": "query", "type": "string", "enum": ["newest", "oldest", "date"]}],
                "responses": {"200": {"description": "matches"}}
            },
            "post": {
                "summary": "Start a match",
                "parameters": [{"name": "match", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StartMatchInput"}}],
                "responses": {"201": {"description": "match"}, "400": {"description": "validation error"}, "404": {"description": "team or tournament not found"}}
            }
        },
        "/matches/{matchID}": {
            "get": {
                "summary": "Get a match",
                "parameters": [{"name": "matchID", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "match and status"}, "404": {"description": "not found"}}
            },
            "patch": {
                "summary": "Edit opponent, date, venue or tournament of a match",
                "parameters": [
                    {"name": "matchID", "in": "path", "required": true, "type": "string"},
                    {"name": "match", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateMatchInput"}}
                ],
                "responses": {"200": {"description": "updated match"}, "400": {"description": "validation error"}, "404": {"description": "match or tournament not found"}}
            },
            "delete": {
                "summary": "Delete a match",
                "parameters": [{"name": "matchID", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "deleted"}, "404": {"description": "not found"}}
            }
        },
        "/matches/{matchID}/sets/result": {
            "post": {
                "summary": "Record the result of the set in progress",
                "parameters": [
                    {"name": "matchID", "in": "path", "required": true, "type": "string"},
                    {"name": "score", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScoreInput"}}
                ],
                "responses": {"200": {"description": "updated match"}, "400": {"description": "tied or negative score"}, "409": {"description": "match completed"}}
            }
        },
        "/matches/{matchID}/sets/{setIndex}/score": {
            "put": {
                "summary": "Correct the score of a completed set",
                "parameters": [
                    {"name": "matchID", "in": "path", "required": true, "type": "string"},
                    {"name": "setIndex", "in": "path", "required": true, "type": "integer"},
                    {"name": "score", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScoreInput"}}
                ],
                "responses": {"200": {"description": "updated match"}, "409": {"description": "set not completed"}}
            }
        },
        "/matches/{matchID}/sets/{setIndex}/lineup/{slot}": {
            "put": {
                "summary": "Assign a player to a lineup slot (7 is the libero)",
                "parameters": [
                    {"name": "matchID", "in": "path", "required": true, "type": "string"},
                    {"name": "setIndex", "in": "path", "required": true, "type": "integer"},
                    {"name": "slot", "in": "path", "required": true, "type": "integer", "minimum": 1, "maximum": 7},
                    {"name": "player", "in": "body", "required": true, "schema": {"type": "object", "properties": {"player_id": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "updated match"}, "409": {"description": "invalid slot, set or completed match"}}
            },
            "delete": {
                "summary": "Clear a lineup slot",
                "parameters": [
                    {"name": "matchID", "in": "path", "required": true, "type": "string"},
                    {"name": "setIndex", "in": "path", "required": true, "type": "integer"},
                    {"name": "slot", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "updated match"}}
            }
        },
        "/matches/{matchID}/sets/{setIndex}/lineup/copy": {
            "post": {
                "summary": "Replace the lineup of a set with the lineup of a completed set",
                "parameters": [
                    {"name": "matchID", "in": "path", "required": true, "type": "string"},
                    {"name": "setIndex", "in": "path", "required": true, "type": "integer"},
                    {"name": "source", "in": "body", "required": true, "schema": {"type": "object", "properties": {"source_index": {"type": "integer"}}}}
                ],
                "responses": {"200": {"description": "updated match"}, "409": {"description": "source set not completed"}}
            }
        },
        "/matches/{matchID}/sets/active": {
            "get": {"summary": "Set in progress", "responses": {"200": {"description": "active set"}, "409": {"description": "no set in progress"}}}
        },
        "/matches/{matchID}/sets/completed": {
            "get": {"summary": "Completed sets in play order", "responses": {"200": {"description": "sets"}}}
        },
        "/history": {
            "get": {
                "summary": "Filtered match history with results",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "result", "in": "query", "type": "string", "enum": ["ALL", "WON", "LOST"]},
                    {"name": "venue", "in": "query", "type": "string", "enum": ["ALL", "HOME", "AWAY"]},
                    {"name": "sort", "in": "query", "type": "string", "enum": ["newest", "oldest", "date"]}
                ],
                "responses": {"200": {"description": "entries and record"}}
            }
        },
        "/history/record": {
            "get": {"summary": "Overall win/loss record", "responses": {"200": {"description": "record"}}}
        },
        "/players/{playerID}/history": {
            "get": {"summary": "Matches a player took part in", "responses": {"200": {"description": "participations"}, "404": {"description": "not found"}}}
        },
        "/teams": {
            "get": {"summary": "List teams", "responses": {"200": {"description": "teams"}}},
            "post": {"summary": "Create a team", "responses": {"201": {"description": "team"}}}
        },
        "/teams/{teamID}/logo": {
            "post": {
                "summary": "Upload a team logo",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "logo", "in": "formData", "required": true, "type": "file"}],
                "responses": {"200": {"description": "team"}, "503": {"description": "uploads not configured"}}
            }
        },
        "/players": {
            "get": {"summary": "List players", "responses": {"200": {"description": "players"}}},
            "post": {"summary": "Create a player", "responses": {"201": {"description": "player"}}}
        },
        "/tournaments": {
            "get": {"summary": "List tournaments", "responses": {"200": {"description": "tournaments"}}},
            "post": {"summary": "Create a tournament", "responses": {"201": {"description": "tournament"}}}
        },
        "/me/data": {
            "delete": {"summary": "Delete every document of the current user", "responses": {"200": {"description": "deleted counts"}}}
        }
    },
    "definitions": {
        "StartMatchInput": {
            "type": "object",
            "required": ["team_id", "opponent"],
            "properties": {
                "team_id": {"type": "string"},
                "tournament_id": {"type": "string"},
                "opponent": {"type": "string"},
                "date": {"type": "string", "example": "2024-06-01"},
                "is_home": {"type": "boolean", "default": true}
            }
        },
        "UpdateMatchInput": {
            "type": "object",
            "properties": {
                "opponent": {"type": "string"},
                "date": {"type": "string", "example": "2024-06-01"},
                "is_home": {"type": "boolean"},
                "tournament_id": {"type": "string"}
            }
        },
        "ScoreInput": {
            "type": "object",
            "required": ["score_team", "score_opponent"],
            "properties": {
                "score_team": {"type": "integer", "minimum": 0},
                "score_opponent": {"type": "integer", "minimum": 0}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Volley Coach API",
	Description:      "Match scoring, lineups and history for volleyball coaches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
