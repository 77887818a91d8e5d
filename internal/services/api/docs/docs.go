// Package docs registers the OpenAPI document served at /api/docs/doc.json.
// Keep it in step with the godoc annotations on the handlers.
package docs

import (
	"doomscroll/internal/modkit/swaggerkit"

	"github.com/swaggo/swag/v2"
)

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {
    "title": "{{.Title}}",
    "description": "{{.Description}}",
    "version": "{{.Version}}"
  },
  "paths": {
    "/events": {
      "post": {
        "tags": ["Events"],
        "summary": "Ingest a batch of usage events",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/IngestBatch"}}}},
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/IngestResult"}}}}}
      }
    },
    "/classify": {
      "post": {
        "tags": ["Classify"],
        "summary": "Classify page text without storing it",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ClassifyInput"}}}},
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ClassificationResult"}}}}}
      }
    },
    "/stats/sentiment": {
      "get": {
        "tags": ["Stats"],
        "summary": "Doom, neutral and positive seconds summed over the trailing days",
        "parameters": [
          {"name": "days", "in": "query", "schema": {"type": "integer", "default": 7, "minimum": 1, "maximum": 366}},
          {"name": "user_id", "in": "query", "schema": {"type": "string"}}
        ],
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/SentimentTotals"}}}}}
      }
    },
    "/stats/overview": {
      "get": {
        "tags": ["Stats"],
        "summary": "Event totals, top domains and daily trends",
        "parameters": [
          {"name": "days", "in": "query", "schema": {"type": "integer", "default": 7}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "default": 10, "maximum": 100}}
        ],
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/stats/users/{user_id}": {
      "get": {
        "tags": ["Stats"],
        "summary": "Per-user event totals",
        "parameters": [
          {"name": "user_id", "in": "path", "required": true, "schema": {"type": "string"}},
          {"name": "days", "in": "query", "schema": {"type": "integer", "default": 7}}
        ],
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/stats/users/{user_id}/daily": {
      "get": {
        "tags": ["Stats"],
        "summary": "Per-user daily buckets",
        "parameters": [
          {"name": "user_id", "in": "path", "required": true, "schema": {"type": "string"}},
          {"name": "days", "in": "query", "schema": {"type": "integer", "default": 7}}
        ],
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok"}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}},
    "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info and uptime", "responses": {"200": {"description": "ok"}}}},
    "/meta/rollup": {"get": {"tags": ["Meta"], "summary": "Rollup engine status and last run report", "responses": {"200": {"description": "ok"}, "404": {"description": "no engine in this process"}}}}
  },
  "components": {
    "schemas": {
      "IngestEvent": {
        "type": "object",
        "required": ["user_id", "event_type", "domain"],
        "properties": {
          "id": {"type": "string", "format": "uuid"},
          "user_id": {"type": "string"},
          "event_type": {"type": "string", "example": "content_analysis"},
          "timestamp": {"type": "string", "format": "date-time"},
          "domain": {"type": "string"},
          "url": {"type": "string"},
          "duration": {"type": "integer"},
          "extension_version": {"type": "string"},
          "browser": {"type": "string"},
          "visible_text": {"type": "string"},
          "structured_data": {"type": "object"},
          "classification": {"$ref": "#/components/schemas/ClassificationResult"}
        }
      },
      "IngestBatch": {
        "type": "object",
        "required": ["events"],
        "properties": {"events": {"type": "array", "minItems": 1, "maxItems": 500, "items": {"$ref": "#/components/schemas/IngestEvent"}}}
      },
      "IngestResult": {"type": "object", "properties": {"processed_count": {"type": "integer"}}},
      "ClassifyInput": {
        "type": "object",
        "properties": {"visible_text": {"type": "string"}, "structured_data": {"type": "object"}}
      },
      "ClassificationResult": {
        "type": "object",
        "properties": {
          "sentiment": {"type": "string", "enum": ["positive", "negative", "neutral"]},
          "content_type": {"type": "string"},
          "doom_score": {"type": "number", "minimum": 0, "maximum": 1},
          "scroll_score": {"type": "number", "minimum": 0, "maximum": 1},
          "model_version": {"type": "string"}
        }
      },
      "SentimentTotals": {
        "type": "object",
        "properties": {
          "days": {"type": "integer"},
          "since": {"type": "string", "format": "date"},
          "user_id": {"type": "string"},
          "doom_seconds": {"type": "integer"},
          "neutral_seconds": {"type": "integer"},
          "positive_seconds": {"type": "integer"},
          "total_seconds": {"type": "integer"}
        }
      }
    }
  }
}`

// SwaggerInfo holds the fields templated into the document
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "Doomscroll API",
	Description:      "Usage event ingest, on-demand classification and daily sentiment rollups",
	InfoInstanceName: swaggerkit.InstanceName,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
