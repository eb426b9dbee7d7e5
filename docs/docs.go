// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/analytics/heatmap": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Aggregates the selected completion series over every day of the year",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Yearly completion heatmap",
                "parameters": [
                    {"type": "integer", "description": "Calendar year, defaults to the current one", "name": "year", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Series to include", "name": "series_id", "in": "query"},
                    {"type": "boolean", "description": "Include paused series in the default selection", "name": "include_inactive", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Heatmap"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/analytics/streaks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Current and longest streaks",
                "parameters": [
                    {"type": "string", "description": "Reference day (YYYY-MM-DD), defaults to today", "name": "as_of", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.StreakResult"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/analytics/trends": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Compares the average of the most recent records with the records right before them",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Reduction trends of count series",
                "parameters": [
                    {"type": "string", "description": "Reference day (YYYY-MM-DD), defaults to today", "name": "as_of", "in": "query"},
                    {"type": "integer", "default": 7, "description": "Recent window size in records", "name": "recent_days", "in": "query"},
                    {"type": "integer", "default": 7, "description": "Prior window size in records", "name": "prior_days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.TrendResult"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/analytics/series/{id}/impact": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Monthly and yearly projection of a count series",
                "parameters": [
                    {"type": "string", "description": "Series ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Reference day (YYYY-MM-DD), defaults to today", "name": "as_of", "in": "query"},
                    {"type": "integer", "default": 7, "description": "Trailing window in days", "name": "window_days", "in": "query"},
                    {"type": "number", "description": "Cost of one occurrence", "name": "per_unit_cost", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ImpactProjection"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/analytics/intensity": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Intensity bucket of a completion rate",
                "parameters": [
                    {"type": "number", "description": "Completion rate between 0 and 100", "name": "rate", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.IntensityResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.CalendarDay": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "completed_count": {"type": "integer"},
                "total_count": {"type": "integer"},
                "completion_rate": {"type": "number"},
                "intensity": {"type": "string", "enum": ["none", "veryLow", "low", "medium", "high", "full"]},
                "entities": {"type": "array", "items": {"$ref": "#/definitions/domain.EntityDetail"}},
                "notes": {"type": "array", "items": {"$ref": "#/definitions/domain.DayNote"}}
            }
        },
        "domain.DayNote": {
            "type": "object",
            "properties": {
                "series_id": {"type": "string"},
                "series_name": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "domain.EntityDetail": {
            "type": "object",
            "properties": {
                "series_id": {"type": "string"},
                "name": {"type": "string"},
                "completed": {"type": "boolean"},
                "color": {"type": "string"}
            }
        },
        "domain.GridSlot": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "out_of_year": {"type": "boolean"}
            }
        },
        "domain.WeekRow": {
            "type": "object",
            "properties": {
                "start": {"type": "string"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/domain.GridSlot"}},
                "month_label": {"type": "integer"}
            }
        },
        "domain.YearGrid": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "weeks": {"type": "array", "items": {"$ref": "#/definitions/domain.WeekRow"}}
            }
        },
        "domain.Heatmap": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "empty": {"type": "boolean"},
                "grid": {"$ref": "#/definitions/domain.YearGrid"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/domain.CalendarDay"}}
            }
        },
        "domain.StreakResult": {
            "type": "object",
            "properties": {
                "series_id": {"type": "string"},
                "length": {"type": "integer"},
                "longest": {"type": "integer"},
                "as_of": {"type": "string"}
            }
        },
        "domain.TrendResult": {
            "type": "object",
            "properties": {
                "series_id": {"type": "string"},
                "recent_window_average": {"type": "number"},
                "prior_window_average": {"type": "number"},
                "percent_change": {"type": "number"},
                "status": {"type": "string", "enum": ["improving", "moderate", "needs_attention"]},
                "recent_records": {"type": "integer"},
                "prior_records": {"type": "integer"}
            }
        },
        "domain.ImpactProjection": {
            "type": "object",
            "properties": {
                "series_id": {"type": "string"},
                "window_days": {"type": "integer"},
                "per_unit_cost": {"type": "number"},
                "window_total": {"type": "number"},
                "monthly_projection": {"type": "number"},
                "yearly_projection": {"type": "number"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "http.IntensityResponse": {
            "type": "object",
            "properties": {
                "rate": {"type": "number"},
                "intensity": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Insights API",
	Description:      "Heatmaps, streaks and reduction trends over habit records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
