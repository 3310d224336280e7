// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package docs holds the OpenAPI document served at /swagger/. It mirrors
// the swag annotations on the internal/api handlers; regenerate with
//
//	swag init -g cmd/server/docs.go -o docs --parseInternal
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/marquee/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/cache/clear": {
            "post": {
                "description": "Deletes entries whose key starts with prefix, or every entry when the body or prefix is empty.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cache"
                ],
                "summary": "Clear cached provider responses",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Endpoint prefix to clear",
                        "name": "request",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/api.ClearCacheRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Entries deleted",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.ClearCacheResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid prefix",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "500": {
                        "description": "Cache store unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/cache/stats": {
            "get": {
                "description": "Entry counts (total, valid, expired), a sampled size estimate, entries per endpoint prefix, and creation/expiry bounds.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cache"
                ],
                "summary": "Metadata cache statistics",
                "responses": {
                    "200": {
                        "description": "Cache statistics",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/metacache.Stats"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Cache store unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/cache/ttl": {
            "put": {
                "description": "Sets the time-to-live for entries written from now on. Existing entries keep their expiry. Non-positive values are rejected and the previous TTL stays.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Cache"
                ],
                "summary": "Set the cache TTL",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "TTL in hours",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.SetTTLRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "TTL in force",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.TTLResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid TTL",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "description": "Returns 200 while the process serves requests, regardless of dependencies.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "Service is alive",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Returns 200 when the metadata cache store and the catalog snapshot are available, 503 otherwise.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Service is ready",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "503": {
                        "description": "Service is not ready",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/metadata/{media}/{externalID}": {
            "get": {
                "description": "Fetches a movie or series through the metadata cache and returns it as a content item. Serves stale cached data when the provider is down.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Metadata"
                ],
                "summary": "Normalized title metadata",
                "parameters": [
                    {
                        "enum": [
                            "movie",
                            "tv"
                        ],
                        "type": "string",
                        "description": "Provider media",
                        "name": "media",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Provider id",
                        "name": "externalID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Locale, e.g. es-ES; unsupported values use the default",
                        "name": "language",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Normalized title",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.ContentItem"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid media or id",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Title not found",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "503": {
                        "description": "Provider unavailable and nothing cached",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/recommendations": {
            "get": {
                "description": "Blends genre discovery, favorites, watch history and popularity. Without user_id the list is popularity based. Items the user watched or favorited are excluded.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Recommendations for a user",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Catalog user id",
                        "name": "user_id",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Number of items (default from config)",
                        "name": "count",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Recommended items",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.ItemsResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid count or user id",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown user",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "500": {
                        "description": "Catalog unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        },
        "/similar/{contentID}": {
            "get": {
                "description": "Provider similar and recommended titles, era-constrained genre discovery, then a local content score. The item itself is never returned.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendations"
                ],
                "summary": "Items similar to a catalog item",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Catalog content id",
                        "name": "contentID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Number of items (default from config)",
                        "name": "count",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Similar items",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/api.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.ItemsResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid count",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown content id",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    },
                    "500": {
                        "description": "Catalog unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.APIResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {},
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                }
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "degraded": {
                    "type": "boolean"
                },
                "duration_ms": {
                    "type": "integer"
                },
                "request_id": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "$ref": "#/definitions/api.APIError"
                },
                "meta": {
                    "$ref": "#/definitions/api.APIMeta"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "api.CatalogSummary": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "integer"
                },
                "loaded_at": {
                    "type": "string"
                }
            }
        },
        "api.ClearCacheRequest": {
            "type": "object",
            "properties": {
                "prefix": {
                    "type": "string",
                    "maxLength": 256
                }
            }
        },
        "api.ClearCacheResponse": {
            "type": "object",
            "properties": {
                "deleted": {
                    "type": "integer"
                },
                "prefix": {
                    "type": "string"
                }
            }
        },
        "api.HealthStatus": {
            "type": "object",
            "properties": {
                "catalog": {
                    "$ref": "#/definitions/api.CatalogSummary"
                },
                "checks": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "status": {
                    "type": "string"
                },
                "uptime_seconds": {
                    "type": "number"
                }
            }
        },
        "api.ItemsResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.ContentItem"
                    }
                }
            }
        },
        "api.SetTTLRequest": {
            "type": "object",
            "required": [
                "hours"
            ],
            "properties": {
                "hours": {
                    "type": "integer",
                    "minimum": 1
                }
            }
        },
        "api.TTLResponse": {
            "type": "object",
            "properties": {
                "ttl_hours": {
                    "type": "integer"
                }
            }
        },
        "metacache.Stats": {
            "type": "object",
            "properties": {
                "approx_size_bytes": {
                    "type": "integer"
                },
                "by_prefix": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "expired": {
                    "type": "integer"
                },
                "newest_created_at": {
                    "type": "string"
                },
                "next_expiry": {
                    "type": "string"
                },
                "oldest_created_at": {
                    "type": "string"
                },
                "sample_size": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "ttl_hours": {
                    "type": "integer"
                },
                "valid": {
                    "type": "integer"
                }
            }
        },
        "models.ContentItem": {
            "type": "object",
            "properties": {
                "backdrop_url": {
                    "type": "string"
                },
                "cast": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "directors": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "external_id": {
                    "type": "integer"
                },
                "genres": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "id": {
                    "type": "string"
                },
                "media": {
                    "type": "string",
                    "enum": [
                        "movie",
                        "tv"
                    ]
                },
                "original_title": {
                    "type": "string"
                },
                "overview": {
                    "type": "string"
                },
                "poster_url": {
                    "type": "string"
                },
                "rating": {
                    "type": "number"
                },
                "tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "title": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "movie",
                        "series",
                        "documentary",
                        "animation"
                    ]
                },
                "view_count": {
                    "type": "integer"
                },
                "writers": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "year": {
                    "type": "string"
                }
            }
        }
    },
    "tags": [
        {
            "description": "Recommendation and similarity lists built from the catalog and the provider",
            "name": "Recommendations"
        },
        {
            "description": "Normalized provider metadata served through the cache",
            "name": "Metadata"
        },
        {
            "description": "Metadata cache statistics and administration",
            "name": "Cache"
        },
        {
            "description": "Liveness and readiness checks",
            "name": "Health"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Marquee API",
	Description:      "Metadata cache and recommendation service in front of a movie/TV metadata provider.\n\n## Degradation\n\nRecommendation and similarity endpoints never fail on provider outages. They return\nwhatever the strategy pipeline produced, padded from the local catalog.\n\n## Error Responses\n\n```json\n{\n  \"success\": false,\n  \"error\": {\"code\": \"VALIDATION_ERROR\", \"message\": \"count must be at least 1\"},\n  \"meta\": {\"timestamp\": \"2026-03-01T12:00:00Z\", \"duration_ms\": 1}\n}\n```",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
