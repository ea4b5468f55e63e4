// Package docs holds the Swagger 2.0 description served at /swagger/*.
// Keep it in sync with the handler annotations when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.HealthResponse"
                        }
                    }
                },
                "summary": "Health check",
                "tags": [
                    "system"
                ]
            }
        },
        "/items/compare": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Score the similarity of two item titles and report whether the pair is already stored. Nothing is written.",
                "parameters": [
                    {
                        "description": "Items to compare",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PairRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.CompareResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    }
                },
                "summary": "Compare two items",
                "tags": [
                    "items"
                ]
            }
        },
        "/items/pairs": {
            "get": {
                "description": "List stored pairs, newest first",
                "parameters": [
                    {
                        "description": "Page size (default 100, max 1000)",
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    },
                    {
                        "description": "Number of pairs to skip",
                        "in": "query",
                        "name": "offset",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.PairListResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    }
                },
                "summary": "List item pairs",
                "tags": [
                    "items"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Score the pair and store the judgment. Negative pairs are refreshed and may be upgraded; positive pairs are never rewritten.",
                "parameters": [
                    {
                        "description": "Items to reconcile",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PairRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Pair already positive",
                        "schema": {
                            "$ref": "#/definitions/dto.ReconcileResponse"
                        }
                    },
                    "201": {
                        "description": "Pair created or updated",
                        "schema": {
                            "$ref": "#/definitions/dto.ReconcileResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    }
                },
                "summary": "Evaluate and store an item pair",
                "tags": [
                    "items"
                ]
            }
        },
        "/items/pairs/{pair_id}": {
            "delete": {
                "description": "Forget a pair so that the next evaluation creates it afresh",
                "parameters": [
                    {
                        "description": "Pair id, e.g. 1_2",
                        "in": "path",
                        "name": "pair_id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    }
                },
                "summary": "Delete an item pair",
                "tags": [
                    "items"
                ]
            },
            "get": {
                "parameters": [
                    {
                        "description": "Pair id, e.g. 1_2",
                        "in": "path",
                        "name": "pair_id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.PairResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    }
                },
                "summary": "Get an item pair",
                "tags": [
                    "items"
                ]
            }
        },
        "/ml/status": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ModelStatusResponse"
                        }
                    }
                },
                "summary": "Similarity model status",
                "tags": [
                    "ml"
                ]
            }
        },
        "/ml/train": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Fit a new model from labeled title pairs, persist it and publish it. The current model stays live if training fails.",
                "parameters": [
                    {
                        "description": "Labeled training pairs",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.TrainRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TrainResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "additionalProperties": {
                                "type": "string"
                            },
                            "type": "object"
                        }
                    }
                },
                "summary": "Train the similarity model",
                "tags": [
                    "ml"
                ]
            }
        }
    },
    "definitions": {
        "dto.CompareResponse": {
            "properties": {
                "are_equal": {
                    "type": "boolean"
                },
                "are_similar": {
                    "type": "boolean"
                },
                "confidence": {
                    "type": "number"
                },
                "existing_status": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "pair_exists": {
                    "type": "boolean"
                },
                "pair_id": {
                    "type": "string"
                },
                "similarity_score": {
                    "type": "number"
                },
                "strategy": {
                    "$ref": "#/definitions/similarity.Strategy"
                }
            },
            "type": "object"
        },
        "dto.HealthResponse": {
            "properties": {
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "store_backend": {
                    "type": "string"
                },
                "strategy": {
                    "$ref": "#/definitions/similarity.Strategy"
                },
                "timestamp": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dto.ItemRequest": {
            "properties": {
                "item_id": {
                    "example": 1,
                    "type": "integer"
                },
                "title": {
                    "example": "Telefono Samsung Galaxy",
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dto.ModelStatusResponse": {
            "properties": {
                "features": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                },
                "model_id": {
                    "type": "string"
                },
                "model_path": {
                    "type": "string"
                },
                "model_trained": {
                    "type": "boolean"
                },
                "similarity_threshold": {
                    "type": "number"
                },
                "strategy": {
                    "$ref": "#/definitions/similarity.Strategy"
                },
                "trained_at": {
                    "type": "string"
                },
                "training_samples": {
                    "type": "integer"
                },
                "trees": {
                    "type": "integer"
                },
                "vocabulary_size": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "dto.PairListResponse": {
            "properties": {
                "limit": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "offset": {
                    "type": "integer"
                },
                "pairs": {
                    "items": {
                        "$ref": "#/definitions/dto.PairResponse"
                    },
                    "type": "array"
                },
                "total": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "dto.PairRequest": {
            "properties": {
                "item_a": {
                    "$ref": "#/definitions/dto.ItemRequest"
                },
                "item_b": {
                    "$ref": "#/definitions/dto.ItemRequest"
                }
            },
            "type": "object"
        },
        "dto.PairResponse": {
            "properties": {
                "are_equal": {
                    "type": "boolean"
                },
                "are_similar": {
                    "type": "boolean"
                },
                "created_at": {
                    "type": "string"
                },
                "item_a_id": {
                    "type": "integer"
                },
                "item_a_title": {
                    "type": "string"
                },
                "item_b_id": {
                    "type": "integer"
                },
                "item_b_title": {
                    "type": "string"
                },
                "pair_id": {
                    "type": "string"
                },
                "similarity_score": {
                    "type": "number"
                },
                "source": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dto.ReconcileResponse": {
            "properties": {
                "action": {
                    "type": "string"
                },
                "are_equal": {
                    "type": "boolean"
                },
                "are_similar": {
                    "type": "boolean"
                },
                "confidence": {
                    "type": "number"
                },
                "created_at": {
                    "type": "string"
                },
                "item_a_id": {
                    "type": "integer"
                },
                "item_a_title": {
                    "type": "string"
                },
                "item_b_id": {
                    "type": "integer"
                },
                "item_b_title": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "pair_id": {
                    "type": "string"
                },
                "previous_state": {
                    "type": "string"
                },
                "similarity_score": {
                    "type": "number"
                },
                "source": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "strategy": {
                    "$ref": "#/definitions/similarity.Strategy"
                },
                "updated_at": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "dto.TrainRequest": {
            "properties": {
                "training_data": {
                    "items": {
                        "$ref": "#/definitions/dto.TrainingSampleRequest"
                    },
                    "type": "array"
                },
                "validation_data": {
                    "items": {
                        "$ref": "#/definitions/dto.TrainingSampleRequest"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "dto.TrainResponse": {
            "properties": {
                "message": {
                    "type": "string"
                },
                "model_id": {
                    "type": "string"
                },
                "trained_at": {
                    "type": "string"
                },
                "training_samples": {
                    "type": "integer"
                },
                "trees": {
                    "type": "integer"
                },
                "validation": {
                    "$ref": "#/definitions/similarity.Evaluation"
                },
                "validation_samples": {
                    "type": "integer"
                },
                "vocabulary_size": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "dto.TrainingSampleRequest": {
            "properties": {
                "is_similar": {
                    "example": 1,
                    "type": "integer"
                },
                "item_a_title": {
                    "example": "Mouse inalambrico Logitech",
                    "type": "string"
                },
                "item_b_title": {
                    "example": "Mouse wireless Logitech",
                    "type": "string"
                }
            },
            "type": "object"
        },
        "similarity.Evaluation": {
            "properties": {
                "accuracy": {
                    "type": "number"
                },
                "correct": {
                    "type": "integer"
                },
                "false_negative": {
                    "type": "integer"
                },
                "false_positive": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "true_negative": {
                    "type": "integer"
                },
                "true_positive": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "similarity.Strategy": {
            "enum": [
                "trained",
                "fallback"
            ],
            "type": "string",
            "x-enum-varnames": [
                "StrategyTrained",
                "StrategyFallback"
            ]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Item Pairs API",
	Description:      "Detects similar marketplace item pairs and keeps one judgment per pair",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
