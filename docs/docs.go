// Package docs holds the swagger document of the eventhub API.
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
        "/": {
            "get": {
                "tags": [
                    "events"
                ],
                "summary": "Landing redirect",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "303": {
                        "description": "redirect to the landing route"
                    },
                    "503": {
                        "description": "error.code: backend_uninitialized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                }
            }
        },
        "/login": {
            "get": {
                "tags": [
                    "auth"
                ],
                "summary": "Login view",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "object",
                                    "properties": {
                                        "signed_in": {
                                            "type": "boolean"
                                        }
                                    }
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "303": {
                        "description": "redirect to the dashboard"
                    }
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Register an account",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "409": {
                        "description": "error.code: conflict",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "503": {
                        "description": "error.code: backend_uninitialized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Email and password",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.CredentialsRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/auth/login": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Sign in with email and password",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "303": {
                        "description": "redirect to /admin/dashboard or /user/dashboard"
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: invalid_credentials",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "503": {
                        "description": "error.code: backend_uninitialized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Email and password",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.CredentialsRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/auth/logout": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Sign out",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "303": {
                        "description": "redirect to /login"
                    },
                    "502": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                }
            }
        },
        "/user/dashboard": {
            "get": {
                "tags": [
                    "user"
                ],
                "summary": "User dashboard",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "$ref": "#/definitions/app.UserDashboard"
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "303": {
                        "description": "redirect to /login when signed out"
                    },
                    "502": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                }
            }
        },
        "/user/create-event": {
            "get": {
                "tags": [
                    "user"
                ],
                "summary": "Event submission form",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "$ref": "#/definitions/app.CreateEventForm"
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "user"
                ],
                "summary": "Submit an event for approval",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "303": {
                        "description": "redirect to /user/dashboard"
                    },
                    "400": {
                        "description": "error.code: bad_request",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "502": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "description": "Event data",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controllers.CreateEventRequest"
                        }
                    }
                ],
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/user/upcoming-events": {
            "get": {
                "tags": [
                    "user"
                ],
                "summary": "Approved events",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/app.UpcomingEvent"
                                    }
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "502": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                }
            }
        },
        "/user/upcoming-events/{eventID}/join": {
            "post": {
                "tags": [
                    "user"
                ],
                "summary": "Join an event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "$ref": "#/definitions/domain.EventParticipant"
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "409": {
                        "description": "error.code: conflict",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "Admin dashboard",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "$ref": "#/definitions/app.AdminDashboard"
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "303": {
                        "description": "redirect to /login or /user/dashboard when not an admin"
                    },
                    "502": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                }
            }
        },
        "/admin/pending-events": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "Events awaiting review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Event"
                                    }
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "502": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                }
            }
        },
        "/admin/pending-events/{eventID}/approve": {
            "post": {
                "tags": [
                    "admin"
                ],
                "summary": "Approve a pending event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "$ref": "#/definitions/domain.Event"
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "error.code: forbidden",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "409": {
                        "description": "error.code: conflict",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/pending-events/{eventID}/reject": {
            "post": {
                "tags": [
                    "admin"
                ],
                "summary": "Reject a pending event",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "$ref": "#/definitions/domain.Event"
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "error.code: forbidden",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "409": {
                        "description": "error.code: conflict",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/all-events": {
            "get": {
                "tags": [
                    "admin"
                ],
                "summary": "Approved events with their participants",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.EventWithParticipants"
                                    }
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "502": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                }
            }
        },
        "/events/{eventID}": {
            "get": {
                "tags": [
                    "events"
                ],
                "summary": "Get an event by ID",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "$ref": "#/definitions/domain.Event"
                                },
                                "error": {
                                    "$ref": "#/definitions/helpers.APIError"
                                },
                                "notifications": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/domain.Notification"
                                    }
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "error.code: unauthorized",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "404": {
                        "description": "error.code: not_found",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "502": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Event ID",
                        "name": "eventID",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/healthz": {
            "get": {
                "tags": [
                    "operations"
                ],
                "summary": "Liveness and backend status",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    },
                    "503": {
                        "description": "error.code: remote_failure",
                        "schema": {
                            "$ref": "#/definitions/helpers.APIResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "$ref": "#/definitions/helpers.APIError"
                },
                "notifications": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Notification"
                    }
                }
            }
        },
        "domain.Notification": {
            "type": "object",
            "properties": {
                "level": {
                    "type": "string",
                    "enum": [
                        "success",
                        "error"
                    ]
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            }
        },
        "domain.Identity": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "roles": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "datetime": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "approved",
                        "rejected"
                    ]
                },
                "created_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "domain.EventParticipant": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "event_id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "domain.EventWithParticipants": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "datetime": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "approved",
                        "rejected"
                    ]
                },
                "created_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "participants": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "user_id": {
                                "type": "string"
                            },
                            "email": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "app.UpcomingEvent": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "datetime": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "approved",
                        "rejected"
                    ]
                },
                "created_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "joined": {
                    "type": "boolean"
                }
            }
        },
        "app.UserDashboard": {
            "type": "object",
            "properties": {
                "identity": {
                    "$ref": "#/definitions/domain.Identity"
                },
                "approved_count": {
                    "type": "integer"
                },
                "joined_count": {
                    "type": "integer"
                }
            }
        },
        "app.AdminDashboard": {
            "type": "object",
            "properties": {
                "identity": {
                    "$ref": "#/definitions/domain.Identity"
                },
                "pending_count": {
                    "type": "integer"
                },
                "approved_count": {
                    "type": "integer"
                }
            }
        },
        "app.CreateEventForm": {
            "type": "object",
            "properties": {
                "event_types": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "controllers.CredentialsRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "controllers.CreateEventRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "datetime": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "eventhub API",
	Description:      "Event submission, review and participation. Clients are bound by cookie; navigation is returned as 303 redirects and toasts in the notifications field.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
