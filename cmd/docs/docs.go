// Package docs holds the OpenAPI description served at /swagger.
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
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "responses": {
                    "200": {"description": "Session with access and refresh tokens"},
                    "401": {"description": "Invalid credentials"},
                    "429": {"description": "Too many attempts"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Rotate a refresh token into a new session",
                "responses": {
                    "200": {"description": "New session"},
                    "401": {"description": "Invalid or expired refresh token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Revoke the caller's refresh tokens",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Logged out"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "User profile"}}
            }
        },
        "/users": {
            "get": {
                "tags": ["users"],
                "summary": "List users (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Users"}}
            },
            "post": {
                "tags": ["users"],
                "summary": "Create a user (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created user"},
                    "409": {"description": "Duplicate username or email"}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["users"],
                "summary": "Get a user (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "User"}, "404": {"description": "Not found"}}
            },
            "patch": {
                "tags": ["users"],
                "summary": "Update a user (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Updated user"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["users"],
                "summary": "Delete a user (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/stock/summary": {
            "get": {
                "tags": ["stock"],
                "summary": "Current balance and today's figures",
                "responses": {"200": {"description": "Stock summary"}}
            }
        },
        "/stock/in": {
            "post": {
                "tags": ["stock"],
                "summary": "Record a stock-in entry (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Recorded entry"}}
            }
        },
        "/stock/out": {
            "post": {
                "tags": ["stock"],
                "summary": "Record a stock-out entry (operational)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Recorded entry"},
                    "400": {"description": "Insufficient stock"}
                }
            }
        },
        "/stock/history": {
            "get": {
                "tags": ["stock"],
                "summary": "Paginated transaction history",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "History page"}}
            }
        },
        "/stock/trend": {
            "get": {
                "tags": ["stock"],
                "summary": "Daily running-balance trend",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Trend series"}}
            }
        },
        "/stock/trend/in-out": {
            "get": {
                "tags": ["stock"],
                "summary": "Daily in/out totals trend",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Trend series"}}
            }
        },
        "/revenue/companies": {
            "get": {
                "tags": ["revenue"],
                "summary": "List active companies",
                "responses": {"200": {"description": "Companies"}}
            }
        },
        "/revenue/companies/seed": {
            "post": {
                "tags": ["revenue"],
                "summary": "Seed the default companies (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Seeded"}}
            }
        },
        "/revenue/targets": {
            "get": {
                "tags": ["revenue"],
                "summary": "List monthly targets",
                "responses": {"200": {"description": "Targets"}}
            },
            "post": {
                "tags": ["revenue"],
                "summary": "Create or overwrite a monthly target",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Target"}}
            }
        },
        "/revenue/realizations": {
            "get": {
                "tags": ["revenue"],
                "summary": "List daily realizations for a month",
                "responses": {"200": {"description": "Realizations"}}
            },
            "post": {
                "tags": ["revenue"],
                "summary": "Create or overwrite a daily realization",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Realization"}}
            }
        },
        "/revenue/summary": {
            "get": {
                "tags": ["revenue"],
                "summary": "Dashboard summary per company",
                "responses": {"200": {"description": "Summary"}}
            }
        },
        "/revenue/trend": {
            "get": {
                "tags": ["revenue"],
                "summary": "Daily realization trend",
                "responses": {"200": {"description": "Trend"}}
            }
        },
        "/revenue/yearly-comparison": {
            "get": {
                "tags": ["revenue"],
                "summary": "Twelve-month target vs realized comparison",
                "responses": {"200": {"description": "Comparison"}}
            }
        },
        "/sheets/status": {
            "get": {
                "tags": ["sheets"],
                "summary": "Spreadsheet ingestion status",
                "responses": {"200": {"description": "Status"}}
            }
        },
        "/sheets/sync": {
            "post": {
                "tags": ["sheets"],
                "summary": "Trigger an ingestion pass",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Sync result"}}
            }
        },
        "/sheets/webhook": {
            "post": {
                "tags": ["sheets"],
                "summary": "Spreadsheet change notification",
                "responses": {"200": {"description": "Sync result"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PortLedger Backend API",
	Description:      "Operational fuel stock and revenue monitoring backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
