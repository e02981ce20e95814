// Package api holds the OpenAPI description served at /docs.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marker .Schemes }},
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
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "General"
                ],
                "summary": "API root",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "General"
                ],
                "summary": "Get health",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "options": {
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/version": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "General"
                ],
                "summary": "API version",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "v1"
                ],
                "summary": "v1 API",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "v1"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/categories": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Get categories",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by name. * matches any sequence of characters",
                        "name": "name",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by type",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by budget priority",
                        "name": "budgetPriority",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "The offset of the first Category returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum number of Categories to return. Defaults to 50.",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Create categories",
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                },
                "parameters": [
                    {
                        "description": "Categories",
                        "name": "categories",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/categories/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Get category",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Update category",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Category",
                        "name": "category",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Delete category",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categories"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/transactions": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Get transactions",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "Filter by category ID",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by type",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Transactions at and after this date, YYYY-MM-DD",
                        "name": "start",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Transactions at and before this date, YYYY-MM-DD",
                        "name": "end",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "The offset of the first transaction returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum number of transactions to return. Defaults to 50.",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Create transactions",
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                },
                "parameters": [
                    {
                        "description": "Transactions",
                        "name": "transactions",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/transactions/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Get transaction",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Update transaction",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Delete transaction",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Transactions"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/incomes": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Get incomes",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Create incomes",
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                }
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/incomes/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Get income",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Update income",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Delete income",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Incomes"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/methodologies": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Get methodologies",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Create methodologies",
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                },
                "parameters": [
                    {
                        "description": "Methodologies",
                        "name": "methodologies",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/methodologies/active": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Get active methodology",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/methodologies/compare": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Compare methodologies",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "description": "Methodologies and income",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/methodologies/recommendations": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Get recommendations",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "number",
                        "description": "Monthly income. Defaults to the actual income of the current month",
                        "name": "income",
                        "in": "query"
                    },
                    {
                        "type": "number",
                        "description": "Monthly expenses. Defaults to the actual expenses of the current month",
                        "name": "expenses",
                        "in": "query"
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/methodologies/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Get methodology",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Delete methodology",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/methodologies/{id}/activate": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Activate methodology",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/methodologies/{id}/allocation": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Calculate allocation",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "number",
                        "description": "Income to allocate. Defaults to the actual income of the current month",
                        "name": "income",
                        "in": "query"
                    }
                ]
            }
        },
        "/v1/methodologies/{id}/apply": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Apply methodology",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Income and mode",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ]
            }
        },
        "/v1/methodologies/{id}/validate": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Methodologies"
                ],
                "summary": "Validate methodology",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/analytics/progress": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Get budget progress",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "First day of the period, YYYY-MM-DD",
                        "name": "start",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Last day of the period, YYYY-MM-DD",
                        "name": "end",
                        "in": "query"
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/analytics/trends": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Get spending trends",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Number of months, 1 to 24. Defaults to 6",
                        "name": "months",
                        "in": "query"
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/analytics/alerts": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Get predictive alerts",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/analytics/performance": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Get budget performance",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/v1/analytics/impact/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Get transaction impact",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Analytics"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
