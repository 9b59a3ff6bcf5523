package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the OpenAPI document and a Swagger UI page.
// - GET /swagger/index.html  -> HTML page loading the document
// - GET /swagger/doc.json    -> OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>folio API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "folio", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Error": { "type": "object", "properties": { "code": {"type":"string"}, "message": {"type":"string"} } },
      "Message": { "type": "object", "properties": { "message": {"type":"string"}, "data": {"type":"object"} } }
    }
  },
  "paths": {
    "/api/": { "get": { "summary": "API banner", "responses": { "200": { "description": "banner" } } } },
    "/api/auth/login": {
      "post": {
        "summary": "Admin login",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email","password"],"properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "access_token, token_type and user" }, "401": { "description": "Incorrect email or password" }, "429": { "description": "rate limited" } }
      }
    },
    "/api/auth/logout": { "post": { "summary": "Revoke the presented token", "security": [{"bearer":[]}], "responses": { "200": { "description": "logged out" } } } },
    "/api/auth/me": { "get": { "summary": "Current admin", "security": [{"bearer":[]}], "responses": { "200": { "description": "user" }, "401": { "description": "not authenticated" } } } },
    "/api/portfolio/{section}": {
      "get": {
        "summary": "Public section read",
        "parameters": [{ "name": "section", "in": "path", "required": true, "schema": { "type": "string", "enum": ["hero","about","education","experience","skills","projects","certifications","testimonials","blog","settings"] } }],
        "responses": { "200": { "description": "section content" } }
      }
    },
    "/api/contact": {
      "post": {
        "summary": "Send a contact message",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","subject","message"]}}}},
        "responses": { "200": { "description": "Message sent successfully!" }, "400": { "description": "validation failed" }, "429": { "description": "rate limited" } }
      }
    },
    "/api/admin/{singleton}": {
      "put": {
        "summary": "Partial update of hero, about, skills or settings",
        "security": [{"bearer":[]}],
        "parameters": [{ "name": "singleton", "in": "path", "required": true, "schema": { "type": "string", "enum": ["hero","about","skills","settings"] } }],
        "responses": { "200": { "description": "updated document" } }
      }
    },
    "/api/admin/{collection}": {
      "get": { "summary": "List all items including drafts", "security": [{"bearer":[]}], "responses": { "200": { "description": "items" } } },
      "post": { "summary": "Create an item", "security": [{"bearer":[]}], "responses": { "200": { "description": "created item" }, "400": { "description": "missing required fields" } } }
    },
    "/api/admin/{collection}/{id}": {
      "put": { "summary": "Partial update of an item", "security": [{"bearer":[]}], "responses": { "200": { "description": "updated item" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete an item", "security": [{"bearer":[]}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/admin/upload": {
      "post": {
        "summary": "Upload a file",
        "security": [{"bearer":[]}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"file":{"type":"string","format":"binary"},"subfolder":{"type":"string"}}}}}},
        "responses": { "200": { "description": "stored file" }, "400": { "description": "type not allowed" }, "413": { "description": "too large" } }
      }
    },
    "/api/admin/files": { "get": { "summary": "List uploaded files", "security": [{"bearer":[]}], "responses": { "200": { "description": "files" } } } },
    "/api/admin/files/{filename}": { "delete": { "summary": "Delete an uploaded file", "security": [{"bearer":[]}], "responses": { "200": { "description": "deleted" }, "404": { "description": "File not found" } } } },
    "/api/admin/contact-messages": { "get": { "summary": "Contact inbox", "security": [{"bearer":[]}], "responses": { "200": { "description": "messages, newest first" } } } },
    "/api/files/{path}": { "get": { "summary": "Serve an uploaded file", "responses": { "200": { "description": "file" }, "404": { "description": "not found" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
