package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
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
    <title>showroom-api Swagger</title>
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

// Minimal OpenAPI document covering the public and admin endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "showroom-api", "version": "v0.1.0" },
  "paths": {
    "/cars": {
      "get": { "summary": "List cars, newest first", "responses": { "200": { "description": "array of cars" } } },
      "post": {
        "summary": "Create a car with images (admin)",
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"name":{"type":"string"},"price":{"type":"number"},"description":{"type":"string"},"images":{"type":"array","items":{"type":"string","format":"binary"}}}}}}},
        "responses": { "201": { "description": "created car" }, "400": { "description": "validation error" }, "401": { "description": "missing or invalid token" }, "403": { "description": "not an admin" } }
      }
    },
    "/cars/{id}": {
      "get": { "summary": "Fetch one car", "responses": { "200": { "description": "car" }, "404": { "description": "not found" } } },
      "put": {
        "summary": "Update fields and gallery (admin)",
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"name":{"type":"string"},"price":{"type":"number"},"description":{"type":"string"},"images":{"type":"array","items":{"type":"string","format":"binary"}},"removeImages":{"type":"string","description":"JSON array of asset ids"}}}}}},
        "responses": { "200": { "description": "updated car" }, "404": { "description": "not found" } }
      },
      "delete": { "summary": "Delete a car and its images (admin)", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/bookings": {
      "get": { "summary": "List bookings with car details (admin)", "responses": { "200": { "description": "array of bookings" } } },
      "post": {
        "summary": "Request a test drive",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"phone":{"type":"string"},"preferredDate":{"type":"string"},"message":{"type":"string"},"carId":{"type":"string"}}}}}},
        "responses": { "201": { "description": "booking recorded" }, "400": { "description": "validation error" }, "404": { "description": "car not found" } }
      }
    },
    "/bookings/{id}": {
      "delete": { "summary": "Delete a booking (admin)", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/auth/register": {
      "post": { "summary": "Register an admin account", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "201": { "description": "admin created" }, "409": { "description": "email taken" } } }
    },
    "/auth/login": {
      "post": { "summary": "Login and receive a JWT", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "token and admin profile" }, "401": { "description": "invalid credentials" } } }
    },
    "/auth/dashboard": {
      "get": { "summary": "Admin dashboard probe", "responses": { "200": { "description": "claims echo" }, "401": { "description": "missing or invalid token" } } }
    },
    "/notifications": {
      "get": { "summary": "List notifications, newest first (admin)", "responses": { "200": { "description": "array of notifications" } } },
      "post": { "summary": "Record a notification (admin)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"message":{"type":"string"}}}}}}, "responses": { "201": { "description": "recorded" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
