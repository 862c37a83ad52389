// Package docs provides Swagger documentation for the API.
package docs

// @title Campaign Report Tracking API
// @version 1.0
// @description Backend for tracking media monitoring campaigns, analyst assignments and report workflow
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@mediawatch.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
