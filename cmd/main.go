// Package main is the entry point for the NutriHub meal plan service.
//
// @title           NutriHub Meal Plan API
// @version         1.0.0
// @description     API for optimizing daily serving sizes against nutrition targets.
//
//	This service scales the serving sizes of the day's three meals so that
//	daily calorie and macro totals approach the caller's targets.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/bounswe/bounswe2025group9-sub004
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @tag.name        Plans
// @tag.description Serving-size optimization and meal plan operations
//
// @tag.name        Foods
// @tag.description Food catalog operations
//
// @tag.name        Targets
// @tag.description Nutrition targets operations
//
// @tag.name        Auth
// @tag.description Authentication and authorization endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/bounswe/bounswe2025group9-sub004/docs" // swagger docs

	"github.com/bounswe/bounswe2025group9-sub004/config"
	"github.com/bounswe/bounswe2025group9-sub004/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
