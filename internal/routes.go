package internal

import (
	"net/http"

	"chessetl/internal/controllers"
	"chessetl/internal/providers"
	"chessetl/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/games", http.HandlerFunc(apiController.GetGames))
	routers.Get("/players", http.HandlerFunc(apiController.GetPlayers))
	routers.Get("/summary", http.HandlerFunc(apiController.GetSummary))
	routers.Get("/perspective", http.HandlerFunc(apiController.GetPerspective))
	return routers
}
