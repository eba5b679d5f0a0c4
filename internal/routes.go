package internal

import (
	"net/http"
	"sid/internal/controllers"
	"sid/internal/providers"
	"sid/internal/services"
	"sid/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/login", http.HandlerFunc(apiController.Login))
	routers.Post("/execute", http.HandlerFunc(apiController.Execute))
	routers.Post("/heartbeat", http.HandlerFunc(apiController.Heartbeat))
	routers.Get("/records", http.HandlerFunc(apiController.Records))
	routers.Get("/stats", http.HandlerFunc(apiController.Stats))
	routers.Get("/export", http.HandlerFunc(apiController.Export))
	routers.Get("/analytics", http.HandlerFunc(apiController.Analytics))
	routers.Get("/users", http.HandlerFunc(apiController.Users))
	return routers
}

// NewRegistryGauges exposes the registry's counts to the metrics provider.
func NewRegistryGauges(service services.RegistryServiceInterface) providers.RegistryGauges {
	return service
}
