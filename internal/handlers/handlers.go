package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"adminpanel/api/internal/config"
	"adminpanel/api/internal/repository"
	"adminpanel/api/internal/service"
)

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	auth         *service.AuthService
	countries    CountryStore
	states       StateStore
	cities       CityStore
	locations    LocationStore
	products     ProductStore
	seos         SEOStore
	customFields CustomFieldStore
	inquiries    InquiryStore
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, db *mongo.Database, mailer service.Mailer) HandlerSet {
	users := repository.NewUserRepository(db)

	return HandlerSet{
		log:          log,
		cfg:          cfg,
		auth:         service.NewAuthService(users, mailer, cfg.Auth, log),
		countries:    repository.NewCountryRepository(db),
		states:       repository.NewStateRepository(db),
		cities:       repository.NewCityRepository(db),
		locations:    repository.NewLocationRepository(db),
		products:     repository.NewProductRepository(db),
		seos:         repository.NewSEORepository(db),
		customFields: repository.NewSEOCustomFieldRepository(db),
		inquiries:    repository.NewInquiryRepository(db),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	auth := router.Group("/auth")
	auth.POST("/request-otp", h.RequestOTP)
	auth.POST("/verify-otp", h.VerifyOTP)
	auth.GET("/check-session", h.CheckSession)
	auth.POST("/extend-session", h.ExtendSession)
	auth.POST("/logout", h.Logout)

	countries := router.Group("/countries")
	countries.GET("", h.ListCountries)
	countries.GET("/:id", h.GetCountry)
	countries.POST("", h.CreateCountry)
	countries.PUT("/:id", h.UpdateCountry)
	countries.DELETE("/:id", h.DeleteCountry)

	states := router.Group("/states")
	states.GET("", h.ListStates)
	states.GET("/country/:countryId", h.ListStatesByCountry)
	states.GET("/:id", h.GetState)
	states.POST("", h.CreateState)
	states.PUT("/:id", h.UpdateState)
	states.DELETE("/:id", h.DeleteState)

	cities := router.Group("/cities")
	cities.GET("", h.ListCities)
	cities.GET("/state/:stateId", h.ListCitiesByState)
	cities.GET("/country/:countryId", h.ListCitiesByCountry)
	cities.GET("/:id", h.GetCity)
	cities.POST("", h.CreateCity)
	cities.PUT("/:id", h.UpdateCity)
	cities.DELETE("/:id", h.DeleteCity)

	locations := router.Group("/locations")
	locations.GET("", h.ListLocations)
	locations.GET("/:id", h.GetLocation)
	locations.POST("", h.CreateLocation)
	locations.PUT("/:id", h.UpdateLocation)
	locations.DELETE("/:id", h.DeleteLocation)

	products := router.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.POST("", h.CreateProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)

	seos := router.Group("/seos")
	seos.GET("", h.ListSEOs)
	seos.GET("/:id", h.GetSEO)
	seos.POST("", h.CreateSEO)
	seos.PUT("/:id", h.UpdateSEO)
	seos.DELETE("/:id", h.DeleteSEO)

	customFields := router.Group("/seo-custom-fields")
	customFields.GET("", h.ListCustomFields)
	customFields.POST("", h.CreateCustomField)
	customFields.DELETE("/:id", h.DeleteCustomField)

	inquiries := router.Group("/inquiries")
	inquiries.GET("", h.ListInquiries)
	inquiries.POST("", h.UpsertInquiry)
	inquiries.PUT("/:id", h.UpdateInquiry)
	inquiries.DELETE("/:id", h.DeleteInquiry)
}
