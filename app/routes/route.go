package routes

import (
	"net/http"

	"github.com/aveline-studio/go-storefront/app/configs"
	"github.com/aveline-studio/go-storefront/app/handlers"
	"github.com/aveline-studio/go-storefront/app/handlers/admin"
	"github.com/aveline-studio/go-storefront/app/middlewares"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/aveline-studio/go-storefront/app/services"
	"github.com/aveline-studio/go-storefront/app/utils/format"
	"github.com/aveline-studio/go-storefront/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto the /api surface.
func NewRouter(db *gorm.DB, sessionStore sessions.SessionStore) *mux.Router {
	env := configs.LoadENV

	renderer := render.New()
	validate := validator.New()

	currencySymbol := env.CurrencySymbol
	if currencySymbol == "" {
		currencySymbol = "$"
	}
	formatter := format.NewPriceFormatter(currencySymbol)

	productRepo := repositories.NewProductRepository(db)
	variantRepo := repositories.NewVariantRepository(db)
	userRepo := repositories.NewUserRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	reconciler := services.NewVariantReconciler()
	sequencer := services.NewDisplayOrderSequencer(productRepo)
	catalog := services.NewCatalogService(db, productRepo, reconciler, sequencer)
	payment := services.NewPaymentService(env.MIDTRANS_SERVER_KEY, env.APP_URL, env.APP_ENV)
	checkout := services.NewCheckoutService(orderRepo, payment)
	mailer := services.NewMailer(services.MailerConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})

	productHandler := handlers.NewProductHandler(renderer, productRepo, variantRepo, formatter)
	adminHandler := admin.NewAdminHandler(renderer, validate, catalog, sequencer, formatter)
	authHandler := handlers.NewAuthHandler(renderer, validate, userRepo, resetRepo, sessionStore, mailer)
	orderHandler := handlers.NewOrderHandler(renderer, validate, checkout, orderRepo, formatter)
	accountHandler := handlers.NewAccountHandler(renderer, validate, userRepo)

	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.UserContextMiddleware(sessionStore, userRepo))

	adminOnly := middlewares.AdminOnlyMiddleware(renderer)

	// Auth.
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", authHandler.ResetPassword).Methods(http.MethodPost)

	// Catalog. The reorder route must be registered before /products/{id} so
	// mux does not capture "reorder" as a product id.
	api.Handle("/products/reorder", adminOnly(http.HandlerFunc(adminHandler.ReorderProducts))).Methods(http.MethodPost)
	api.HandleFunc("/products", productHandler.ListProducts).Methods(http.MethodGet)
	api.Handle("/products", adminOnly(http.HandlerFunc(adminHandler.CreateProduct))).Methods(http.MethodPost)
	api.HandleFunc("/products/slug/{slug}", productHandler.GetProductBySlug).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}/variants", productHandler.GetProductVariants).Methods(http.MethodGet)
	api.Handle("/products/{id}", adminOnly(http.HandlerFunc(adminHandler.UpdateProduct))).Methods(http.MethodPatch)
	api.Handle("/products/{id}", adminOnly(http.HandlerFunc(adminHandler.DeleteProduct))).Methods(http.MethodDelete)

	// Orders.
	api.HandleFunc("/orders", orderHandler.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", orderHandler.ListOrders).Methods(http.MethodGet)

	// Account.
	api.HandleFunc("/account", accountHandler.UpdateAccount).Methods(http.MethodPatch)

	return router
}
