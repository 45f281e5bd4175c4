package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/config"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/handlers"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/repositories"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/services"
	"github.com/lechoovuck/GameMonetaWebAppServer/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB

	currencyService *services.CurrencyService

	authHandler        *handlers.AuthHandler
	oauthHandler       *handlers.OAuthHandler
	profileHandler     *handlers.ProfileHandler
	userHandler        *handlers.UserHandler
	categoryHandler    *handlers.CategoryHandler
	subcategoryHandler *handlers.SubcategoryHandler
	productHandler     *handlers.ProductHandler
	giftHandler        *handlers.GiftHandler
	invoiceHandler     *handlers.InvoiceHandler
	lavaHandler        *handlers.LavaHandler
}

func initializeApp(db *sql.DB, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	tokens, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		errorLog.Fatal(err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	blacklistRepo := &repositories.TokenBlacklistRepository{DB: db}
	oauthRepo := &repositories.OAuthRepository{DB: db}
	categoryRepo := &repositories.CategoryRepository{DB: db}
	subcategoryRepo := &repositories.SubcategoryRepository{DB: db}
	productRepo := &repositories.ProductRepository{DB: db}
	invoiceRepo := &repositories.InvoiceRepository{DB: db}
	lavaRepo := &repositories.LavaRepository{DB: db}

	// Services
	emailService := &services.EmailService{Client: httpClient, BaseURL: cfg.Email.APIBaseURL}
	currencyService := services.NewCurrencyService(httpClient, cfg.Currency.BaseURL, cfg.Currency.APIKey)
	authService := &services.AuthService{
		Users:     userRepo,
		Blacklist: blacklistRepo,
		Tokens:    tokens,
		Email:     emailService,
	}
	oauthService := &services.OAuthService{
		Users:    userRepo,
		Profiles: oauthRepo,
		Tokens:   tokens,
		BotToken: cfg.Telegram.BotToken,
		BotID:    cfg.Telegram.BotID,
		Origin:   cfg.Telegram.Origin,
	}
	userService := &services.UserService{
		Users:    userRepo,
		Profiles: oauthRepo,
		Tokens:   tokens,
		Email:    emailService,
	}
	lavaService := &services.LavaService{
		Client:     httpClient,
		Webhooks:   lavaRepo,
		CreateURL:  cfg.Payments.LavaCreateURL,
		Token:      cfg.Payments.LavaToken,
		ShopID:     cfg.Payments.LavaShopID,
		SuccessURL: cfg.Payments.LavaSuccessURL,
	}
	profitableService := &services.ProfitableService{
		Client:  httpClient,
		InitURL: cfg.Payments.ProfitableInitURL,
		PayURL:  cfg.Payments.ProfitablePayURL,
	}
	steamService := &services.SteamService{
		Client:  httpClient,
		BaseURL: cfg.Steam.BaseURL,
		Token:   cfg.Steam.Token,
	}
	invoiceService := &services.InvoiceService{
		Invoices:     invoiceRepo,
		Auth:         authService,
		Tokens:       tokens,
		Email:        emailService,
		Lava:         lavaService,
		Profitable:   profitableService,
		StatusSecret: cfg.Payments.StatusSecret,
	}
	categoryService := &services.CategoryService{Categories: categoryRepo, Subcategories: subcategoryRepo}
	subcategoryService := &services.SubcategoryService{Subcategories: subcategoryRepo, Products: productRepo}
	productService := &services.ProductService{Products: productRepo, Currency: currencyService}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		cfg:             cfg,
		db:              db,
		currencyService: currencyService,

		authHandler:        &handlers.AuthHandler{Service: authService},
		oauthHandler:       &handlers.OAuthHandler{Service: oauthService},
		profileHandler:     &handlers.ProfileHandler{Service: userService, Tokens: tokens},
		userHandler:        &handlers.UserHandler{Service: userService},
		categoryHandler:    &handlers.CategoryHandler{Service: categoryService},
		subcategoryHandler: &handlers.SubcategoryHandler{Service: subcategoryService},
		productHandler:     &handlers.ProductHandler{Service: productService},
		giftHandler:        &handlers.GiftHandler{Service: productService},
		invoiceHandler:     &handlers.InvoiceHandler{Service: invoiceService, Steam: steamService},
		lavaHandler:        &handlers.LavaHandler{Service: lavaService},
	}
}
