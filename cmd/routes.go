package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	frontendMiddleware := standardMiddleware.Append(app.restrictOrigin)

	mux := pat.New()

	// Auth
	mux.Post("/api/auth/register", frontendMiddleware.ThenFunc(app.authHandler.Register))
	mux.Post("/api/auth/login", frontendMiddleware.ThenFunc(app.authHandler.Login))
	mux.Get("/api/auth/check_session", frontendMiddleware.ThenFunc(app.authHandler.CheckSession))
	mux.Post("/api/auth/password_reset_request", frontendMiddleware.ThenFunc(app.authHandler.PasswordResetRequest))
	mux.Post("/api/auth/password_reset", frontendMiddleware.ThenFunc(app.authHandler.PasswordReset))
	mux.Post("/api/auth/check_reset_token", frontendMiddleware.ThenFunc(app.authHandler.CheckResetToken))
	mux.Post("/api/auth/email_reset", frontendMiddleware.ThenFunc(app.authHandler.EmailReset))

	// OAuth
	mux.Get("/api/oauth/telegram", standardMiddleware.ThenFunc(app.oauthHandler.StartTelegram))
	mux.Get("/api/oauth/telegram-connect", standardMiddleware.ThenFunc(app.oauthHandler.StartTelegramConnect))
	mux.Post("/api/oauth/telegram/callback", frontendMiddleware.ThenFunc(app.oauthHandler.TelegramCallback))
	mux.Post("/api/oauth/telegram/callback-connect", frontendMiddleware.ThenFunc(app.oauthHandler.TelegramConnectCallback))

	// Profile
	mux.Get("/api/profile/", frontendMiddleware.ThenFunc(app.profileHandler.GetProfile))
	mux.Post("/api/profile/info", frontendMiddleware.ThenFunc(app.profileHandler.ChangeInfo))
	mux.Post("/api/profile/connect_email", frontendMiddleware.ThenFunc(app.profileHandler.ConnectEmail))
	mux.Post("/api/profile/change_email", frontendMiddleware.ThenFunc(app.profileHandler.ChangeEmail))

	// Users
	mux.Get("/api/users/:user_id", frontendMiddleware.ThenFunc(app.userHandler.GetUser))

	// Categories
	mux.Get("/api/categories/", frontendMiddleware.ThenFunc(app.categoryHandler.GetCategories))
	mux.Post("/api/categories/", frontendMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Put("/api/categories/:id", frontendMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/api/categories/:id", frontendMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))
	mux.Get("/api/categories/:category_id/subcategories", frontendMiddleware.ThenFunc(app.categoryHandler.GetSubcategories))
	mux.Post("/api/categories/:category_id/subcategories", frontendMiddleware.ThenFunc(app.categoryHandler.CreateSubcategory))

	// Subcategories
	mux.Put("/api/subcategories/:id", frontendMiddleware.ThenFunc(app.subcategoryHandler.UpdateSubcategory))
	mux.Del("/api/subcategories/:id", frontendMiddleware.ThenFunc(app.subcategoryHandler.DeleteSubcategory))
	mux.Get("/api/subcategories/:subcategory_id/products", frontendMiddleware.ThenFunc(app.subcategoryHandler.GetProducts))
	mux.Post("/api/subcategories/:subcategory_id/products", frontendMiddleware.ThenFunc(app.subcategoryHandler.CreateProduct))

	// Products
	mux.Post("/api/products/", frontendMiddleware.ThenFunc(app.productHandler.CreateProduct))
	mux.Get("/api/products/", frontendMiddleware.ThenFunc(app.productHandler.GetAllProducts))
	mux.Put("/api/products/:id/options/", frontendMiddleware.ThenFunc(app.productHandler.UpdateProductOptions))
	mux.Post("/api/products/:id/image", frontendMiddleware.ThenFunc(app.productHandler.UploadProductImage))
	mux.Get("/api/products/:id", frontendMiddleware.ThenFunc(app.productHandler.GetProductByID))
	mux.Put("/api/products/:id", frontendMiddleware.ThenFunc(app.productHandler.UpdateProduct))
	mux.Del("/api/products/:id", frontendMiddleware.ThenFunc(app.productHandler.DeleteProduct))

	// Gifts
	mux.Get("/api/gifts/", frontendMiddleware.ThenFunc(app.giftHandler.GetAllGifts))
	mux.Post("/api/gifts/batch_gifts", frontendMiddleware.ThenFunc(app.giftHandler.BatchCreateGifts))
	mux.Get("/api/gifts/:id", frontendMiddleware.ThenFunc(app.giftHandler.GetGiftByID))

	// Aliases
	mux.Get("/api/alias/", frontendMiddleware.ThenFunc(app.productHandler.GetAllAliases))

	// Invoices. Платёжный контур ходит сюда без origin, поэтому цепочка без
	// фронтенд-ограничения
	mux.Post("/api/invoice/", frontendMiddleware.ThenFunc(app.invoiceHandler.CreateInvoice))
	mux.Get("/api/invoice/check_login", frontendMiddleware.ThenFunc(app.invoiceHandler.CheckLogin))
	mux.Get("/api/invoice/check_steam_link", frontendMiddleware.ThenFunc(app.invoiceHandler.CheckSteamLink))
	mux.Get("/api/invoice/get_pending_transactions", standardMiddleware.ThenFunc(app.invoiceHandler.GetPendingTransactions))
	mux.Get("/api/invoice/get_payment_transaction_id", standardMiddleware.ThenFunc(app.invoiceHandler.GetPaymentTransactionID))
	mux.Post("/api/invoice/change_status", standardMiddleware.ThenFunc(app.invoiceHandler.ChangeStatus))
	mux.Get("/api/invoice/get/:uuid", frontendMiddleware.ThenFunc(app.invoiceHandler.GetInvoice))
	mux.Get("/api/invoice/", frontendMiddleware.ThenFunc(app.invoiceHandler.ListInvoices))

	// Список заказов пользователя живёт и под /orders
	mux.Get("/api/orders/", frontendMiddleware.ThenFunc(app.invoiceHandler.ListInvoices))

	// LAVA
	mux.Post("/api/lava/webhook", standardMiddleware.ThenFunc(app.lavaHandler.Webhook))

	return mux
}
