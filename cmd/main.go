package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/lechoovuck/GameMonetaWebAppServer/internal/config"
	"github.com/lechoovuck/GameMonetaWebAppServer/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yml"
	}
	cfg := config.LoadConfig(configPath)

	port := cfg.Server.Address
	if port == "" {
		port = ":8000"
	}
	addr := flag.String("addr", port, "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	db, err := openDB(cfg.Database.URL)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer db.Close()

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			errorLog.Printf("telegram notifier disabled: %v", err)
		} else {
			logger.InitNotifier(bot, cfg.Telegram.ChatID)
		}
	}

	app := initializeApp(db, cfg, errorLog, infoLog)

	// Курсы валют обновляются раз в 12 часов, падение обновления не роняет
	// процесс
	scheduler := cron.New()
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := app.currencyService.Refresh(ctx); err != nil {
			logger.Error("currency refresh failed", zap.Error(err))
			logger.NotifyOperator("Не обновились курсы валют: " + err.Error())
		}
	}
	if _, err := scheduler.AddFunc("@every 12h", refresh); err != nil {
		errorLog.Fatal(err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	go refresh()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Signature"},
	})

	srv := &http.Server{
		Addr:         *addr,
		ErrorLog:     errorLog,
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	infoLog.Printf("Starting server on %s", *addr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal(err)
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
