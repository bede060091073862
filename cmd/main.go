package main

import (
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/webwatchtech/telegram-attendance-bot/config"
	"github.com/webwatchtech/telegram-attendance-bot/database"
	"github.com/webwatchtech/telegram-attendance-bot/handlers"
	"github.com/webwatchtech/telegram-attendance-bot/middlewares"
	"github.com/webwatchtech/telegram-attendance-bot/reports"
	"github.com/webwatchtech/telegram-attendance-bot/repositories"
	"github.com/webwatchtech/telegram-attendance-bot/routes"
	"github.com/webwatchtech/telegram-attendance-bot/session"
)

const (
	pollRetries   = 5
	pollRetryWait = 10 * time.Second
)

func main() {
	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	if cfg.AdminID == 0 {
		log.Fatal("ADMIN_ID is required")
	}

	database.Connect(cfg)

	// liveness endpoint for the hosting platform
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	routes.Register(e)
	go func() {
		if err := e.Start(":" + cfg.AppPort); err != nil {
			log.Printf("http server stopped: %v", err)
		}
	}()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("telegram auth failed: %v", err)
	}
	log.Printf("authorized as @%s", api.Self.UserName)

	employees := repositories.NewEmployeeRepository(database.DB)
	attendance := repositories.NewAttendanceRepository(database.DB)
	holidays := repositories.NewHolidayRepository(database.DB)
	reporter := reports.NewReporter(attendance, holidays, employees)

	bot := handlers.NewBot(api, session.NewManager(), employees, attendance, holidays, reporter)
	commands := routes.Commands(bot)
	handle := middlewares.OperatorOnly(cfg.AdminID, func(update tgbotapi.Update) {
		routes.Dispatch(bot, commands, update)
	})

	// polling restarts a bounded number of times before giving up, so a
	// stuck getUpdates conflict can't spin forever
	for attempt := 1; attempt <= pollRetries; attempt++ {
		poll(api, handle)
		log.Printf("polling stopped, retry %d/%d in %s", attempt, pollRetries, pollRetryWait)
		time.Sleep(pollRetryWait)
	}
	log.Fatal("max polling retries exceeded, bot stopped")
}

func poll(api *tgbotapi.BotAPI, handle middlewares.UpdateHandler) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("polling panic: %v", r)
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	for update := range api.GetUpdatesChan(u) {
		handle(update)
	}
	api.StopReceivingUpdates()
}
