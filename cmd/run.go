package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"starsbot/bot"
	"starsbot/bot/telegram"
	"starsbot/config"
	"starsbot/conversation"
	"starsbot/database"
	"starsbot/events"
	"starsbot/repository"
	"starsbot/server"
	"starsbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	log.Println("Starting stars bot...")

	// Apply pending migrations
	log.Println("Running database migrations...")
	if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize Telegram client
	log.Println("Connecting to Telegram...")
	client, err := telegram.NewClient(cfg.TelegramBotToken)
	if err != nil {
		return err
	}
	if self := client.Username(); self != "" && !strings.EqualFold(self, cfg.BotUsername) {
		log.Warnf("BOT_USERNAME %q does not match the token's bot %q, referral links use %q", cfg.BotUsername, self, cfg.BotUsername)
	}
	log.Printf("Authorized as @%s", client.Username())

	// Initialize services
	log.Println("Initializing services...")
	auth := service.NewAdminAuthorizer(cfg.AdminID)
	services := bot.Services{
		Users:       service.NewUserService(uowFactory, cfg.ReferralBonus),
		Ledger:      service.NewLedgerService(uowFactory),
		Membership:  service.NewMembershipService(uowFactory, client),
		Bonus:       service.NewBonusService(uowFactory, cfg.DailyBonus, cfg.BonusCooldown),
		Withdrawals: service.NewWithdrawalService(uowFactory, auth, cfg.MinWithdrawal),
		Channels:    service.NewChannelService(uowFactory, auth),
		Broadcasts:  service.NewBroadcastService(uowFactory, client, auth, cfg.BroadcastRate),
		Stats:       service.NewStatsService(uowFactory, auth),
		Auth:        auth,
	}
	log.Println("Services initialized successfully")

	// Conversation sessions
	sessions := conversation.NewMemoryStore(cfg.SessionTTL)
	if cfg.SessionTTL > 0 {
		go sessions.RunCleanup(ctx, cfg.SessionTTL/2)
	}
	machine := conversation.NewMachine(sessions)

	// Initialize bot
	starsBot := bot.New(bot.Config{
		BotUsername:   cfg.BotUsername,
		SupportLink:   cfg.SupportLink,
		AdminID:       cfg.AdminID,
		ReferralBonus: cfg.ReferralBonus,
		BonusCooldown: cfg.BonusCooldown,
	}, client, services, machine)
	bot.RegisterBotSubscriptions(eventBus, starsBot)
	dispatcher := telegram.NewDispatcher(starsBot)

	// HTTP server: health checks, plus updates in webhook mode
	var webhook http.Handler
	if cfg.WebhookEnabled() {
		webhook = client.WebhookHandler(dispatcher)
	}
	httpServer := server.New(cfg.HTTPAddr, server.NewRouter(db, cfg.WebhookSecret, webhook))
	httpServer.Start()

	polling := make(chan struct{})
	if cfg.WebhookEnabled() {
		close(polling)
		url := strings.TrimRight(cfg.WebhookURL, "/") + "/webhook/" + cfg.WebhookSecret
		if err := client.SetWebhook(url); err != nil {
			return err
		}
		log.Info("Receiving updates by webhook")
	} else {
		go func() {
			defer close(polling)
			client.Poll(ctx, dispatcher)
		}()
		log.Info("Receiving updates by long polling")
	}

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error stopping HTTP server: %v", err)
	}

	<-polling

	// No new updates arrive now. In-flight ones keep a live context and
	// finish before the deferred pool close.
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Println("Shutdown timeout exceeded, cancelled remaining updates")
	} else {
		log.Println("Shutdown completed")
	}

	return nil
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
