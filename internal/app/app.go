package app

import (
	"database/sql"
	"fmt"
	"log"

	"freshsales/internal/config"
	"freshsales/internal/handlers"
	"freshsales/internal/pdf"
	"freshsales/internal/repositories"
	"freshsales/internal/routes"
	"freshsales/internal/services"
	"freshsales/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	oppRepo := repositories.NewOpportunityRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	conversionTx := repositories.NewConversionTx(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	telegramService, err := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Printf("telegram integration disabled: %v", err)
	}

	mobizonClient := utils.NewClientWithOptions(
		cfg.Mobizon.APIKey,
		cfg.Mobizon.SenderID,
		cfg.Mobizon.DryRun,
	)

	pdfGen := pdf.NewDocumentGenerator(cfg.Files.RootDir)

	notifier := services.NewNotificationService(
		emailService,
		cfg.Notifications.EmailTo,
		telegramService,
		mobizonClient,
		cfg.Notifications.SMSTo,
		pdfGen,
	)

	conversionService := services.NewConversionService(conversionTx)
	transitionService := services.NewTransitionService()
	opportunityService := services.NewOpportunityService(
		oppRepo,
		leadRepo,
		customerRepo,
		transitionService,
		conversionService,
		notifier,
	)
	leadService := services.NewLeadService(leadRepo)
	customerService := services.NewCustomerService(customerRepo)

	// === Handlers ===
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	leadHandler := handlers.NewLeadHandler(leadService)
	customerHandler := handlers.NewCustomerHandler(customerService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	routes.SetupRoutes(
		router,
		opportunityHandler,
		leadHandler,
		customerHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
