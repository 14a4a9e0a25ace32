package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"business-admin-backend/internal/config"
	handler "business-admin-backend/internal/handlers"
	"business-admin-backend/internal/pdf"
	"business-admin-backend/internal/repository"
	invoicesvc "business-admin-backend/internal/services/invoice"
	notifysvc "business-admin-backend/internal/services/notify"
	"business-admin-backend/internal/twilio"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	messageRepo := repository.NewMessageLogRepository(db)

	renderer := pdf.NewRenderer(cfg.InvoiceDir)
	twilioClient := twilio.NewClient(nil, cfg.TwilioAccountSID, cfg.TwilioAuthToken)

	assemblySvc := invoicesvc.NewService(invoiceRepo, clientRepo)
	notifySvc := notifysvc.NewService(invoiceRepo, messageRepo, renderer, twilioClient, cfg.WhatsAppSender, cfg.PublicBaseURL)

	authHandler := handler.NewAuthHandler(userRepo)
	clientHandler := handler.NewClientHandler(clientRepo)
	taskHandler := handler.NewTaskHandler(taskRepo)
	invoiceHandler := handler.NewInvoiceHandler(invoiceRepo, assemblySvc)
	statsHandler := handler.NewStatsHandler(clientRepo, taskRepo, invoiceRepo)
	notifyHandler := handler.NewNotifyHandler(notifySvc)

	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.POST("/register", handler.AuthRequired(), handler.AdminRequired(), authHandler.Register)

	// Generated PDFs are served without a session: the messaging provider
	// fetches the media URL it is handed.
	r.Static("/temp_invoices", cfg.InvoiceDir)

	api := r.Group("/api", handler.AuthRequired())

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	clients := api.Group("/clients")
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	tasks := api.Group("/tasks")
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	invoices := api.Group("/invoices")
	invoices.GET("", invoiceHandler.List)
	invoices.POST("", invoiceHandler.Create)
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.DELETE("/:id", invoiceHandler.Delete)

	api.GET("/stats", statsHandler.Get)
	api.POST("/send_whatsapp", notifyHandler.SendWhatsApp)
	api.POST("/send_invoice/:invoice_id", notifyHandler.SendInvoice)
	api.GET("/messages", handler.AdminRequired(), notifyHandler.ListMessages)
}
