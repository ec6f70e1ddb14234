package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hearbill/internal/domain"
	"hearbill/internal/handler"
	"hearbill/internal/middleware"
	"hearbill/internal/service"
)

// Handlers bundles every HTTP handler wired into the engine.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Patient    *handler.PatientHandler
	Device     *handler.DeviceHandler
	Invoice    *handler.InvoiceHandler
	Quotation  *handler.QuotationHandler
	Note       *handler.NoteHandler
	Lead       *handler.LeadHandler
	Booking    *handler.BookingHandler
	Transfer   *handler.TransferHandler
	Attachment *handler.AttachmentHandler
	Report     *handler.ReportHandler
	Marketing  *handler.MarketingHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", h.Auth.Me)

	// User management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), h.User.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.Delete)

	// Patient records
	patients := protected.Group("/patients")
	patients.POST("", h.Patient.Create)
	patients.GET("", h.Patient.List)
	patients.GET("/:id", h.Patient.GetByID)
	patients.PUT("/:id", h.Patient.Update)
	patients.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Patient.Delete)
	patients.POST("/:id/attachments", h.Attachment.Upload)
	patients.GET("/:id/attachments", h.Attachment.ListByPatient)

	// Patient file attachments
	attachments := protected.Group("/attachments")
	attachments.GET("/:id/download", h.Attachment.Download)
	attachments.DELETE("/:id", h.Attachment.Delete)

	// Device inventory
	devices := protected.Group("/devices")
	devices.POST("", h.Device.Create)
	devices.GET("", h.Device.List)
	devices.GET("/summary", h.Device.Summary)
	devices.GET("/serial/:serial", h.Device.GetBySerial)
	devices.GET("/:id", h.Device.GetByID)
	devices.PUT("/:id", h.Device.Update)
	devices.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Device.Delete)

	// Invoices and payments
	invoices := protected.Group("/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.POST("/:id/payments", h.Invoice.AddPayment)
	invoices.DELETE("/:id/payments/:paymentId", h.Invoice.RemovePayment)
	invoices.GET("/:id/notes", h.Note.ListByInvoice)

	// Quotations
	quotations := protected.Group("/quotations")
	quotations.POST("", h.Quotation.Create)
	quotations.GET("", h.Quotation.List)
	quotations.GET("/:id", h.Quotation.GetByID)
	quotations.POST("/:id/convert", h.Quotation.Convert)

	// Credit and debit notes
	notes := protected.Group("/notes")
	notes.POST("", h.Note.Create)
	notes.GET("", h.Note.List)
	notes.GET("/:id", h.Note.GetByID)

	// CRM leads
	leads := protected.Group("/leads")
	leads.POST("", h.Lead.Create)
	leads.GET("", h.Lead.List)
	leads.GET("/:id", h.Lead.GetByID)
	leads.PUT("/:id", h.Lead.Update)
	leads.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Lead.Delete)
	leads.POST("/:id/follow-ups", h.Lead.AddFollowUp)
	leads.POST("/:id/convert", h.Lead.Convert)

	// Advance bookings
	bookings := protected.Group("/bookings")
	bookings.POST("", h.Booking.Create)
	bookings.GET("", h.Booking.List)
	bookings.GET("/:id", h.Booking.GetByID)
	bookings.POST("/:id/confirm", h.Booking.Confirm)
	bookings.POST("/:id/cancel", h.Booking.Cancel)

	// Device transfers
	transfers := protected.Group("/transfers")
	transfers.POST("", h.Transfer.Dispatch)
	transfers.GET("", h.Transfer.List)
	transfers.GET("/:id", h.Transfer.GetByID)
	transfers.POST("/:id/receive", h.Transfer.Receive)
	transfers.POST("/:id/cancel", h.Transfer.Cancel)

	// Financial reports
	reports := protected.Group("/reports")
	reports.GET("/sales-register.csv", h.Report.SalesRegisterCSV)
	reports.GET("/sales-register.xlsx", h.Report.SalesRegisterExcel)
	reports.GET("/monthly-summary", h.Report.MonthlySummary)

	// Marketing tools
	marketing := protected.Group("/marketing")
	marketing.POST("/promo-copy", h.Marketing.PromoCopy)
	marketing.GET("/stock-trends", h.Marketing.StockTrends)

	return r
}
