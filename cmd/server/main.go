package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	aigemini "hearbill/internal/ai/gemini"
	ainoop "hearbill/internal/ai/noop"
	"hearbill/internal/config"
	emailnoop "hearbill/internal/email/noop"
	"hearbill/internal/email/ses"
	"hearbill/internal/handler"
	"hearbill/internal/port"
	"hearbill/internal/repository/postgres"
	"hearbill/internal/router"
	"hearbill/internal/service"
	s3storage "hearbill/internal/storage/s3"
)

// @title HearBill API
// @version 1.0
// @description Billing, inventory and CRM backend for a hearing aid clinic.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	patientRepo := postgres.NewPatientRepo(db)
	deviceRepo := postgres.NewDeviceRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	quotationRepo := postgres.NewQuotationRepo(db)
	noteRepo := postgres.NewNoteRepo(db)
	counterRepo := postgres.NewCounterRepo(db)
	leadRepo := postgres.NewLeadRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)
	transferRepo := postgres.NewTransferRepo(db)
	attachmentRepo := postgres.NewAttachmentRepo(db)
	rateRepo := postgres.NewGSTRateRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Clinic.Name)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = emailnoop.NewNoopSender()
	}

	// Initialize copywriter
	copywriter := ainoop.NewCopywriter()
	if cfg.AI.APIKey != "" {
		gemini, closeGemini, err := aigemini.NewCopywriter(context.Background(), cfg.AI, cfg.Clinic.Name)
		if err != nil {
			return fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		defer closeGemini()
		copywriter = gemini
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	patientSvc := service.NewPatientService(patientRepo)
	inventorySvc := service.NewInventoryService(deviceRepo, rateRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, patientRepo, deviceRepo, counterRepo, emailSender, cfg.Clinic)
	quotationSvc := service.NewQuotationService(quotationRepo, patientRepo, deviceRepo, counterRepo, invoiceSvc, cfg.Clinic)
	noteSvc := service.NewNoteService(noteRepo, invoiceRepo, counterRepo, cfg.Clinic)
	leadSvc := service.NewLeadService(leadRepo, patientRepo)
	bookingSvc := service.NewBookingService(bookingRepo, patientRepo, deviceRepo, emailSender)
	logisticsSvc := service.NewLogisticsService(transferRepo, deviceRepo)
	reportSvc := service.NewReportService(invoiceRepo, noteRepo)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, patientRepo, s3Client, &cfg.S3)
	marketingSvc := service.NewMarketingService(copywriter, deviceRepo)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, userSvc),
		User:       handler.NewUserHandler(userSvc),
		Patient:    handler.NewPatientHandler(patientSvc),
		Device:     handler.NewDeviceHandler(inventorySvc),
		Invoice:    handler.NewInvoiceHandler(invoiceSvc),
		Quotation:  handler.NewQuotationHandler(quotationSvc),
		Note:       handler.NewNoteHandler(noteSvc),
		Lead:       handler.NewLeadHandler(leadSvc),
		Booking:    handler.NewBookingHandler(bookingSvc),
		Transfer:   handler.NewTransferHandler(logisticsSvc),
		Attachment: handler.NewAttachmentHandler(attachmentSvc),
		Report:     handler.NewReportHandler(reportSvc),
		Marketing:  handler.NewMarketingHandler(marketingSvc),
		Health:     handler.NewHealthHandler(db),
	}

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
