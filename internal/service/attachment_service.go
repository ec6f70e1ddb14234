package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hearbill/internal/config"
	"hearbill/internal/domain"
	"hearbill/internal/port"
)

// AttachmentUploadInput is the DTO for patient file upload requests.
type AttachmentUploadInput struct {
	PatientID  uuid.UUID
	UploadedBy uuid.UUID
	File       multipart.File
	Header     *multipart.FileHeader
}

// AttachmentService manages patient files (audiograms, prescriptions, ID
// proofs) stored in object storage.
type AttachmentService interface {
	Upload(ctx context.Context, input AttachmentUploadInput) (*domain.Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) ([]domain.Attachment, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attachmentService struct {
	attachmentRepo port.AttachmentRepository
	patientRepo    port.PatientRepository
	storage        port.ObjectStorage
	cfg            *config.S3Config
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(
	attachmentRepo port.AttachmentRepository,
	patientRepo port.PatientRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) AttachmentService {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		patientRepo:    patientRepo,
		storage:        storage,
		cfg:            cfg,
	}
}

func (s *attachmentService) Upload(ctx context.Context, input AttachmentUploadInput) (*domain.Attachment, error) {
	if _, err := s.patientRepo.GetByID(ctx, input.PatientID); err != nil {
		return nil, err
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	attachmentID := uuid.New()
	s3Key := fmt.Sprintf("patients/%s/files/%s/%s", input.PatientID, attachmentID, input.Header.Filename)
	contentType := domain.FileContentTypes[fileType]

	att := &domain.Attachment{
		ID:           attachmentID,
		PatientID:    input.PatientID,
		UploadedBy:   input.UploadedBy,
		FileName:     attachmentID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
		Status:       domain.FileStatusPending,
	}

	log.Printf("attachmentService.Upload: uploading %s (%s, %d bytes) for patient %s",
		input.Header.Filename, contentType, input.Header.Size, input.PatientID)

	if err := s.attachmentRepo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("creating attachment metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("attachmentService.Upload: S3 upload failed for %s: %v", att.ID, err)
		_ = s.attachmentRepo.UpdateStatus(ctx, att.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	if err := s.attachmentRepo.UpdateStatus(ctx, att.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating attachment status: %w", err)
	}
	att.Status = domain.FileStatusUploaded

	return att, nil
}

func (s *attachmentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	return s.attachmentRepo.GetByID(ctx, id)
}

func (s *attachmentService) ListByPatient(ctx context.Context, patientID uuid.UUID, offset, limit int) ([]domain.Attachment, int, error) {
	return s.attachmentRepo.ListByPatient(ctx, patientID, offset, limit)
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	att, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, att.S3Bucket, att.S3Key, s.cfg.PresignExpiry)
}

func (s *attachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	att, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, att.S3Bucket, att.S3Key); err != nil {
		log.Printf("attachmentService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.attachmentRepo.UpdateStatus(ctx, id, domain.FileStatusDeleted)
}
