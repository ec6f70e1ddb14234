package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrDuplicateSerial     = errors.New("serial number already exists")
	ErrDeviceUnavailable   = errors.New("device is not available")
	ErrDeviceNotInTransit  = errors.New("device is not in transit")
	ErrQuotationExpired    = errors.New("quotation has expired")
	ErrQuotationConverted  = errors.New("quotation already converted to invoice")
	ErrBookingNotPending   = errors.New("booking is not pending")
	ErrLeadConverted       = errors.New("lead already converted to patient")
	ErrPaymentNotFound     = errors.New("payment record not found on invoice")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrCopywriterDisabled  = errors.New("copywriter is not configured")
)
