package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a clinic staff member who can log in.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Patient represents a patient record.
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	FullName  string     `db:"full_name" json:"full_name"`
	Phone     string     `db:"phone" json:"phone"`
	Email     string     `db:"email" json:"email"`
	Address   string     `db:"address" json:"address"`
	StateCode string     `db:"state_code" json:"state_code"`
	DOB       *time.Time `db:"dob" json:"dob"`
	Notes     string     `db:"notes" json:"notes"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Device represents a serialized hearing-aid unit in inventory.
type Device struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	Brand          string       `db:"brand" json:"brand"`
	Model          string       `db:"model" json:"model"`
	SerialNumber   string       `db:"serial_number" json:"serial_number"`
	HSNCode        string       `db:"hsn_code" json:"hsn_code"`
	GSTRatePercent float64      `db:"gst_rate_percent" json:"gst_rate_percent"`
	UnitPrice      float64      `db:"unit_price" json:"unit_price"`
	Location       string       `db:"location" json:"location"`
	Status         DeviceStatus `db:"status" json:"status"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// InvoiceItem is a line item snapshotted by value from inventory at
// creation time. Later edits to the device never change issued invoices.
type InvoiceItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	InvoiceID      uuid.UUID `db:"invoice_id" json:"invoice_id"`
	DeviceID       uuid.UUID `db:"device_id" json:"device_id"`
	Brand          string    `db:"brand" json:"brand"`
	Model          string    `db:"model" json:"model"`
	SerialNumber   string    `db:"serial_number" json:"serial_number"`
	HSNCode        string    `db:"hsn_code" json:"hsn_code"`
	UnitPrice      float64   `db:"unit_price" json:"unit_price"`
	Quantity       float64   `db:"quantity" json:"quantity"`
	GSTRatePercent float64   `db:"gst_rate_percent" json:"gst_rate_percent"`
	ItemDiscount   float64   `db:"item_discount" json:"item_discount"`
	TaxableValue   float64   `db:"taxable_value" json:"taxable_value"`
	CGSTAmount     float64   `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount     float64   `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount     float64   `db:"igst_amount" json:"igst_amount"`
	LineTotal      float64   `db:"line_total" json:"line_total"`
}

// PaymentRecord is an append-only payment entry on an invoice.
type PaymentRecord struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	InvoiceID   uuid.UUID     `db:"invoice_id" json:"invoice_id"`
	Date        time.Time     `db:"date" json:"date"`
	Amount      float64       `db:"amount" json:"amount"`
	Method      PaymentMethod `db:"method" json:"method"`
	Note        string        `db:"note" json:"note"`
	BankDetails string        `db:"bank_details" json:"bank_details"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

// Invoice is a GST tax invoice. PatientName is a value-copy snapshot.
type Invoice struct {
	ID                uuid.UUID     `db:"id" json:"id"`
	DocumentID        string        `db:"document_id" json:"document_id"`
	PatientID         uuid.UUID     `db:"patient_id" json:"patient_id"`
	PatientName       string        `db:"patient_name" json:"patient_name"`
	Date              time.Time     `db:"date" json:"date"`
	DiscountType      DiscountType  `db:"discount_type" json:"discount_type"`
	DiscountValue     float64       `db:"discount_value" json:"discount_value"`
	PlaceOfSupply     PlaceOfSupply `db:"place_of_supply" json:"place_of_supply"`
	Subtotal          float64       `db:"subtotal" json:"subtotal"`
	TotalDiscount     float64       `db:"total_discount" json:"total_discount"`
	TotalTaxableValue float64       `db:"total_taxable_value" json:"total_taxable_value"`
	TotalCGST         float64       `db:"total_cgst" json:"total_cgst"`
	TotalSGST         float64       `db:"total_sgst" json:"total_sgst"`
	TotalIGST         float64       `db:"total_igst" json:"total_igst"`
	TotalTax          float64       `db:"total_tax" json:"total_tax"`
	FinalTotal        float64       `db:"final_total" json:"final_total"`
	BalanceDue        float64       `db:"balance_due" json:"balance_due"`
	PaymentStatus     PaymentStatus `db:"payment_status" json:"payment_status"`
	CreatedBy         uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`

	Items    []InvoiceItem   `db:"-" json:"items"`
	Payments []PaymentRecord `db:"-" json:"payments"`
}

// Quotation mirrors the invoice computation but is non-fiscal and can be
// converted into an invoice until it expires.
type Quotation struct {
	ID                uuid.UUID     `db:"id" json:"id"`
	DocumentID        string        `db:"document_id" json:"document_id"`
	PatientID         uuid.UUID     `db:"patient_id" json:"patient_id"`
	PatientName       string        `db:"patient_name" json:"patient_name"`
	Date              time.Time     `db:"date" json:"date"`
	ValidUntil        time.Time     `db:"valid_until" json:"valid_until"`
	DiscountType      DiscountType  `db:"discount_type" json:"discount_type"`
	DiscountValue     float64       `db:"discount_value" json:"discount_value"`
	PlaceOfSupply     PlaceOfSupply `db:"place_of_supply" json:"place_of_supply"`
	Subtotal          float64       `db:"subtotal" json:"subtotal"`
	TotalDiscount     float64       `db:"total_discount" json:"total_discount"`
	TotalTaxableValue float64       `db:"total_taxable_value" json:"total_taxable_value"`
	TotalCGST         float64       `db:"total_cgst" json:"total_cgst"`
	TotalSGST         float64       `db:"total_sgst" json:"total_sgst"`
	TotalIGST         float64       `db:"total_igst" json:"total_igst"`
	TotalTax          float64       `db:"total_tax" json:"total_tax"`
	FinalTotal        float64       `db:"final_total" json:"final_total"`
	ConvertedInvoice  *uuid.UUID    `db:"converted_invoice_id" json:"converted_invoice_id"`
	CreatedBy         uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`

	Items []InvoiceItem `db:"-" json:"items"`
}

// FinancialNote is a credit or debit note issued against an invoice.
type FinancialNote struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DocumentID  string    `db:"document_id" json:"document_id"`
	Type        NoteType  `db:"type" json:"type"`
	InvoiceID   uuid.UUID `db:"invoice_id" json:"invoice_id"`
	InvoiceDoc  string    `db:"invoice_document_id" json:"invoice_document_id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	Amount      float64   `db:"amount" json:"amount"`
	Reason      string    `db:"reason" json:"reason"`
	Date        time.Time `db:"date" json:"date"`
	CreatedBy   uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Lead is a CRM pipeline entry.
type Lead struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	FullName  string     `db:"full_name" json:"full_name"`
	Phone     string     `db:"phone" json:"phone"`
	Email     string     `db:"email" json:"email"`
	Source    string     `db:"source" json:"source"`
	Status    LeadStatus `db:"status" json:"status"`
	PatientID *uuid.UUID `db:"patient_id" json:"patient_id"`
	CreatedBy uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`

	FollowUps []FollowUp `db:"-" json:"follow_ups,omitempty"`
}

// FollowUp is a timestamped note on a lead.
type FollowUp struct {
	ID        uuid.UUID `db:"id" json:"id"`
	LeadID    uuid.UUID `db:"lead_id" json:"lead_id"`
	Note      string    `db:"note" json:"note"`
	DueAt     *time.Time `db:"due_at" json:"due_at"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Booking is an advance booking that holds a device for a patient.
type Booking struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	PatientID     uuid.UUID     `db:"patient_id" json:"patient_id"`
	PatientName   string        `db:"patient_name" json:"patient_name"`
	DeviceID      uuid.UUID     `db:"device_id" json:"device_id"`
	AdvanceAmount float64       `db:"advance_amount" json:"advance_amount"`
	Status        BookingStatus `db:"status" json:"status"`
	Notes         string        `db:"notes" json:"notes"`
	CreatedBy     uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Transfer is a device movement between clinic locations.
type Transfer struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	DeviceID     uuid.UUID      `db:"device_id" json:"device_id"`
	FromLocation string         `db:"from_location" json:"from_location"`
	ToLocation   string         `db:"to_location" json:"to_location"`
	Status       TransferStatus `db:"status" json:"status"`
	DispatchedAt time.Time      `db:"dispatched_at" json:"dispatched_at"`
	ReceivedAt   *time.Time     `db:"received_at" json:"received_at"`
	CreatedBy    uuid.UUID      `db:"created_by" json:"created_by"`
}

// Attachment stores metadata about an uploaded patient file.
type Attachment struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// GSTRate is a row of the HSN/SAC rate master used to default device rates.
type GSTRate struct {
	HSNCode     string  `db:"hsn_code" json:"hsn_code"`
	Description string  `db:"description" json:"description"`
	RatePercent float64 `db:"rate_percent" json:"rate_percent"`
}
