package domain

// UserRole defines the staff role hierarchy within the clinic.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin: true,
	RoleStaff: true,
}

// DiscountType selects how an invoice-level discount is interpreted.
type DiscountType string

const (
	DiscountFlat    DiscountType = "flat"
	DiscountPercent DiscountType = "percent"
)

// PlaceOfSupply determines the GST split: CGST+SGST within the clinic's
// state, IGST across states.
type PlaceOfSupply string

const (
	IntraState PlaceOfSupply = "Intra-State"
	InterState PlaceOfSupply = "Inter-State"
)

// PaymentStatus is the tri-state derived from balance due and payment count.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusUnpaid  PaymentStatus = "Unpaid"
)

// PaymentMethod records how a payment was collected.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodCheque PaymentMethod = "cheque"
	PaymentMethodBank   PaymentMethod = "bank_transfer"
)

// DeviceStatus is the lifecycle of a serialized inventory unit.
type DeviceStatus string

const (
	DeviceAvailable DeviceStatus = "available"
	DeviceBooked    DeviceStatus = "booked"
	DeviceSold      DeviceStatus = "sold"
	DeviceInTransit DeviceStatus = "in_transit"
)

// LeadStatus is the CRM pipeline stage.
type LeadStatus string

const (
	LeadNew            LeadStatus = "new"
	LeadContacted      LeadStatus = "contacted"
	LeadTrialScheduled LeadStatus = "trial_scheduled"
	LeadConverted      LeadStatus = "converted"
	LeadLost           LeadStatus = "lost"
)

// BookingStatus is the lifecycle of an advance booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// TransferStatus is the lifecycle of a device transfer between locations.
type TransferStatus string

const (
	TransferDispatched TransferStatus = "dispatched"
	TransferReceived   TransferStatus = "received"
	TransferCancelled  TransferStatus = "cancelled"
)

// NoteType distinguishes credit notes from debit notes.
type NoteType string

const (
	NoteCredit NoteType = "credit"
	NoteDebit  NoteType = "debit"
)

// Document ID prefixes. The full ID is <prefix>-<period>-<seq>.
const (
	PrefixInvoice    = "INV"
	PrefixQuotation  = "QUO"
	PrefixCreditNote = "CRN"
	PrefixDebitNote  = "DBN"
)

// FileType represents the allowed attachment types.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// FileContentTypes maps each FileType to its canonical MIME content type.
var FileContentTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded attachment.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)
