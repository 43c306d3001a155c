package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UploadedFile records a private document written to object storage so the
// upload endpoint has an inventory of what it accepted.
type UploadedFile struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	URL       string         `json:"url" gorm:"not null"`
	FileName  string         `json:"file_name"`
	MimeType  string         `json:"mimetype"`
	FileSize  int64          `json:"file_size"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}
