package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/alex/dev-tools-portal/internal/repository"
	"github.com/alex/dev-tools-portal/internal/storage"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrNoFiles            = errors.New("no files provided")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

// publicUploadMimeTypes is the allow-list for the general upload endpoint
// (images, PDFs, Office documents).
var publicUploadMimeTypes = map[string]bool{
	"image/png":      true,
	"image/jpeg":     true,
	"image/jpg":      true,
	"image/gif":      true,
	"image/webp":     true,
	"image/svg+xml":  true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// documentMimeTypes is the allow-list for the private document endpoint.
var documentMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/rtf": true,
	"application/vnd.oasis.opendocument.text": true,
	"text/plain": true,
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
	"image/tiff": true,
	"image/bmp":  true,
}

// ObjectStore is the slice of the storage client the file service needs.
type ObjectStore interface {
	Save(ctx context.Context, input storage.SaveInput) (string, error)
}

type FileService struct {
	store    ObjectStore
	fileRepo repository.FileRepository
}

func NewFileService(store ObjectStore, fileRepo repository.FileRepository) *FileService {
	return &FileService{store: store, fileRepo: fileRepo}
}

type Upload struct {
	FileName string
	MimeType string
	Size     int64
	Data     []byte
}

type PublicFile struct {
	URL string `json:"url"`
}

type DocumentFile struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	MimeType string `json:"mimetype"`
	FileSize int64  `json:"file_size"`
}

// UploadFiles stores general uploads and returns their public URLs.
func (s *FileService) UploadFiles(ctx context.Context, uploads []Upload) ([]PublicFile, error) {
	if err := validateUploads(uploads, publicUploadMimeTypes); err != nil {
		return nil, err
	}

	files := make([]PublicFile, 0, len(uploads))
	for _, upload := range uploads {
		url, err := s.store.Save(ctx, storage.SaveInput{
			Data:        upload.Data,
			ContentType: upload.MimeType,
		})
		if err != nil {
			return nil, err
		}
		files = append(files, PublicFile{URL: url})
	}
	return files, nil
}

// UploadDocuments stores private documents, records each in the file
// inventory and returns URL plus original name, type and size.
func (s *FileService) UploadDocuments(ctx context.Context, uploads []Upload) ([]DocumentFile, error) {
	if err := validateUploads(uploads, documentMimeTypes); err != nil {
		return nil, err
	}

	files := make([]DocumentFile, 0, len(uploads))
	for _, upload := range uploads {
		url, err := s.store.Save(ctx, storage.SaveInput{
			Data:        upload.Data,
			ContentType: upload.MimeType,
		})
		if err != nil {
			return nil, err
		}

		metadata, _ := json.Marshal(map[string]interface{}{
			"original_name": upload.FileName,
		})
		record := &domain.UploadedFile{
			ID:       uuid.New(),
			URL:      url,
			FileName: upload.FileName,
			MimeType: upload.MimeType,
			FileSize: upload.Size,
			Metadata: datatypes.JSON(metadata),
		}
		if err := s.fileRepo.Create(ctx, record); err != nil {
			// The object is already stored; losing the inventory row is not
			// worth failing the upload over.
			log.Printf("ERROR [files.UploadDocuments] record file: %v", err)
		}

		files = append(files, DocumentFile{
			URL:      url,
			FileName: upload.FileName,
			MimeType: upload.MimeType,
			FileSize: upload.Size,
		})
	}
	return files, nil
}

// ListFiles returns the document inventory, newest first.
func (s *FileService) ListFiles(ctx context.Context) ([]*domain.UploadedFile, error) {
	return s.fileRepo.List(ctx)
}

func validateUploads(uploads []Upload, allowed map[string]bool) error {
	if len(uploads) == 0 {
		return ErrNoFiles
	}
	for _, upload := range uploads {
		if !allowed[upload.MimeType] {
			return fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, upload.MimeType)
		}
	}
	return nil
}
