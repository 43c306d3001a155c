package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/alex/dev-tools-portal/internal/service"
)

const (
	maxPublicFileSize   = 10 << 20 // 10 MB per file
	maxPublicFiles      = 10
	maxDocumentFileSize = 100 << 20 // 100 MB per file
	maxDocumentFiles    = 5

	multipartMemory = 32 << 20
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

type FileRecordResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mimetype"`
	FileSize  int64  `json:"file_size"`
	CreatedAt string `json:"createdAt"`
}

// List returns the recorded document uploads, newest first.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.fileService.ListFiles(r.Context())
	if err != nil {
		log.Printf("ERROR [files.List]: %v", err)
		http.Error(w, "Failed to list files", http.StatusInternalServerError)
		return
	}

	resp := make([]FileRecordResponse, len(records))
	for i, record := range records {
		resp[i] = FileRecordResponse{
			ID:        record.ID.String(),
			URL:       record.URL,
			FileName:  record.FileName,
			MimeType:  record.MimeType,
			FileSize:  record.FileSize,
			CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	writeJSON(w, resp)
}

func (h *FileHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	uploads, ok := h.readUploads(w, r, maxPublicFiles, maxPublicFileSize)
	if !ok {
		return
	}

	files, err := h.fileService.UploadFiles(r.Context(), uploads)
	if err != nil {
		h.writeUploadError(w, err, "files.UploadFiles")
		return
	}
	writeJSON(w, files)
}

func (h *FileHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	uploads, ok := h.readUploads(w, r, maxDocumentFiles, maxDocumentFileSize)
	if !ok {
		return
	}

	files, err := h.fileService.UploadDocuments(r.Context(), uploads)
	if err != nil {
		h.writeUploadError(w, err, "files.UploadDocuments")
		return
	}
	writeJSON(w, files)
}

// readUploads parses the multipart "files" field, enforcing the per-endpoint
// count and size ceilings before any bytes reach the service.
func (h *FileHandler) readUploads(w http.ResponseWriter, r *http.Request, maxFiles int, maxFileSize int64) ([]service.Upload, bool) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		http.Error(w, "Invalid multipart request", http.StatusBadRequest)
		return nil, false
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, "No files provided", http.StatusBadRequest)
		return nil, false
	}
	if len(headers) > maxFiles {
		http.Error(w, fmt.Sprintf("At most %d files per request", maxFiles), http.StatusBadRequest)
		return nil, false
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxFileSize {
			http.Error(w, fmt.Sprintf("File %s exceeds the size limit", header.Filename), http.StatusBadRequest)
			return nil, false
		}

		file, err := header.Open()
		if err != nil {
			http.Error(w, "Failed to read file", http.StatusBadRequest)
			return nil, false
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			http.Error(w, "Failed to read file", http.StatusBadRequest)
			return nil, false
		}

		uploads = append(uploads, service.Upload{
			FileName: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Size:     header.Size,
			Data:     data,
		})
	}

	return uploads, true
}

func (h *FileHandler) writeUploadError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrNoFiles):
		http.Error(w, "No files provided", http.StatusBadRequest)
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("ERROR [%s]: %v", op, err)
		http.Error(w, "Failed to upload files", http.StatusInternalServerError)
	}
}
