package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/alex/dev-tools-portal/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type LinkHandler struct {
	linkService *service.LinkService
}

func NewLinkHandler(linkService *service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

type LinkRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Order       int    `json:"order"`
}

type LinkResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Order       int    `json:"order"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toLinkResponse(link *domain.Link) LinkResponse {
	return LinkResponse{
		ID:          link.ID.String(),
		Title:       link.Title,
		URL:         link.URL,
		Icon:        link.Icon,
		Description: link.Description,
		Category:    link.Category,
		Order:       link.Order,
		CreatedAt:   link.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   link.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.linkService.FindAll(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("ERROR [link.List]: %v", err)
		http.Error(w, "Failed to list links", http.StatusInternalServerError)
		return
	}

	resp := make([]LinkResponse, len(links))
	for i, link := range links {
		resp[i] = toLinkResponse(link)
	}
	writeJSON(w, resp)
}

func (h *LinkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Link not found", http.StatusNotFound)
		return
	}

	link, err := h.linkService.FindOne(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			http.Error(w, "Link not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [link.Get] id=%s: %v", id, err)
		http.Error(w, "Failed to get link", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toLinkResponse(link))
}

func (h *LinkHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.linkService.Categories(r.Context())
	if err != nil {
		log.Printf("ERROR [link.Categories]: %v", err)
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, categories)
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	link, err := h.linkService.Create(r.Context(), linkInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("ERROR [link.Create]: %v", err)
		http.Error(w, "Failed to create link", http.StatusInternalServerError)
		return
	}

	writeJSON(w, toLinkResponse(link))
}

func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Link not found", http.StatusNotFound)
		return
	}

	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	link, err := h.linkService.Update(r.Context(), id, linkInput(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLinkNotFound):
			http.Error(w, "Link not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("ERROR [link.Update] id=%s: %v", id, err)
			http.Error(w, "Failed to update link", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, toLinkResponse(link))
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Link not found", http.StatusNotFound)
		return
	}

	if err := h.linkService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			http.Error(w, "Link not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [link.Delete] id=%s: %v", id, err)
		http.Error(w, "Failed to delete link", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]bool{"success": true})
}

func linkInput(req LinkRequest) service.LinkInput {
	return service.LinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Icon:        req.Icon,
		Description: req.Description,
		Category:    req.Category,
		Order:       req.Order,
	}
}
