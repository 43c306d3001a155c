package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/alex/dev-tools-portal/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var urlPattern = regexp.MustCompile(`^https?://.+`)

type LinkService struct {
	linkRepo repository.LinkRepository
}

func NewLinkService(linkRepo repository.LinkRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo}
}

type LinkInput struct {
	Title       string
	URL         string
	Icon        string
	Description string
	Category    string
	Order       int
}

func (in LinkInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(in.Title) > 120 {
		return fmt.Errorf("%w: title must be at most 120 characters", domain.ErrValidation)
	}
	if !urlPattern.MatchString(strings.TrimSpace(in.URL)) {
		return fmt.Errorf("%w: url must start with http:// or https://", domain.ErrValidation)
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		return fmt.Errorf("%w: description must be at most 500 characters", domain.ErrValidation)
	}
	return nil
}

func (in LinkInput) apply(link *domain.Link) {
	link.Title = strings.TrimSpace(in.Title)
	link.URL = strings.TrimSpace(in.URL)
	link.Icon = strings.TrimSpace(in.Icon)
	link.Description = strings.TrimSpace(in.Description)
	link.Category = strings.TrimSpace(in.Category)
	if link.Category == "" {
		link.Category = domain.DefaultLinkCategory
	}
	link.Order = in.Order
}

func (s *LinkService) FindAll(ctx context.Context, category string) ([]*domain.Link, error) {
	return s.linkRepo.List(ctx, category)
}

func (s *LinkService) FindOne(ctx context.Context, id uuid.UUID) (*domain.Link, error) {
	link, err := s.linkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, err
	}
	return link, nil
}

func (s *LinkService) Categories(ctx context.Context) ([]string, error) {
	return s.linkRepo.Categories(ctx)
}

func (s *LinkService) Create(ctx context.Context, input LinkInput) (*domain.Link, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	link := &domain.Link{ID: uuid.New()}
	input.apply(link)

	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *LinkService) Update(ctx context.Context, id uuid.UUID, input LinkInput) (*domain.Link, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	link, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(link)
	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *LinkService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.linkRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}
