package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/alex/dev-tools-portal/internal/password"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	status   domain.UserStatus
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
		status:   domain.StatusActive,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(pass string) *UserBuilder {
	b.password = pass
	return b
}

// WithStatus sets the account status
func (b *UserBuilder) WithStatus(status domain.UserStatus) *UserBuilder {
	b.status = status
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hash, err := password.Hash(b.password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       b.status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// TokenPairResponse matches the API auth response
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SignIn authenticates against the API and returns the token pair
func SignIn(t *testing.T, ts *TestServer, email, pass string) TokenPairResponse {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": pass})
	resp, err := http.Post(ts.APIURL("/auth/sign-in"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected sign-in status code: %d", resp.StatusCode)
	}

	var pair TokenPairResponse
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		t.Fatalf("failed to decode sign-in response: %v", err)
	}

	return pair
}

// LinkBuilder creates test links with a builder pattern
type LinkBuilder struct {
	title    string
	url      string
	category string
	order    int
}

// NewLinkBuilder creates a new LinkBuilder with default values
func NewLinkBuilder() *LinkBuilder {
	return &LinkBuilder{
		title:    fmt.Sprintf("Link %s", uuid.New().String()[:8]),
		url:      "https://example.com",
		category: domain.DefaultLinkCategory,
	}
}

// WithTitle sets the title
func (b *LinkBuilder) WithTitle(title string) *LinkBuilder {
	b.title = title
	return b
}

// WithURL sets the URL
func (b *LinkBuilder) WithURL(url string) *LinkBuilder {
	b.url = url
	return b
}

// WithCategory sets the category
func (b *LinkBuilder) WithCategory(category string) *LinkBuilder {
	b.category = category
	return b
}

// WithOrder sets the sort order
func (b *LinkBuilder) WithOrder(order int) *LinkBuilder {
	b.order = order
	return b
}

// Build creates the link in the database
func (b *LinkBuilder) Build(t *testing.T, db *gorm.DB) *domain.Link {
	t.Helper()

	link := &domain.Link{
		ID:       uuid.New(),
		Title:    b.title,
		URL:      b.url,
		Category: b.category,
		Order:    b.order,
	}

	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to create link: %v", err)
	}

	return link
}
