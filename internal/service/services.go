package service

import (
	"github.com/alex/dev-tools-portal/internal/config"
	"github.com/alex/dev-tools-portal/internal/repository"
	"github.com/alex/dev-tools-portal/internal/token"
)

type Services struct {
	Auth *AuthService
	Link *LinkService
	File *FileService
}

func NewServices(repos *repository.Repositories, store ObjectStore, codec *token.Codec, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, repos.Session, codec, cfg),
		Link: NewLinkService(repos.Link),
		File: NewFileService(store, repos.File),
	}
}
