package service

import (
	"github.com/icares/memberportal/internal/config"
	"github.com/icares/memberportal/internal/repository"
)

type Services struct {
	Auth *AuthService
	User *UserService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, repos.Session, cfg),
		User: NewUserService(repos.User),
	}
}
