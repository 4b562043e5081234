package setup

import (
	"github.com/threadly-dev/threadly/internal/config"
	"github.com/threadly-dev/threadly/internal/handler"
	"github.com/threadly-dev/threadly/internal/jwt"
	mw "github.com/threadly-dev/threadly/internal/middleware"
	"github.com/threadly-dev/threadly/internal/service"
	"github.com/threadly-dev/threadly/internal/storage/pg"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	moderation := service.NewModeration(storage)
	auth := service.NewAuth(storage, jwtService)
	forum := service.NewForum(storage)

	messages := service.NewMessageValidator(cfg.Public.MaxMessageLen)
	titles := &service.TitleValidator{}

	thread := service.NewThread(storage, moderation, titles, messages)
	response := service.NewResponse(storage, moderation, messages)
	reaction := service.NewReaction(storage)

	h := handler.New(auth, forum, thread, response, reaction, moderation, storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}
