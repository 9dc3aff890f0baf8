package setup

import (
	"context"

	"github.com/itchan-dev/forum/backend/internal/handler"
	"github.com/itchan-dev/forum/backend/internal/service"
	"github.com/itchan-dev/forum/backend/internal/storage/pg"
	"github.com/itchan-dev/forum/backend/internal/utils"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/jwt"
	"github.com/itchan-dev/forum/shared/markdown"
	mw "github.com/itchan-dev/forum/shared/middleware"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService
	RateLimiters   *RateLimiters
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	renderer := markdown.New()
	titleValidator := &utils.ThreadTitleValidator{MaxLen: cfg.Public.ThreadTitleMaxLen}
	textValidator := &utils.PostTextValidator{MaxLen: cfg.Public.PostTextMaxLen}

	thread := service.NewThread(storage, titleValidator, textValidator, renderer, cfg.Public)
	post := service.NewPost(storage, textValidator, renderer)
	vote := service.NewVote(storage)

	h := handler.New(thread, post, vote, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService, cfg.Public.SecureCookies),
		Jwt:            jwtService,
		RateLimiters:   NewRateLimiters(cfg.Public.RateLimits),
	}, nil
}
