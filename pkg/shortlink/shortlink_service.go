package shortlink

import (
	"context"
	"errors"
	"strings"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/recipe"

	"gorm.io/gorm"
)

const defaultMaxAttempts = 10

type (
	ShortLinkService interface {
		GetRecipeLink(ctx context.Context, recipeID string) (domain.ShortLinkResponse, error)
		Shorten(ctx context.Context, originalURL string) (*entities.LinkMapped, error)
		Resolve(ctx context.Context, hash string) (string, error)
	}

	Option func(*shortLinkService)

	shortLinkService struct {
		shortLinkRepository ShortLinkRepository
		recipeRepository    recipe.RecipeRepository
		appURL              string
		generate            HashGenerator
		maxAttempts         int
	}
)

// WithGenerator replaces RandomHash.
func WithGenerator(g HashGenerator) Option {
	return func(s *shortLinkService) {
		s.generate = g
	}
}

// WithMaxAttempts bounds how many colliding hashes are tolerated before
// Shorten gives up.
func WithMaxAttempts(n int) Option {
	return func(s *shortLinkService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func NewShortLinkService(
	shortLinkRepository ShortLinkRepository,
	recipeRepository recipe.RecipeRepository,
	appURL string,
	opts ...Option,
) ShortLinkService {
	s := &shortLinkService{
		shortLinkRepository: shortLinkRepository,
		recipeRepository:    recipeRepository,
		appURL:              strings.TrimRight(appURL, "/"),
		generate:            RandomHash,
		maxAttempts:         defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *shortLinkService) GetRecipeLink(ctx context.Context, recipeID string) (domain.ShortLinkResponse, error) {
	id, err := utils.ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return domain.ShortLinkResponse{}, err
	}
	if _, err := s.recipeRepository.GetRecipeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortLinkResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ShortLinkResponse{}, err
	}

	link, err := s.Shorten(ctx, s.appURL+"/recipes/"+id.String())
	if err != nil {
		return domain.ShortLinkResponse{}, err
	}
	return domain.ShortLinkResponse{ShortLink: s.appURL + "/s/" + link.URLHash + "/"}, nil
}

// Shorten returns the mapping for originalURL, creating one with a fresh
// hash when none exists yet.
func (s *shortLinkService) Shorten(ctx context.Context, originalURL string) (*entities.LinkMapped, error) {
	if len(originalURL) > domain.MaxShortURLLength {
		return nil, domain.ErrShortLinkTooLong
	}

	existing, err := s.shortLinkRepository.GetLinkByURL(ctx, originalURL)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		hash := s.generate()

		taken, err := s.shortLinkRepository.HashExists(ctx, hash)
		if err != nil {
			return nil, err
		}
		if taken {
			metrics.RecordShortLinkCollision()
			continue
		}

		link := &entities.LinkMapped{URLHash: hash, OriginalURL: originalURL}
		if err := s.shortLinkRepository.CreateLink(ctx, link); err != nil {
			// another request took the hash between the check and the insert
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				metrics.RecordShortLinkCollision()
				continue
			}
			return nil, err
		}

		metrics.RecordShortLinkCreated()
		logging.Debug().Str("hash", hash).Str("url", originalURL).Msg("short link created")
		return link, nil
	}

	return nil, domain.ErrShortLinkExhausted
}

func (s *shortLinkService) Resolve(ctx context.Context, hash string) (string, error) {
	if hash == "" || len(hash) > domain.MaxShortHashLength {
		return "", domain.ErrShortLinkNotFound
	}

	link, err := s.shortLinkRepository.GetLinkByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrShortLinkNotFound
		}
		return "", err
	}
	return link.OriginalURL, nil
}
