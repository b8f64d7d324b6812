package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const avatarFolder = "users/avatars"

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context, token string) error
		IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUser(ctx context.Context, id string, viewerID string) (domain.UserResponse, error)
		GetUsers(ctx context.Context, page domain.PaginationRequest, viewerID string) ([]domain.UserResponse, domain.PaginationResponse, error)
		SetPassword(ctx context.Context, userID string, req domain.SetPasswordRequest) error
		UpdateAvatar(ctx context.Context, userID string, req domain.AvatarRequest) (domain.AvatarResponse, error)
		DeleteAvatar(ctx context.Context, userID string) error
		Subscribe(ctx context.Context, authorID string, userID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, authorID string, userID string) error
		GetSubscriptions(ctx context.Context, userID string, page domain.PaginationRequest, recipesLimit int) ([]domain.SubscriptionResponse, domain.PaginationResponse, error)
	}

	// AuthorRecipes is the slice of the recipe store that subscription views
	// need. The recipe repository satisfies it.
	AuthorRecipes interface {
		GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	}

	userService struct {
		userRepository UserRepository
		authorRecipes  AuthorRecipes
		jwtService     jwt.JWTService
		s3             storage.AwsS3
		mailer         mailing.Mailer
	}
)

func NewUserService(
	userRepository UserRepository,
	authorRecipes AuthorRecipes,
	jwtService jwt.JWTService,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
) UserService {
	return &userService{
		userRepository: userRepository,
		authorRecipes:  authorRecipes,
		jwtService:     jwtService,
		s3:             s3,
		mailer:         mailer,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)

	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.FieldError("email", domain.ErrEmailAlreadyExists)
	}

	exists, err = s.userRepository.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.FieldError("username", domain.ErrUsernameAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := entities.User{
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Role:      domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, &user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RegisterResponse{}, s.registrationConflict(ctx, email, req.Username)
		}
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		Email:     user.Email,
		ID:        user.ID.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// registrationConflict names the field a rejected insert collided on.
func (s *userService) registrationConflict(ctx context.Context, email, username string) error {
	if taken, err := s.userRepository.ExistsByEmail(ctx, email); err != nil {
		return err
	} else if taken {
		return domain.FieldError("email", domain.ErrEmailAlreadyExists)
	}
	if taken, err := s.userRepository.ExistsByUsername(ctx, username); err != nil {
		return err
	} else if taken {
		return domain.FieldError("username", domain.ErrUsernameAlreadyExists)
	}
	return domain.FieldError("email", domain.ErrEmailAlreadyExists)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.GetClaimsByToken(token)
	if err != nil {
		return err
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	revoked, err := s.userRepository.IsTokenRevoked(ctx, tokenID)
	if err != nil {
		return err
	}
	if revoked {
		return domain.ErrTokenRevoked
	}

	err = s.userRepository.RevokeToken(ctx, &entities.RevokedToken{
		ID:        tokenID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrTokenRevoked
	}
	return err
}

func (s *userService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	id, err := uuid.Parse(tokenID)
	if err != nil {
		return true, nil
	}
	return s.userRepository.IsTokenRevoked(ctx, id)
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return NewUserResponse(user, false, s.s3), nil
}

func (s *userService) GetUser(ctx context.Context, id string, viewerID string) (domain.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}

	subscribed, err := s.isSubscribed(ctx, viewerID, user.ID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return NewUserResponse(user, subscribed, s.s3), nil
}

func (s *userService) GetUsers(ctx context.Context, page domain.PaginationRequest, viewerID string) ([]domain.UserResponse, domain.PaginationResponse, error) {
	users, total, err := s.userRepository.GetUsers(ctx, page)
	if err != nil {
		return nil, domain.PaginationResponse{}, err
	}

	following, err := s.followingAmong(ctx, viewerID, users)
	if err != nil {
		return nil, domain.PaginationResponse{}, err
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, NewUserResponse(u, following[u.ID], s.s3))
	}
	return res, domain.NewPaginationResponse(page, total), nil
}

func (s *userService) SetPassword(ctx context.Context, userID string, req domain.SetPasswordRequest) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.FieldError("current_password", domain.ErrWrongPassword)
	}
	if req.NewPassword == req.CurrentPassword {
		return domain.FieldError("new_password", domain.ErrSamePassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepository.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	// the password is already changed, a failed notification is only logged
	if err := s.mailer.SendMail(user.Email, "Foodgram password changed", mailing.PasswordChangedBody(user.Username)); err != nil {
		logging.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send password change notification")
	}
	return nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, req domain.AvatarRequest) (domain.AvatarResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.AvatarResponse{}, err
	}

	file, err := storage.DecodeBase64Image(req.Avatar)
	if err != nil {
		return domain.AvatarResponse{}, domain.FieldError("avatar", err)
	}

	key, err := s.s3.UploadFile(ctx, uuid.NewString(), file, avatarFolder, storage.AllowImage...)
	if err != nil {
		return domain.AvatarResponse{}, err
	}

	if err := s.userRepository.UpdateAvatar(ctx, user.ID, key); err != nil {
		_ = s.s3.DeleteFile(ctx, key)
		return domain.AvatarResponse{}, err
	}
	s.deleteObject(ctx, user.Avatar)

	return domain.AvatarResponse{Avatar: s.s3.GetPublicLinkKey(key)}, nil
}

func (s *userService) DeleteAvatar(ctx context.Context, userID string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Avatar == "" {
		return domain.ErrNoAvatar
	}

	if err := s.userRepository.UpdateAvatar(ctx, user.ID, ""); err != nil {
		return err
	}
	s.deleteObject(ctx, user.Avatar)
	return nil
}

func (s *userService) Subscribe(ctx context.Context, authorID string, userID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	author, err := s.getUser(ctx, authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	follower, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrUnauthorized
	}
	if author.ID == follower {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	following, err := s.userRepository.IsFollowing(ctx, follower, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if following {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	if err := s.userRepository.CreateFollow(ctx, follower, author.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	counts, err := s.authorRecipes.CountRecipesByAuthor(ctx, []uuid.UUID{author.ID})
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	return s.subscriptionResponse(ctx, author, counts[author.ID], recipesLimit)
}

func (s *userService) Unsubscribe(ctx context.Context, authorID string, userID string) error {
	author, err := s.getUser(ctx, authorID)
	if err != nil {
		return err
	}
	follower, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrUnauthorized
	}

	deleted, err := s.userRepository.DeleteFollow(ctx, follower, author.ID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, page domain.PaginationRequest, recipesLimit int) ([]domain.SubscriptionResponse, domain.PaginationResponse, error) {
	follower, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.PaginationResponse{}, domain.ErrUnauthorized
	}

	authors, total, err := s.userRepository.GetFollowing(ctx, follower, page)
	if err != nil {
		return nil, domain.PaginationResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.authorRecipes.CountRecipesByAuthor(ctx, ids)
	if err != nil {
		return nil, domain.PaginationResponse{}, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, a := range authors {
		item, err := s.subscriptionResponse(ctx, a, counts[a.ID], recipesLimit)
		if err != nil {
			return nil, domain.PaginationResponse{}, err
		}
		res = append(res, item)
	}
	return res, domain.NewPaginationResponse(page, total), nil
}

func (s *userService) subscriptionResponse(ctx context.Context, author *entities.User, count int64, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.authorRecipes.GetRecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	short := make([]domain.RecipeShortResponse, 0, len(recipes))
	for _, r := range recipes {
		short = append(short, NewRecipeShortResponse(r, s.s3))
	}

	return domain.SubscriptionResponse{
		UserResponse: NewUserResponse(author, true, s.s3),
		Recipes:      short,
		RecipesCount: count,
	}, nil
}

func (s *userService) getUser(ctx context.Context, id string) (*entities.User, error) {
	userID, err := utils.ParseID(id, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) isSubscribed(ctx context.Context, viewerID string, authorID uuid.UUID) (bool, error) {
	viewer, err := uuid.Parse(viewerID)
	if err != nil || viewer == authorID {
		return false, nil
	}
	return s.userRepository.IsFollowing(ctx, viewer, authorID)
}

func (s *userService) followingAmong(ctx context.Context, viewerID string, users []*entities.User) (map[uuid.UUID]bool, error) {
	viewer, err := uuid.Parse(viewerID)
	if err != nil {
		return map[uuid.UUID]bool{}, nil
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return s.userRepository.FollowingAmong(ctx, viewer, ids)
}

func (s *userService) deleteObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		logging.Warn().Err(err).Str("object_key", key).Msg("failed to delete stored image")
	}
}
