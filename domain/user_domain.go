package domain

import "errors"

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login successful"
	MessageSuccessLogout          = "logout successful"
	MessageSuccessGetUser         = "success get user"
	MessageSuccessGetUsers        = "success get users"
	MessageSuccessSetPassword     = "password changed successfully"
	MessageSuccessUpdateAvatar    = "avatar updated successfully"
	MessageSuccessDeleteAvatar    = "avatar deleted successfully"
	MessageSuccessSubscribe       = "subscribed successfully"
	MessageSuccessUnsubscribe     = "unsubscribed successfully"
	MessageSuccessGetSubscription = "success get subscriptions"

	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedLogout          = "failed to logout"
	MessageFailedGetUser         = "failed to get user"
	MessageFailedGetUsers        = "failed to get users"
	MessageFailedSetPassword     = "failed to change password"
	MessageFailedUpdateAvatar    = "failed to update avatar"
	MessageFailedDeleteAvatar    = "failed to delete avatar"
	MessageFailedSubscribe       = "failed to subscribe"
	MessageFailedUnsubscribe     = "failed to unsubscribe"
	MessageFailedGetSubscription = "failed to get subscriptions"

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrUsernameAlreadyExists = errors.New("user with this username already exists")
	ErrInvalidCredentials    = errors.New("unable to log in with provided credentials")
	ErrWrongPassword         = errors.New("current password is incorrect")
	ErrSamePassword          = errors.New("new password must differ from the current one")
	ErrNoAvatar              = errors.New("user has no avatar to delete")
	ErrInvalidImage          = errors.New("invalid image format")
	ErrSelfSubscription      = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed     = errors.New("subscription already exists")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,notblank,max=150"`
		LastName  string `json:"last_name" validate:"required,notblank,max=150"`
		Password  string `json:"password" validate:"required,max=150"`
	}

	RegisterResponse struct {
		Email     string `json:"email"`
		ID        string `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	SetPasswordRequest struct {
		NewPassword     string `json:"new_password" validate:"required,max=150"`
		CurrentPassword string `json:"current_password" validate:"required,max=150"`
	}

	AvatarRequest struct {
		Avatar string `json:"avatar" validate:"required"`
	}

	AvatarResponse struct {
		Avatar string `json:"avatar"`
	}

	UserResponse struct {
		Email        string  `json:"email"`
		ID           string  `json:"id"`
		Username     string  `json:"username"`
		FirstName    string  `json:"first_name"`
		LastName     string  `json:"last_name"`
		IsSubscribed bool    `json:"is_subscribed"`
		Avatar       *string `json:"avatar"`
	}

	SubscriptionResponse struct {
		UserResponse
		Recipes      []RecipeShortResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}

	// Principal is the authenticated caller resolved from the access token.
	Principal struct {
		UserID string
		Role   string
	}
)

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
