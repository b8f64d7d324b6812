package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
)

// NewUserResponse renders u as seen by a viewer; subscribed tells whether
// that viewer follows u.
func NewUserResponse(u *entities.User, subscribed bool, s3 storage.AwsS3) domain.UserResponse {
	res := domain.UserResponse{
		Email:        u.Email,
		ID:           u.ID.String(),
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
	if u.Avatar != "" {
		link := s3.GetPublicLinkKey(u.Avatar)
		res.Avatar = &link
	}
	return res
}

func NewRecipeShortResponse(r *entities.Recipe, s3 storage.AwsS3) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Image:       s3.GetPublicLinkKey(r.Image),
		CookingTime: r.CookingTime,
	}
}
