package domain

import "errors"

const (
	ShoppingListFilenameSuffix = "_shopping_list.txt"
	ShoppingListContentType    = "text/plain; charset=utf-8"
	ShoppingListLineFormat     = "• %s (%s) — %d"
)

var (
	MessageSuccessAddFavourite    = "recipe added to favourites"
	MessageSuccessRemoveFavourite = "recipe removed from favourites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"

	MessageFailedAddFavourite    = "failed to add recipe to favourites"
	MessageFailedRemoveFavourite = "failed to remove recipe from favourites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedDownloadCart    = "failed to download shopping list"

	ErrAlreadyFavourited = errors.New("recipe is already in favourites")
	ErrNotFavourited     = errors.New("recipe is not in favourites")
	ErrAlreadyInCart     = errors.New("recipe is already in shopping cart")
	ErrNotInCart         = errors.New("recipe is not in shopping cart")
)

// ShoppingListItem is one aggregated line of the exported list.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}
