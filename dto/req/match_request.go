package req

type LikeRequest struct {
	LikedID string `json:"likedId" validate:"required,max=255"`
}
