package req

type RoomRequest struct {
	UserID string `json:"userId" validate:"required,max=255"`
}
