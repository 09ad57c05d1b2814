package entity

// Match is a swipe-right from LikerID to LikedID. A chat between two users
// is allowed when a match exists in either direction.
type Match struct {
	BaseEntity
	LikerID string `json:"likerId" gorm:"column:liker_id;type:varchar(255);not null;uniqueIndex:idx_match_pair,priority:1"`
	LikedID string `json:"likedId" gorm:"column:liked_id;type:varchar(255);not null;uniqueIndex:idx_match_pair,priority:2;index"`
}

func (Match) TableName() string {
	return "matches"
}
