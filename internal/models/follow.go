package models

import "fmt"

const (
	// Names of the storage constraints guarding the follow table.
	FollowUniqueConstraint = "unique_follows"
	FollowCheckConstraint  = "follower_and_author_can_not_be_equal"
)

// Follow records that User follows Following. The pair is unique and a user
// cannot follow themselves; both rules are enforced by the database.
type Follow struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	UserID      uint `gorm:"not null;uniqueIndex:unique_follows;check:follower_and_author_can_not_be_equal,user_id <> following_id" json:"user_id"`
	User        User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	FollowingID uint `gorm:"not null;uniqueIndex:unique_follows;index" json:"following_id"`
	Following   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"following"`
}

// String expects User and Following to be preloaded.
func (f *Follow) String() string {
	return fmt.Sprintf("%s подписан на %s", f.User.DisplayName(), f.Following.DisplayName())
}
