package models

import (
	"fmt"
	"time"
)

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`
	Post     Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"not null;index" json:"created"`
}

// String expects Author to be preloaded.
func (c *Comment) String() string {
	text := []rune(c.Text)
	if len(text) > 15 {
		text = text[:15]
	}
	return fmt.Sprintf("%s: \"%s...\"", c.Author.DisplayName(), string(text))
}
