package models

import (
	"time"
)

type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"not null;index" json:"pub_date"` // set once at creation
	Image    *string   `gorm:"size:100" json:"image"`          // path relative to the media root
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id"` // Nullable, cleared when the group is deleted
	Group    *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
}

func (p *Post) String() string {
	return p.Text
}
