package models

// Group is a category posts may belong to. Groups are managed outside the API.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:250;not null" json:"title"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (g *Group) String() string {
	return g.Title
}
