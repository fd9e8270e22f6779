package handlers

import (
	"time"

	"yatube/internal/models"
	"yatube/internal/services"
)

type PostResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Image   *string   `json:"image"`
	Group   *uint     `json:"group"`
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Post    uint      `json:"post"`
}

type GroupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type FollowResponse struct {
	User      string `json:"user"`
	Following string `json:"following"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PageResponse wraps a paginated list.
type PageResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func serializePost(p *models.Post, images *services.ImageStore) PostResponse {
	resp := PostResponse{
		ID:      p.ID,
		Author:  p.Author.Username,
		Text:    p.Text,
		PubDate: p.PubDate,
		Group:   p.GroupID,
	}
	if p.Image != nil && *p.Image != "" {
		url := images.URL(*p.Image)
		resp.Image = &url
	}
	return resp
}

func serializePosts(posts []models.Post, images *services.ImageStore) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, serializePost(&posts[i], images))
	}
	return out
}

func serializeComment(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Author:  c.Author.Username,
		Text:    c.Text,
		Created: c.Created,
		Post:    c.PostID,
	}
}

func serializeComments(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, serializeComment(&comments[i]))
	}
	return out
}

func serializeGroup(g *models.Group) GroupResponse {
	return GroupResponse{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func serializeFollow(f *models.Follow) FollowResponse {
	return FollowResponse{User: f.User.Username, Following: f.Following.Username}
}

func serializeUser(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
