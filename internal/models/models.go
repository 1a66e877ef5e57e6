package models

import (
	"time"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	Email                  string    `json:"email" db:"email"`
	FirstName              string    `json:"firstName" db:"first_name"`
	LastName               string    `json:"lastName" db:"last_name"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

// FullName falls back to the username when no names are set.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

func (u User) Author() Author {
	return Author{
		UserID:    u.UserID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type Group struct {
	GroupID     string `json:"groupId" db:"group_id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

// Author is the public slice of a User attached to posts and comments.
type Author struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Post struct {
	PostID   string    `json:"postId" db:"post_id"`
	Text     string    `json:"text" db:"text"`
	PubDate  time.Time `json:"pubDate" db:"pub_date"`
	AuthorID string    `json:"authorId" db:"author_id"`
	GroupID  *string   `json:"groupId,omitempty" db:"group_id"`
	Image    string    `json:"image,omitempty" db:"image"`

	Author   Author `json:"author" db:"-"`
	Group    *Group `json:"group,omitempty" db:"-"`
	ImageURL string `json:"imageUrl,omitempty" db:"-"`
}

// Preview is the short form used in admin listings and logs.
func (p Post) Preview() string {
	runes := []rune(p.Text)
	if len(runes) > 15 {
		return string(runes[:15])
	}
	return p.Text
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	Created   time.Time `json:"created" db:"created"`

	Author Author `json:"author" db:"-"`
}

// Follow is a directed edge: User receives Author's posts in their feed.
type Follow struct {
	FollowID  string    `json:"followId" db:"follow_id"`
	UserID    string    `json:"userId" db:"user_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
