// Package models contains data structures for the application's domain models.
package models

import "time"

// MaxCommentTextLen bounds the text of a comment.
const MaxCommentTextLen = 500

// Comment represents a comment on a post. Comments are append-only: they are
// never edited or deleted. AuthorName and AuthorPic are denormalized snapshots
// taken from the authenticated user's stored record at comment time, so a
// later profile change does not rewrite comment history and clients cannot
// spoof display fields.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	AuthorName string    `gorm:"not null" json:"userName"`
	AuthorPic  string    `json:"profileImageUrl"`
	Text       string    `gorm:"not null" json:"text"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
