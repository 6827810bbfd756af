// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PetTag is an enum-constrained tag a user can attach to their profile.
type PetTag = string

// Allowed pet tags, matching the profile editor choices.
const (
	PetDog    PetTag = "dog"
	PetCat    PetTag = "cat"
	PetFish   PetTag = "fish"
	PetRabbit PetTag = "rabbit"
	PetBird   PetTag = "bird"
	PetStar   PetTag = "star"
	PetHeart  PetTag = "heart"
)

// AllowedPetTags lists every valid pet tag value.
var AllowedPetTags = []PetTag{PetDog, PetCat, PetFish, PetRabbit, PetBird, PetStar, PetHeart}

// User represents a registered account. The password hash is never serialized
// to clients. Follower and following relationships live in the follows table
// (see Follow); they are not denormalized onto the user row.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"unique;not null" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	Username   string         `gorm:"unique;not null" json:"userName"`
	FirstName  string         `gorm:"not null" json:"firstName"`
	LastName   string         `gorm:"not null" json:"lastName"`
	ProfilePic string         `json:"profilepic"`
	CoverPic   string         `json:"coverpic"`
	Bio        string         `json:"bio"`
	City       string         `json:"city"`
	Country    string         `json:"country"`
	IsOnline   bool           `gorm:"default:false" json:"isOnline"`
	Pets       []PetTag       `gorm:"serializer:json" json:"pets"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// FollowersCount is not persisted; computed at query time
	FollowersCount int `gorm:"->" json:"followers_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int `gorm:"->" json:"following_count"`
}

// UserSummary is the restricted author projection embedded in post and
// comment responses.
type UserSummary struct {
	ID         uint   `json:"id"`
	Username   string `json:"userName"`
	ProfilePic string `json:"profilepic"`
}

// Summary returns the restricted projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:         u.ID,
		Username:   u.Username,
		ProfilePic: u.ProfilePic,
	}
}
