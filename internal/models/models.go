package models

import (
	"time"
)

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	IsSuperuser  bool      `json:"isSuperuser" db:"is_superuser"`
	IsVerified   bool      `json:"isVerified" db:"is_verified"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	Caption   string    `json:"caption" db:"caption"`
	MediaURL  string    `json:"mediaUrl" db:"media_url"`
	MediaKind string    `json:"mediaKind" db:"media_kind"`
	FileName  string    `json:"fileName" db:"file_name"`
	Seq       int64     `json:"-" db:"seq"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
