// Package model defines the database entities of the gm-panel.
package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff account of the panel.
//
// Protected marks accounts that the panel itself must never list, edit, ban
// or delete (the game owner account). Banned is a strict two-state flag; the
// column is an integer because the game backend shares the table and treats
// it as such.
type User struct {
	Id        int            `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email"`
	Password  string         `json:"-"` // bcrypt hash, never serialized
	Power     int            `json:"power" gorm:"default:0"`
	Banned    int            `json:"banned" gorm:"default:0"`
	Protected bool           `json:"-" gorm:"default:false"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index"`
}

// Record is an in-game event record owned by a user on one of the game
// servers. A record counts as "touched" when updated_at differs from
// created_at; the panel's record queries only ever return touched records.
type Record struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId    int       `json:"userId" gorm:"index;not null"`
	ServerId  int       `json:"serverId" gorm:"index;not null"`
	Event     string    `json:"event"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Server is one of the small fixed set of game servers, with the hex color
// the panel uses to render its records.
type Server struct {
	Id    int    `json:"id" gorm:"primaryKey"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
