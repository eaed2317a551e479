package models

import (
	"time"
)

type User struct {
	ID      string    `json:"id" gorm:"primaryKey;type:uuid"`
	Address string    `json:"address" gorm:"type:text;uniqueIndex;not null"`
	Role    string    `json:"role" gorm:"type:text;not null"`
	Name    string    `json:"name" gorm:"type:text"`
	Email   *string   `json:"email,omitempty" gorm:"type:text"`
	CDate   time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate   time.Time `json:"mdate" gorm:"autoUpdateTime"`
}
