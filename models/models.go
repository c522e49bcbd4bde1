package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Name     string
	Email    string `gorm:"unique"`
	Password string
	Posts    []Post `gorm:"foreignkey:UserID"`
}

type Profile struct {
	gorm.Model
	Bio    string
	UserID uint `gorm:"unique"`
}

type Post struct {
	gorm.Model
	Title     string
	Content   string
	Published bool `gorm:"default:false"`
	UserID    uint
}
