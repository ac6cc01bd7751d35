// Package entity defines the domain models for the products feature.
package entity

import "time"

// Product is a catalog record owned by exactly one user.
type Product struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:2000"`
	Price       float64   `gorm:"not null"`
	Stock       int       `gorm:"not null;default:0"`
	OwnerID     string    `gorm:"size:36;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
