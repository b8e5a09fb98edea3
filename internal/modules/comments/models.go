package comments

import "time"

type Comment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;index:ix_comments_user_id" json:"user_id"`
	ProductID   uint      `gorm:"not null;index:ix_comments_product_id" json:"product_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
