package models

type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null;size:100"`
}

func (Category) TableName() string {
	return "categories"
}
