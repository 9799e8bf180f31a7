package models

import "time"

type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"` // username, read-only
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"` // stamped at creation, never updated
}
