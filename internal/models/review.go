package models

import "time"

type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"` // username, read-only
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"` // stamped at creation, never updated
}
