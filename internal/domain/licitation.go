package domain

import "time"

// PublicUser is the creator identity embedded in licitation reads.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Licitation is a time-bounded bidding record. EndDate is strictly after
// StartDate at all times; CreatorID is set once at creation and never
// reassigned.
type Licitation struct {
	ID            string
	Title         string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	IsLowestPrice bool
	CreatorID     *string
	Creator       *PublicUser
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
