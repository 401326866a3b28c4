package model

// University is one catalog record. Records are immutable once loaded.
type University struct {
	ID         int     `json:"id" validate:"gt=0"`
	Name       string  `json:"name_ru" validate:"required"`
	City       string  `json:"city" validate:"required"`
	Type       string  `json:"type" validate:"required"`
	Language   string  `json:"language" validate:"required"`
	Programs   string  `json:"programs"`
	Mission    string  `json:"mission"`
	History    string  `json:"history"`
	Rating     float64 `json:"rating" validate:"gte=0"`
	TuitionKZT int64   `json:"tuition_kzt" validate:"gte=0"`
	PassScore  int     `json:"pass_score" validate:"gte=0"`
	Website    string  `json:"website"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Logo       string  `json:"logo,omitempty"`
}
