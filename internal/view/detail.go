package view

import (
	"strconv"

	"github.com/stemsi/unicatalog/internal/model"
)

type DetailView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Type      string `json:"type"`
	Language  string `json:"language"`
	Programs  string `json:"programs"`
	Tuition   string `json:"tuition"`
	Rating    string `json:"rating"`
	PassScore string `json:"pass_score"`
	Website   string `json:"website"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Mission   string `json:"mission"`
	History   string `json:"history"`
	Logo      string `json:"logo"`
	CloseHref string `json:"close_href,omitempty"`
}

// RenderDetail describes every field of one university, read-only.
func RenderDetail(u model.University, closeHref string) DetailView {
	return DetailView{
		ID:        u.ID,
		Name:      u.Name,
		City:      u.City,
		Type:      u.Type,
		Language:  u.Language,
		Programs:  u.Programs,
		Tuition:   FormatTuition(u.TuitionKZT),
		Rating:    FormatRating(u.Rating),
		PassScore: strconv.Itoa(u.PassScore),
		Website:   u.Website,
		Phone:     u.Phone,
		Email:     u.Email,
		Mission:   u.Mission,
		History:   u.History,
		Logo:      logoOrDefault(u.Logo),
		CloseHref: closeHref,
	}
}
