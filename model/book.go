package model

type Book struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Category  string  `json:"category"`
	Year      int     `json:"year"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}
