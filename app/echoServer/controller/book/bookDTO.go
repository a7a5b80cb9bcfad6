package book

type BookFieldsReq struct {
	Title     string  `json:"title" validate:"required"`
	Author    string  `json:"author" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	Year      int     `json:"year" validate:"gte=0"`
	Price     float64 `json:"price" validate:"required,gte=0"`
	Available *bool   `json:"available"`
}
