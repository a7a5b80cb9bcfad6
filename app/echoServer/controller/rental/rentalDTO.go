package rental

type CreateRentalReq struct {
	DurationDays int `json:"duration_days" validate:"required,oneof=14 30 90"`
}
