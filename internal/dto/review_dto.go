package dto

type CreateReviewRequest struct {
	RideID  string `json:"ride_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
