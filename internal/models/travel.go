package models

import "time"

type Travel struct {
	ID                 string    `db:"id" json:"id"`
	CreatorID          string    `db:"creator_id" json:"creator_id"`
	DestinationCity    string    `db:"destination_city" json:"destination_city"`
	DestinationCountry string    `db:"destination_country" json:"destination_country"`
	StartDate          Date      `db:"start_date" json:"start_date"`
	EndDate            Date      `db:"end_date" json:"end_date"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

type TravelRequest struct {
	DestinationCity    string `json:"destination_city" binding:"max=120"`
	DestinationCountry string `json:"destination_country" binding:"max=120"`
	StartDate          *Date  `json:"start_date"`
	EndDate            *Date  `json:"end_date"`
}

// TravelPatch holds the columns a PATCH touches; nil leaves a column as is.
type TravelPatch struct {
	DestinationCity    *string
	DestinationCountry *string
	StartDate          *Date
	EndDate            *Date
}
