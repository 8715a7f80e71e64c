package model

import "time"

const (
	//delivery statuses
	SENT     string = "SENT"
	NOT_SENT        = "NOT_SENT"
	SKIPPED         = "SKIPPED"
)

type Delivery struct {
	Id         uint32 `storm:"id,increment"`
	RunId      uint32 `storm:"index"`
	Row        int
	Phone      string `storm:"index"`
	Status     string
	Reason     string
	ProviderId string
	CreatedAt  time.Time `storm:"index"`
}
