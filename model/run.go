package model

import "time"

const (
	//run statuses
	RUNNING string = "RUNNING"
	DONE           = "DONE"
	FAILED         = "FAILED"
)

type Run struct {
	Id         uint32 `storm:"id,increment"`
	Mode       Mode
	Template   string
	Status     string `storm:"index"`
	Error      string
	Total      int
	Sent       int
	NotSent    int
	CreatedAt  time.Time `storm:"index"`
	FinishedAt time.Time
}
