package model

import "fmt"

type Mode string

const (
	TEXT  Mode = "text"
	PHOTO Mode = "photo"
	VIDEO Mode = "video"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case TEXT, PHOTO, VIDEO:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q, expected one of text, photo, video", s)
}
