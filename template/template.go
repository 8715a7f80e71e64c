package template

import (
	"regexp"
	"strings"

	"github.com/dilshat/wa-sender/model"
)

// Tags understood by Render. Any other tag is emitted verbatim.
const (
	TAG_NAME          = "Name"
	TAG_TEXT          = "Text"
	TAG_PHOTO_CAPTION = "Photo caption"
	TAG_VIDEO_CAPTION = "Video caption"
	TAG_PHOTO_DEFAULT = "Photo (default)"
	TAG_VIDEO_DEFAULT = "Video (default)"
)

var tagRx = regexp.MustCompile(`(?s){{(.*?)}}`)

// Extract returns the tags of s in order of appearance, duplicates included.
func Extract(s string) []string {
	matches := tagRx.FindAllStringSubmatch(s, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

type Template struct {
	tags []string
}

func Parse(s string) Template {
	return Template{tags: Extract(s)}
}

// Render builds the message body (text mode) or caption (photo, video) for row.
func (t Template) Render(row model.Row, mode model.Mode) string {
	var sb strings.Builder
	for _, tag := range t.tags {
		sb.WriteString(resolve(tag, row, mode))
	}
	return sb.String()
}

func resolve(tag string, row model.Row, mode model.Mode) string {
	if tag == TAG_NAME {
		return row.Name
	}

	switch mode {
	case model.TEXT:
		if tag == TAG_TEXT {
			return row.Text
		}
	case model.PHOTO:
		switch tag {
		case TAG_PHOTO_DEFAULT:
			return ""
		case TAG_PHOTO_CAPTION:
			return row.PhotoCaption
		}
	case model.VIDEO:
		switch tag {
		case TAG_VIDEO_DEFAULT:
			return ""
		case TAG_VIDEO_CAPTION:
			return row.VideoCaption
		}
	}

	return tag
}
