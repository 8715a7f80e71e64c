package template

import (
	"fmt"
	"strings"

	"github.com/dilshat/wa-sender/model"
)

const (
	BLOCK_CUSTOM = "Custom text"

	// MaxBlocks is the number of blocks a user may add, placeholders excluded.
	MaxBlocks = 5
)

type Block struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type InvalidBlockErr struct {
	message string
}

func (e *InvalidBlockErr) Error() string {
	return e.message
}

func newInvalidBlockErr(format string, args ...interface{}) *InvalidBlockErr {
	return &InvalidBlockErr{message: fmt.Sprintf(format, args...)}
}

// Compose turns message blocks into a template string. Photo and video
// templates start with the mode's placeholder block.
func Compose(mode model.Mode, blocks []Block) (string, error) {
	if len(blocks) == 0 {
		return "", newInvalidBlockErr("Message has no blocks")
	}
	if len(blocks) > MaxBlocks {
		return "", newInvalidBlockErr("Too many blocks, at most %d are allowed", MaxBlocks)
	}

	parts := make([]string, 0, len(blocks)+1)
	switch mode {
	case model.PHOTO:
		parts = append(parts, wrap(TAG_PHOTO_DEFAULT))
	case model.VIDEO:
		parts = append(parts, wrap(TAG_VIDEO_DEFAULT))
	}

	for i, b := range blocks {
		if b.Type == BLOCK_CUSTOM {
			text := strings.Replace(b.Text, `\n`, "\n", -1)
			if strings.Contains(text, "{{") || strings.Contains(text, "}}") {
				return "", newInvalidBlockErr("Block %d: custom text must not contain {{ or }}", i+1)
			}
			if text == "" {
				return "", newInvalidBlockErr("Block %d: custom text is empty", i+1)
			}
			parts = append(parts, wrap(text))
			continue
		}
		if !allowed(mode, b.Type) {
			return "", newInvalidBlockErr("Block %d: type %q is not available for %s messages", i+1, b.Type, mode)
		}
		parts = append(parts, wrap(b.Type))
	}

	return strings.Join(parts, " "), nil
}

func allowed(mode model.Mode, blockType string) bool {
	if blockType == TAG_NAME {
		return true
	}
	switch mode {
	case model.TEXT:
		return blockType == TAG_TEXT
	case model.PHOTO:
		return blockType == TAG_PHOTO_CAPTION
	case model.VIDEO:
		return blockType == TAG_VIDEO_CAPTION
	}
	return false
}

func wrap(s string) string {
	return "{{" + s + "}}"
}
