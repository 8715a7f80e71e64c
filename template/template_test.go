package template

import (
	"testing"

	"github.com/dilshat/wa-sender/model"
	"github.com/stretchr/testify/require"
)

var row = model.Row{
	Index:        1,
	Select:       "TRUE",
	Phone:        "+1",
	Name:         "Alice",
	Text:         "see you",
	PhotoCaption: "look",
	PhotoUrl:     "http://img",
	VideoCaption: "watch",
	VideoUrl:     "http://vid",
}

func TestExtract(t *testing.T) {
	require.Equal(t, []string{"Name", "Text", "Name"}, Extract("{{Name}} {{Text}} and {{Name}}"))
	require.Equal(t, []string{"a", "b"}, Extract("x{{a}}y{{b}}z"))
	require.Equal(t, []string{}, Extract("no tags here"))
	require.Equal(t, []string{}, Extract("{{broken} and {also}"))
	require.Equal(t, []string{"{a"}, Extract("{{{a}}"))
	require.Equal(t, []string{""}, Extract("{{}}"))
	require.Equal(t, []string{"line1\nline2"}, Extract("{{line1\nline2}}"))
}

func TestRender_Text(t *testing.T) {
	require.Equal(t, "Alice", Parse("{{Name}}").Render(row, model.TEXT))
	require.Equal(t, "Hi, Alicesee you", Parse("{{Hi, }} {{Name}} {{Text}}").Render(row, model.TEXT))
	// caption tags mean nothing in text mode
	require.Equal(t, "Photo caption", Parse("{{Photo caption}}").Render(row, model.TEXT))
}

func TestRender_Photo(t *testing.T) {
	tpl := Parse("{{Photo (default)}} {{Name}} {{: }} {{Photo caption}}")

	require.Equal(t, "Alice: look", tpl.Render(row, model.PHOTO))
	require.Equal(t, "Text", Parse("{{Text}}").Render(row, model.PHOTO))
}

func TestRender_Video(t *testing.T) {
	tpl := Parse("{{Video (default)}} {{Video caption}}")

	require.Equal(t, "watch", tpl.Render(row, model.VIDEO))
	require.Equal(t, "Photo (default)", Parse("{{Photo (default)}}").Render(row, model.VIDEO))
}

func TestRender_AbsentCells(t *testing.T) {
	empty := model.Row{Select: "TRUE"}

	require.Equal(t, "", Parse("{{Name}}{{Text}}").Render(empty, model.TEXT))
	require.Equal(t, "Dear ", Parse("{{Dear }}{{Name}}").Render(empty, model.TEXT))
}
