package model

// Sheet column names.
const (
	COL_SELECT        = "Select"
	COL_PHONE         = "Phone number"
	COL_NAME          = "Name"
	COL_TEXT          = "text"
	COL_PHOTO_CAPTION = "photo caption"
	COL_PHOTO_URL     = "photo url"
	COL_VIDEO_CAPTION = "video caption"
	COL_VIDEO_URL     = "video url"

	SELECTED = "TRUE"
)

// Row is one data row of the sheet. An empty string means the cell is absent.
type Row struct {
	// Index is the 1-based position of the row below the header.
	Index        int
	Select       string
	Phone        string
	Name         string
	Text         string
	PhotoCaption string
	PhotoUrl     string
	VideoCaption string
	VideoUrl     string
}

func (r Row) IsSelected() bool {
	return r.Select == SELECTED
}

// Set assigns a cell value by its column name.
func (r *Row) Set(column, value string) {
	switch column {
	case COL_SELECT:
		r.Select = value
	case COL_PHONE:
		r.Phone = value
	case COL_NAME:
		r.Name = value
	case COL_TEXT:
		r.Text = value
	case COL_PHOTO_CAPTION:
		r.PhotoCaption = value
	case COL_PHOTO_URL:
		r.PhotoUrl = value
	case COL_VIDEO_CAPTION:
		r.VideoCaption = value
	case COL_VIDEO_URL:
		r.VideoUrl = value
	}
}
