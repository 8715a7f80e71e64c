package sheets

import (
	"fmt"

	"github.com/dilshat/wa-sender/model"
)

// ToRows converts raw sheet values into rows. The first row is the header;
// short rows are padded and cells past the header are dropped.
func ToRows(values [][]interface{}) ([]model.Row, error) {
	if len(values) < 2 {
		return nil, NewEmptyError(msgNoDataFound)
	}

	headers := make([]string, len(values[0]))
	seen := make(map[string]bool, len(headers))
	for i, h := range values[0] {
		headers[i] = cell(h)
		seen[headers[i]] = true
	}
	for _, required := range []string{model.COL_SELECT, model.COL_PHONE} {
		if !seen[required] {
			return nil, NewSchemaError(required)
		}
	}

	rows := make([]model.Row, 0, len(values)-1)
	for i, values := range values[1:] {
		row := model.Row{Index: i + 1}
		for col, header := range headers {
			if header == "" || col >= len(values) {
				continue
			}
			if v := cell(values[col]); v != "" {
				row.Set(header, v)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func cell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
