package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/pyramid/internal/dataset"
)

type ExportData struct {
	Name   string           `json:"name"`
	Frames int              `json:"frames"`
	Groups []string         `json:"groups"`
	Data   *dataset.Dataset `json:"data"`
}

// WriteJSON writes the whole dataset, left values still negated.
func WriteJSON(w io.Writer, name string, ds *dataset.Dataset) error {
	data := ExportData{
		Name:   name,
		Frames: ds.Frames(),
		Groups: ds.Groups(),
		Data:   ds,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
