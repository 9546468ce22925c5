// # internal/parser/notebook.go
package parser

import "encoding/json"

type notebookDoc struct {
	Cells []notebookCell `json:"cells"`
}

type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

// concatenateNotebookCells parses a .ipynb document and joins every code
// cell's source with blank-line separators. Cell source may be encoded as
// either a single string or a list of line strings; both forms are
// supported.
func concatenateNotebookCells(raw []byte) ([]byte, error) {
	var doc notebookDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	var out []byte
	for _, cell := range doc.Cells {
		if cell.CellType != "code" {
			continue
		}
		text, err := cellText(cell.Source)
		if err != nil {
			return nil, err
		}
		out = append(out, text...)
		out = append(out, '\n', '\n')
	}
	return out, nil
}

func cellText(raw json.RawMessage) (string, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}
	var asLines []string
	if err := json.Unmarshal(raw, &asLines); err != nil {
		return "", err
	}
	joined := ""
	for _, line := range asLines {
		joined += line
	}
	return joined, nil
}
