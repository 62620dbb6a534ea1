package report

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/treelink/pkg/errors"
)

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	return nil
}

// ReadJSON decodes a report written by [WriteJSON].
func ReadJSON(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode report")
	}
	if rep.Loops == nil {
		rep.Loops = []Loop{}
	}
	return &rep, nil
}
