package tools

import (
	"bytes"
	"encoding/json"

	derrors "git.home.luguber.info/inful/docxbuilder/internal/errors"
)

// decodeArgs checks required arguments and decodes args into dst, whose
// fields already hold the defaults. Unknown names and type mismatches are
// rejected.
func decodeArgs(tool string, args map[string]any, params []Param, dst any) error {
	for _, p := range params {
		if !p.Required {
			continue
		}
		if v, ok := args[p.Name]; !ok || v == nil {
			return derrors.MissingArgument(tool, p.Name)
		}
	}
	if len(args) == 0 {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return derrors.InvalidArguments(tool, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return derrors.InvalidArguments(tool, err)
	}
	return nil
}
