package cases

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func decodeDocumentList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeDocumentList(paths []string) (datatypes.JSON, error) {
	b, err := json.Marshal(paths)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
