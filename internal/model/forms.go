package model

import "encoding/json"

// StringOrList absorbs form-style fields that arrive as a scalar when one
// value was submitted and as an array otherwise. It always decodes to an
// ordered list so nothing downstream has to branch on shape.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringOrList(many)
	return nil
}

func (s StringOrList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(s))
}
