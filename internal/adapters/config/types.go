package config

import "encoding/json"

// declaration is the on-disk (wire) shape printed by a configuration's
// probe mode: a single line of JSON with keys name?, watch?, ignore?,
// deps?. Each of watch/ignore/deps accepts either a bare string or a
// list of strings.
type declaration struct {
	Name   string       `json:"name,omitempty"`
	Watch  stringOrList `json:"watch,omitempty"`
	Ignore stringOrList `json:"ignore,omitempty"`
	Deps   stringOrList `json:"deps,omitempty"`
}

// stringOrList unmarshals either a bare JSON string or a JSON array of
// strings into a slice. A non-empty bare string becomes a one-element
// slice; an empty bare string becomes nil.
type stringOrList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *stringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
			return nil
		}
		*s = []string{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}
