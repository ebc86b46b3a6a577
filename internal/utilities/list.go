package utilities

import (
	"encoding/json"
	"errors"
	"strings"
)

// FlexibleList accepts either a JSON array of strings or a single string.
// A single string is split on newlines unless the field asks for commas.
type FlexibleList struct {
	Items []string
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleList) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Items = nil
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		f.Items = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("expected a string or an array of strings")
	}
	f.Items = []string{s}
	return nil
}

// Lines normalises the list: single strings are split on newlines,
// entries are trimmed and empties dropped.
func (f FlexibleList) Lines() []string {
	return normalise(f.Items, "\n", false)
}

// Skills normalises the list as skill tags: single strings are split on
// commas and every entry is lowercased.
func (f FlexibleList) Skills() []string {
	return normalise(f.Items, ",", true)
}

func normalise(items []string, sep string, lower bool) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, sep) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if lower {
				part = strings.ToLower(part)
			}
			out = append(out, part)
		}
	}
	return out
}
