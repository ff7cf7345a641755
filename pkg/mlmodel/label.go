package mlmodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Label is a class label as it was trained: an integer code or a category name.
type Label struct {
	Code   int64
	Name   string
	IsName bool
}

func IntLabel(code int64) Label {
	return Label{Code: code}
}

func NameLabel(name string) Label {
	return Label{Name: name, IsName: true}
}

// Value returns the label as int64 or string.
func (l Label) Value() interface{} {
	if l.IsName {
		return l.Name
	}
	return l.Code
}

func (l Label) String() string {
	if l.IsName {
		return l.Name
	}
	return strconv.FormatInt(l.Code, 10)
}

func (l Label) MarshalJSON() ([]byte, error) {
	if l.IsName {
		return json.Marshal(l.Name)
	}
	return []byte(strconv.FormatInt(l.Code, 10)), nil
}

func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*l = NameLabel(name)
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("class label must be a number or a string, got %s", string(data))
	}
	if number != math.Trunc(number) {
		return fmt.Errorf("numeric class label %v is not an integer", number)
	}
	*l = IntLabel(int64(number))
	return nil
}
