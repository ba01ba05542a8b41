package shape

import (
	"encoding/json"
	"fmt"
)

// List is an ordered shape collection that round-trips through JSON. Each
// element carries a "type" tag naming its Kind.
type List []Shape

func (l Line) MarshalJSON() ([]byte, error) {
	type plain Line
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindLine, plain(l)})
}

func (f Freeform) MarshalJSON() ([]byte, error) {
	type plain Freeform
	return json.Marshal(struct {
		Type Kind `json:"type"`
		plain
	}{KindFreeform, plain(f)})
}

// Decode reads one tagged shape.
func Decode(data []byte) (Shape, error) {
	var tag struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode shape: %w", err)
	}
	switch tag.Type {
	case KindLine:
		var l Line
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode line: %w", err)
		}
		return l, nil
	case KindFreeform:
		var f Freeform
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode freeform: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("decode shape: unknown type %q", tag.Type)
	}
}

func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(List, 0, len(raw))
	for _, r := range raw {
		s, err := Decode(r)
		if err != nil {
			return err
		}
		out = append(out, s)
	}
	*l = out
	return nil
}
