package record

import "fmt"

// Visibility tags every record leaf.
type Visibility uint8

const (
	Constant Visibility = iota
	Public
	Private
)

// ParseVisibility parses "constant", "public" or "private".
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "constant":
		return Constant, nil
	case "public":
		return Public, nil
	case "private":
		return Private, nil
	}
	return 0, fmt.Errorf("unknown visibility %q", s)
}

func (v Visibility) String() string {
	switch v {
	case Constant:
		return "constant"
	case Public:
		return "public"
	case Private:
		return "private"
	}
	return fmt.Sprintf("Visibility(%d)", uint8(v))
}
