package uubed

import (
	"fmt"
	"strings"

	"github.com/hupe1980/uubed/errs"
)

// Method selects an encoding scheme.
type Method uint8

const (
	// MethodQ64 is the lossless position-safe encoding of the raw bytes.
	MethodQ64 Method = iota + 1
	// MethodMq64 is the hierarchical multi-resolution Q64 encoding.
	MethodMq64
	// MethodSimHash is the random-hyperplane locality-sensitive hash.
	MethodSimHash
	// MethodTopK encodes the indices of the k largest values.
	MethodTopK
	// MethodZOrder is the 2-bit, 16-dimension Morton key.
	MethodZOrder
	// MethodZOrderExtended is the 4-bit, 8-dimension Morton key.
	MethodZOrderExtended
)

var methodNames = map[Method]string{
	MethodQ64:            "q64",
	MethodMq64:           "mq64",
	MethodSimHash:        "simhash",
	MethodTopK:           "topk",
	MethodZOrder:         "zorder",
	MethodZOrderExtended: "zorder-ext",
}

// Methods returns every supported method in declaration order.
func Methods() []Method {
	return []Method{MethodQ64, MethodMq64, MethodSimHash, MethodTopK, MethodZOrder, MethodZOrderExtended}
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// Reversible reports whether Decode can restore the original bytes.
func (m Method) Reversible() bool {
	return m == MethodQ64 || m == MethodMq64
}

// ParseMethod parses a method name, ignoring case.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return 0, errs.InvalidInputValues(fmt.Sprintf("unknown method %q", s))
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, errs.InvalidInputValues(fmt.Sprintf("unknown method %d", uint8(m)))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
