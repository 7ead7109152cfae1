package field

import (
	"fmt"
	"time"
)

// ValueSerializer converts Go values into driver-level values before they
// are bound as statement parameters. It decides, in particular, how
// time.Time is stored.
type ValueSerializer interface {
	// Serialize returns the driver value for v under type t.
	Serialize(v any, t Type) (any, error)
}

// UnixMilliSerializer stores time values as integer milliseconds since
// the Unix epoch. It is the default serializer.
type UnixMilliSerializer struct{}

// Serialize implements ValueSerializer.
func (UnixMilliSerializer) Serialize(v any, t Type) (any, error) {
	if t != TypeTime {
		return v, nil
	}
	switch tv := v.(type) {
	case time.Time:
		return tv.UnixMilli(), nil
	case *time.Time:
		if tv == nil {
			return nil, nil
		}
		return tv.UnixMilli(), nil
	case int64:
		return tv, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("field: cannot serialize %T as time", v)
	}
}

// TextTimeSerializer stores time values as RFC 3339 text.
type TextTimeSerializer struct{}

// Serialize implements ValueSerializer.
func (TextTimeSerializer) Serialize(v any, t Type) (any, error) {
	if t != TypeTime {
		return v, nil
	}
	switch tv := v.(type) {
	case time.Time:
		return tv.Format(time.RFC3339Nano), nil
	case *time.Time:
		if tv == nil {
			return nil, nil
		}
		return tv.Format(time.RFC3339Nano), nil
	case string:
		return tv, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("field: cannot serialize %T as time", v)
	}
}
