package destructure

import "reflect"

var KIND_NAMES = [...]string{
	Sequence: "sequence",
	Record:   "record",
}

// Kind tells how a composite is indexed: by position or by field name.
type Kind int

const (
	Sequence Kind = iota + 1
	Record
)

func (k Kind) String() string {
	return KIND_NAMES[k]
}

// shape is the result of classifying a composite value.
type shape struct {
	kind  Kind
	fixed bool // arrays: fixed length, no removers
	value reflect.Value
}

// classify decides whether composite is a sequence (slice or array) or a
// record (string-keyed map or struct). Typed nil slices and maps classify
// as empty composites. Anything else, nil included, is a usage error.
func classify(composite any) (shape, error) {
	if composite == nil {
		return shape{}, ErrNilComposite
	}

	v := reflect.ValueOf(composite)

	switch v.Kind() {
	case reflect.Slice:
		return shape{kind: Sequence, value: v}, nil
	case reflect.Array:
		return shape{kind: Sequence, fixed: true, value: v}, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return shape{}, fmtRecordKeysNotStrings(composite)
		}
		return shape{kind: Record, value: v}, nil
	case reflect.Struct:
		return shape{kind: Record, value: v}, nil
	default:
		return shape{}, fmtValueNotComposite(composite)
	}
}
