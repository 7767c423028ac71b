package styleprops

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
)

// Option descriptor keys. `id`/`label` win over the older `value`/`name`.
const (
	OptionKeyID    = "id"
	OptionKeyValue = "value"
	OptionKeyLabel = "label"
	OptionKeyName  = "name"
)

// SelectOption describes one choice of a select property, eg.
// `{"id": "100", "label": "Thin"}`. Any extra keys are kept untouched.
type SelectOption map[string]any

// NewSelectOption returns an option with the given identity and label. An
// empty label is left unset so label resolution falls back to the id.
func NewSelectOption(id any, label string) SelectOption {
	option := SelectOption{OptionKeyID: id}
	if label != "" {
		option[OptionKeyLabel] = label
	}
	return option
}

// Lookup returns the value stored under key when it is defined (present and
// not nil).
func (o SelectOption) Lookup(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// Identity resolves the option id: `id` when defined, otherwise `value`.
// Zero values such as 0 or "" count as defined.
func (o SelectOption) Identity() (any, bool) {
	if id, ok := o.Lookup(OptionKeyID); ok {
		return id, true
	}
	return o.Lookup(OptionKeyValue)
}

// Matches reports whether the option identity equals id. Options without an
// identity never match.
func (o SelectOption) Matches(id any) bool {
	identity, ok := o.Identity()
	if !ok {
		return false
	}
	return identityEqual(identity, id)
}

// displayLabel returns the first defined of `label` and `name`.
func (o SelectOption) displayLabel() (string, string, bool) {
	if label, ok := o.Lookup(OptionKeyLabel); ok {
		return stringify(label), OptionKeyLabel, true
	}
	if name, ok := o.Lookup(OptionKeyName); ok {
		return stringify(name), OptionKeyName, true
	}
	return "", "", false
}

// Clone returns a shallow copy of the option.
func (o SelectOption) Clone() SelectOption {
	if o == nil {
		return nil
	}
	out := make(SelectOption, len(o))
	for key, value := range o {
		out[key] = value
	}
	return out
}

// ToSelectOptions normalises the shapes an `options`/`list` attribute may hold
// into a slice of SelectOption: any slice or array whose entries are
// string-keyed maps (eg. []map[string]string), decoded JSON/YAML arrays
// included.
// Entries that are not objects are kept as empty options so positions stay
// stable; they have no identity and never match a lookup.
func ToSelectOptions(value any) []SelectOption {
	switch typed := value.(type) {
	case nil:
		return nil
	case []SelectOption:
		return typed
	case []map[string]any:
		out := make([]SelectOption, len(typed))
		for i, entry := range typed {
			out[i] = SelectOption(entry)
		}
		return out
	case []any:
		out := make([]SelectOption, len(typed))
		for i, entry := range typed {
			out[i] = toSelectOption(entry)
		}
		return out
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil
		}
		out := make([]SelectOption, rv.Len())
		for i := range rv.Len() {
			out[i] = toSelectOption(rv.Index(i).Interface())
		}
		return out
	}
}

func toSelectOption(value any) SelectOption {
	switch typed := value.(type) {
	case SelectOption:
		return typed
	case map[string]any:
		return SelectOption(typed)
	case map[any]any:
		out := make(SelectOption, len(typed))
		for key, entry := range typed {
			out[fmt.Sprint(key)] = entry
		}
		return out
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return SelectOption{}
		}
		out := make(SelectOption, rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	}
}

// identityEqual compares two option ids strictly, except that every numeric
// kind compares by value. Integers compare exactly, floats by float64 value.
// nil never equals anything.
func identityEqual(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	na, aok := asNumber(a)
	nb, bok := asNumber(b)
	if aok || bok {
		return aok && bok && na.equal(nb)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// number is a numeric id. Integers keep their sign and magnitude so ids
// beyond 2^53 stay distinct.
type number struct {
	integer bool
	neg     bool
	mag     uint64
	float   float64
	text    string
}

func signed(v int64) number {
	n := number{integer: true, neg: v < 0, float: float64(v)}
	if n.neg {
		n.mag = uint64(^v) + 1
	} else {
		n.mag = uint64(v)
	}
	return n
}

func unsigned(v uint64) number {
	return number{integer: true, mag: v, float: float64(v)}
}

func asNumber(value any) (number, bool) {
	switch v := value.(type) {
	case int:
		return signed(int64(v)), true
	case int8:
		return signed(int64(v)), true
	case int16:
		return signed(int64(v)), true
	case int32:
		return signed(int64(v)), true
	case int64:
		return signed(v), true
	case uint:
		return unsigned(uint64(v)), true
	case uint8:
		return unsigned(uint64(v)), true
	case uint16:
		return unsigned(uint64(v)), true
	case uint32:
		return unsigned(uint64(v)), true
	case uint64:
		return unsigned(v), true
	case float32:
		return number{float: float64(v), text: strconv.FormatFloat(float64(v), 'f', -1, 32)}, true
	case float64:
		return number{float: v}, true
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			n := signed(i)
			n.text = v.String()
			return n, true
		}
		if u, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			n := unsigned(u)
			n.text = v.String()
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return number{}, false
		}
		return number{float: f, text: v.String()}, true
	default:
		return number{}, false
	}
}

func (n number) equal(other number) bool {
	if n.integer && other.integer {
		return n.mag == other.mag && (n.neg == other.neg || n.mag == 0)
	}
	return n.float == other.float
}

func (n number) isZero() bool {
	if n.integer {
		return n.mag == 0
	}
	return n.float == 0
}

func (n number) String() string {
	switch {
	case n.text != "":
		return n.text
	case n.integer && n.neg:
		return "-" + strconv.FormatUint(n.mag, 10)
	case n.integer:
		return strconv.FormatUint(n.mag, 10)
	default:
		return strconv.FormatFloat(n.float, 'f', -1, 64)
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		if n, ok := asNumber(v); ok {
			return n.String()
		}
		return v.String()
	default:
		if n, ok := asNumber(v); ok {
			return n.String()
		}
		return fmt.Sprint(v)
	}
}
