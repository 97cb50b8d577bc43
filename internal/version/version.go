// SPDX-License-Identifier: MPL-2.0

package version

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// FieldMajor is the manifest key for the major component.
	FieldMajor = "MAJOR"
	// FieldMinor is the manifest key for the minor component.
	FieldMinor = "MINOR"
	// FieldPatch is the manifest key for the patch component.
	FieldPatch = "PATCH"
	// FieldBuild is the manifest key for the build component.
	FieldBuild = "BUILD"

	numFields = 4
)

// ErrInvalidVersion is the sentinel error wrapped by ParseError.
var ErrInvalidVersion = errors.New("invalid version")

// fieldNames lists the manifest keys in ordering position.
var fieldNames = [numFields]string{FieldMajor, FieldMinor, FieldPatch, FieldBuild}

type (
	// Version is an immutable tuple of up to four non-negative integers
	// (major, minor, patch, build). Any component may be unset, which is
	// distinct from zero. The zero value has every component unset.
	Version struct {
		parts [numFields]int
		set   [numFields]bool
	}

	// ParseError is returned when a version source cannot be converted into
	// a Version. It wraps ErrInvalidVersion for errors.Is() compatibility.
	ParseError struct {
		// Input is the offending source rendered for display.
		Input string
		// Field names the component that failed, if known.
		Field string
		// Reason describes what was wrong.
		Reason string
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid version %s: %s: %s", e.Input, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid version %s: %s", e.Input, e.Reason)
}

// Unwrap returns ErrInvalidVersion so callers can use errors.Is.
func (e *ParseError) Unwrap() error { return ErrInvalidVersion }

// New builds a Version from positional components. Components beyond the
// ones given are unset; at most four may be passed.
func New(parts ...int) (Version, error) {
	var v Version
	if len(parts) > numFields {
		return v, &ParseError{Input: fmt.Sprint(parts), Reason: fmt.Sprintf("at most %d components allowed, got %d", numFields, len(parts))}
	}
	for i, p := range parts {
		if p < 0 {
			return Version{}, &ParseError{Input: fmt.Sprint(parts), Field: fieldNames[i], Reason: "must not be negative"}
		}
		v.parts[i] = p
		v.set[i] = true
	}
	return v, nil
}

// MustNew is like New but panics on error. Intended for constants and tests.
func MustNew(parts ...int) Version {
	v, err := New(parts...)
	if err != nil {
		panic(err)
	}
	return v
}

// FromMapping builds a Version from a manifest VERSION object. Missing or
// null keys leave the component unset. Values may be any Go integer type,
// an integral float64 (as produced by encoding/json) or a json.Number.
func FromMapping(m map[string]any) (Version, error) {
	var v Version
	for i, key := range fieldNames {
		raw, ok := m[key]
		if !ok || raw == nil {
			continue
		}
		n, err := toInt(raw)
		if err != nil {
			return Version{}, &ParseError{Input: fmt.Sprint(m), Field: key, Reason: err.Error()}
		}
		if n < 0 {
			return Version{}, &ParseError{Input: fmt.Sprint(m), Field: key, Reason: "must not be negative"}
		}
		v.parts[i] = n
		v.set[i] = true
	}
	return v, nil
}

// FromString parses a dot-separated version such as "1.2.3". Components not
// present in the string are unset.
func FromString(s string) (Version, error) {
	var v Version
	if s == "" {
		return v, &ParseError{Input: strconv.Quote(s), Reason: "empty string"}
	}
	fields := strings.Split(s, ".")
	if len(fields) > numFields {
		return v, &ParseError{Input: strconv.Quote(s), Reason: fmt.Sprintf("at most %d components allowed, got %d", numFields, len(fields))}
	}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Version{}, &ParseError{Input: strconv.Quote(s), Field: fieldNames[i], Reason: fmt.Sprintf("%q is not an integer", f)}
		}
		if n < 0 {
			return Version{}, &ParseError{Input: strconv.Quote(s), Field: fieldNames[i], Reason: "must not be negative"}
		}
		v.parts[i] = n
		v.set[i] = true
	}
	return v, nil
}

// Parse is the single entry point over the named constructors: it accepts a
// Version, a dotted string, a VERSION mapping, or a slice of ints.
func Parse(source any) (Version, error) {
	switch s := source.(type) {
	case Version:
		return s, nil
	case string:
		return FromString(s)
	case map[string]any:
		return FromMapping(s)
	case []int:
		return New(s...)
	default:
		return Version{}, &ParseError{Input: fmt.Sprintf("%v", source), Reason: fmt.Sprintf("cannot create a version from %T", source)}
	}
}

func toInt(raw any) (int, error) {
	switch n := raw.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", n.String())
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

// Major returns the major component and whether it is set.
func (v Version) Major() (int, bool) { return v.parts[0], v.set[0] }

// Minor returns the minor component and whether it is set.
func (v Version) Minor() (int, bool) { return v.parts[1], v.set[1] }

// Patch returns the patch component and whether it is set.
func (v Version) Patch() (int, bool) { return v.parts[2], v.set[2] }

// Build returns the build component and whether it is set.
func (v Version) Build() (int, bool) { return v.parts[3], v.set[3] }

// IsZero reports whether every component is unset.
func (v Version) IsZero() bool {
	return v.set == [numFields]bool{}
}

// ordinal maps an unset component to -1 so it sorts below zero.
func (v Version) ordinal(i int) int {
	if !v.set[i] {
		return -1
	}
	return v.parts[i]
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b. Comparison is lexicographic and an unset component sorts below
// any set one, including zero.
func Compare(a, b Version) int {
	for i := range numFields {
		if c := cmp.Compare(a.ordinal(i), b.ordinal(i)); c != 0 {
			return c
		}
	}
	return 0
}

// Compare is the method form of the package-level Compare.
func (v Version) Compare(other Version) int { return Compare(v, other) }

// Less reports whether v sorts strictly before other.
func (v Version) Less(other Version) bool { return Compare(v, other) < 0 }

// Equal reports strict component-wise equality; unset never equals zero.
func (v Version) Equal(other Version) bool {
	return v.set == other.set && v.parts == other.parts
}

// FuzzyEqual is like Equal but treats an unset component as equal to an
// explicit zero in the same position.
func (v Version) FuzzyEqual(other Version) bool {
	for i := range numFields {
		if v.ordinal(i) == other.ordinal(i) {
			continue
		}
		if (v.set[i] && v.parts[i] == 0 && !other.set[i]) || (other.set[i] && other.parts[i] == 0 && !v.set[i]) {
			continue
		}
		return false
	}
	return true
}

// String joins the set components with dots. Unset components are skipped
// wherever they appear, so a version with only major and patch set renders
// as "major.patch".
func (v Version) String() string {
	strs := make([]string, 0, numFields)
	for i := range numFields {
		if v.set[i] {
			strs = append(strs, strconv.Itoa(v.parts[i]))
		}
	}
	return strings.Join(strs, ".")
}

// GoString renders every component, showing unset ones as <nil>.
func (v Version) GoString() string {
	strs := make([]string, numFields)
	for i := range numFields {
		if v.set[i] {
			strs[i] = strconv.Itoa(v.parts[i])
		} else {
			strs[i] = "<nil>"
		}
	}
	return "Version(" + strings.Join(strs, ", ") + ")"
}

// UnmarshalJSON accepts either a VERSION object or a dotted string.
func (v *Version) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := FromString(s)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	case len(data) > 0 && data[0] == '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			return err
		}
		parsed, err := FromMapping(m)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	default:
		return &ParseError{Input: string(data), Reason: "expected an object or a dotted string"}
	}
}

// MarshalJSON writes the VERSION object form, omitting unset components.
func (v Version) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, numFields)
	for i, key := range fieldNames {
		if v.set[i] {
			m[key] = v.parts[i]
		}
	}
	return json.Marshal(m)
}
