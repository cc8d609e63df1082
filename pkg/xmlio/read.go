package xmlio

import (
	"strconv"
	"time"
)

// Wire formats for timestamps and calendar dates.
const (
	TimeLayout = time.RFC3339
	DateLayout = "2006-01-02"
)

// OptionalString reads the text of an optional child element. It returns
// nil when the child is absent. A present but empty element yields a
// pointer to "", which is distinct from absent.
func OptionalString(e *Element, name string) *string {
	c := e.Child(name)
	if c == nil {
		return nil
	}
	s := c.Text()
	return &s
}

// OptionalBool reads an optional boolean child element. Absent children
// return nil; present children with text that is not a boolean return a
// ValueError.
func OptionalBool(e *Element, name string) (*bool, error) {
	c := e.Child(name)
	if c == nil {
		return nil, nil
	}
	v, err := strconv.ParseBool(c.Text())
	if err != nil {
		return nil, &ValueError{Element: name, Value: c.Text(), Err: err}
	}
	return &v, nil
}

// OptionalInt reads an optional integer child element.
func OptionalInt(e *Element, name string) (*int, error) {
	c := e.Child(name)
	if c == nil {
		return nil, nil
	}
	v, err := strconv.Atoi(c.Text())
	if err != nil {
		return nil, &ValueError{Element: name, Value: c.Text(), Err: err}
	}
	return &v, nil
}

// OptionalFloat reads an optional floating-point child element.
func OptionalFloat(e *Element, name string) (*float64, error) {
	c := e.Child(name)
	if c == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(c.Text(), 64)
	if err != nil {
		return nil, &ValueError{Element: name, Value: c.Text(), Err: err}
	}
	return &v, nil
}

// OptionalTime reads an optional timestamp or date child element using
// the given layout, normally TimeLayout or DateLayout.
func OptionalTime(e *Element, name, layout string) (*time.Time, error) {
	c := e.Child(name)
	if c == nil {
		return nil, nil
	}
	v, err := time.Parse(layout, c.Text())
	if err != nil {
		return nil, &ValueError{Element: name, Value: c.Text(), Err: err}
	}
	return &v, nil
}

// Optional reads an optional composite child element using the given
// parse function. Absent children return nil without invoking parse;
// parse failures are returned unchanged.
func Optional[T any](e *Element, name string, parse func(*Element) (T, error)) (*T, error) {
	c := e.Child(name)
	if c == nil {
		return nil, nil
	}
	v, err := parse(c)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Float parses element text as a float, for elements whose body is a
// numeric value rather than a child.
func Float(e *Element) (float64, error) {
	if e == nil {
		return 0, ErrNilElement
	}
	v, err := strconv.ParseFloat(e.Text(), 64)
	if err != nil {
		return 0, &ValueError{Element: e.Name(), Value: e.Text(), Err: err}
	}
	return v, nil
}
