package xmlio

import (
	"errors"
	"testing"
	"time"
)

func mustParse(t *testing.T, doc string) *Element {
	t.Helper()
	e, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", doc, err)
	}
	return e
}

func TestOptionalString(t *testing.T) {
	e := mustParse(t, `<email><description>Personal</description><note></note></email>`)

	if got := OptionalString(e, "description"); got == nil || *got != "Personal" {
		t.Errorf("present field = %v, want Personal", got)
	}
	if got := OptionalString(e, "address"); got != nil {
		t.Errorf("absent field = %q, want nil", *got)
	}
	// Present but empty is not the same as absent.
	if got := OptionalString(e, "note"); got == nil || *got != "" {
		t.Errorf("empty field = %v, want pointer to empty string", got)
	}
}

func TestOptionalBool(t *testing.T) {
	e := mustParse(t, `<email><is-primary>true</is-primary><flag>maybe</flag></email>`)

	v, err := OptionalBool(e, "is-primary")
	if err != nil || v == nil || !*v {
		t.Errorf("is-primary = %v, %v; want true", v, err)
	}
	v, err = OptionalBool(e, "missing")
	if err != nil || v != nil {
		t.Errorf("missing = %v, %v; want nil, nil", v, err)
	}
	_, err = OptionalBool(e, "flag")
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("bad bool error = %T, want *ValueError", err)
	}
	if ve.Element != "flag" || ve.Value != "maybe" {
		t.Errorf("ValueError = %+v", ve)
	}
}

func TestOptionalNumbers(t *testing.T) {
	e := mustParse(t, `<reading><pulse>72</pulse><kg>81.6</kg><bad>12,5</bad></reading>`)

	i, err := OptionalInt(e, "pulse")
	if err != nil || i == nil || *i != 72 {
		t.Errorf("pulse = %v, %v; want 72", i, err)
	}
	f, err := OptionalFloat(e, "kg")
	if err != nil || f == nil || *f != 81.6 {
		t.Errorf("kg = %v, %v; want 81.6", f, err)
	}
	if _, err := OptionalInt(e, "kg"); err == nil {
		t.Error("OptionalInt on float text succeeded")
	}
	if _, err := OptionalFloat(e, "bad"); err == nil {
		t.Error("OptionalFloat on garbage succeeded")
	}
	if v, err := OptionalInt(e, "absent"); v != nil || err != nil {
		t.Errorf("absent int = %v, %v; want nil, nil", v, err)
	}
}

func TestOptionalTime(t *testing.T) {
	e := mustParse(t, `<weight><when>2024-05-14T09:30:00Z</when><start-date>2024-05-01</start-date><bad>tomorrow</bad></weight>`)

	ts, err := OptionalTime(e, "when", TimeLayout)
	if err != nil || ts == nil {
		t.Fatalf("when = %v, %v", ts, err)
	}
	want := time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("when = %v, want %v", ts, want)
	}

	d, err := OptionalTime(e, "start-date", DateLayout)
	if err != nil || d == nil || d.Format(DateLayout) != "2024-05-01" {
		t.Errorf("start-date = %v, %v", d, err)
	}

	if _, err := OptionalTime(e, "bad", TimeLayout); err == nil {
		t.Error("bad timestamp parsed without error")
	}
	if v, err := OptionalTime(e, "absent", TimeLayout); v != nil || err != nil {
		t.Errorf("absent time = %v, %v; want nil, nil", v, err)
	}
}

func TestOptionalComposite(t *testing.T) {
	type pair struct{ min, max float64 }
	parsePair := func(e *Element) (pair, error) {
		min, err := Float(e.Child("minimum-value"))
		if err != nil {
			return pair{}, err
		}
		max, err := Float(e.Child("maximum-value"))
		if err != nil {
			return pair{}, err
		}
		return pair{min, max}, nil
	}

	e := mustParse(t, `<zone><range><minimum-value>60</minimum-value><maximum-value>100</maximum-value></range></zone>`)

	got, err := Optional(e, "range", parsePair)
	if err != nil {
		t.Fatalf("Optional(range) error = %v", err)
	}
	if got == nil || got.min != 60 || got.max != 100 {
		t.Errorf("range = %+v", got)
	}

	missing, err := Optional(e, "target", parsePair)
	if missing != nil || err != nil {
		t.Errorf("absent composite = %v, %v; want nil, nil", missing, err)
	}
}
