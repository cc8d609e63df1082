package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// writeValue marshals a value under the given element name the way an
// item would embed it.
func writeValue(t *testing.T, v Value, name string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	w := xmlio.NewWriter(&buf)
	if err := v.WriteXML(w, name); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func TestCodableValueRoundTrip(t *testing.T) {
	doc := `<title><text>Appendectomy</text><code><value>80146002</value><family>wc</family><type>SNOMED</type></code></title>`
	var cv CodableValue
	if err := cv.ParseXML(mustElement(t, doc)); err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	if cv.Text != "Appendectomy" {
		t.Errorf("Text = %q", cv.Text)
	}
	if len(cv.Codes) != 1 || cv.Codes[0].Value != "80146002" {
		t.Fatalf("Codes = %+v", cv.Codes)
	}
	if cv.Codes[0].Family == nil || *cv.Codes[0].Family != "wc" {
		t.Errorf("Family = %v", cv.Codes[0].Family)
	}
	if cv.Codes[0].Version != nil {
		t.Errorf("Version = %v, want nil", cv.Codes[0].Version)
	}

	out, err := writeValue(t, &cv, "title")
	if err != nil {
		t.Fatalf("WriteXML() error = %v", err)
	}
	if out != doc {
		t.Errorf("round trip = %s\nwant        %s", out, doc)
	}
}

func TestCodableValueWriteWithoutText(t *testing.T) {
	var cv CodableValue
	_, err := writeValue(t, &cv, "title")
	var se *xmlio.SerializationError
	if !errors.As(err, &se) || se.Field != "text" {
		t.Errorf("error = %v, want SerializationError on text", err)
	}
}

func TestCodedValueSetValue(t *testing.T) {
	c, err := NewCodedValue("80146002")
	if err != nil {
		t.Fatalf("NewCodedValue() error = %v", err)
	}
	if err := c.SetValue(" "); err == nil {
		t.Error("SetValue(blank) succeeded")
	}
	if c.Value != "80146002" {
		t.Errorf("Value after failed set = %q", c.Value)
	}
}

func TestDisplayValue(t *testing.T) {
	doc := `<display units="lb" units-code="lb">180</display>`
	var d DisplayValue
	if err := d.ParseXML(mustElement(t, doc)); err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	if d.Value != 180 || d.Units != "lb" {
		t.Errorf("parsed = %+v", d)
	}
	if d.UnitsCode == nil || *d.UnitsCode != "lb" {
		t.Errorf("UnitsCode = %v", d.UnitsCode)
	}
	if d.String() != "180 lb" {
		t.Errorf("String() = %q", d.String())
	}

	out, err := writeValue(t, &d, "display")
	if err != nil {
		t.Fatalf("WriteXML() error = %v", err)
	}
	if out != doc {
		t.Errorf("round trip = %s, want %s", out, doc)
	}

	// Units are mandatory on write.
	d.Units = ""
	if _, err := writeValue(t, &d, "display"); err == nil {
		t.Error("write without units succeeded")
	}
}

func TestDisplayValueBadNumber(t *testing.T) {
	var d DisplayValue
	err := d.ParseXML(mustElement(t, `<display units="lb">heavy</display>`))
	var ve *xmlio.ValueError
	if !errors.As(err, &ve) {
		t.Errorf("error = %T, want *ValueError", err)
	}
}

func TestWeightValueSetKilograms(t *testing.T) {
	v, err := NewWeightValue(81.6)
	if err != nil {
		t.Fatalf("NewWeightValue() error = %v", err)
	}

	err = v.SetKilograms(-1)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("SetKilograms(-1) error = %T, want *ValidationError", err)
	}
	if ve.Field != "kg" {
		t.Errorf("Field = %q, want kg", ve.Field)
	}
	if v.Kilograms == nil || *v.Kilograms != 81.6 {
		t.Errorf("Kilograms after failed set = %v, want 81.6", v.Kilograms)
	}

	if _, err := NewWeightValue(-0.1); err == nil {
		t.Error("NewWeightValue(-0.1) succeeded")
	}
	if _, err := NewWeightValue(0); err != nil {
		t.Errorf("NewWeightValue(0) error = %v, zero is a legal weight", err)
	}
}

func TestWeightValueParseRejectsNegative(t *testing.T) {
	var v WeightValue
	err := v.ParseXML(mustElement(t, `<value><kg>-4</kg></value>`))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("error = %T (%v), want *ValidationError", err, err)
	}
}

func TestRangeBounds(t *testing.T) {
	r, err := NewRange(70, 80)
	if err != nil {
		t.Fatalf("NewRange() error = %v", err)
	}
	if r.String() != "70 - 80" {
		t.Errorf("String() = %q", r.String())
	}

	err = r.SetBounds(10, 5)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("SetBounds(10, 5) error = %T, want *ValidationError", err)
	}
	if *r.Minimum != 70 || *r.Maximum != 80 {
		t.Errorf("bounds after failed set = %v - %v", *r.Minimum, *r.Maximum)
	}

	// Degenerate interval is allowed.
	if err := r.SetBounds(75, 75); err != nil {
		t.Errorf("SetBounds(75, 75) error = %v", err)
	}
}

func TestRangeParseRejectsInverted(t *testing.T) {
	var r Range
	err := r.ParseXML(mustElement(t, `<range><minimum-value>9</minimum-value><maximum-value>2</maximum-value></range>`))
	if err == nil {
		t.Error("inverted range parsed without error")
	}
}

func TestRangeWriteRequiresBothBounds(t *testing.T) {
	r := Range{Minimum: new(float64)}
	_, err := writeValue(t, &r, "range")
	var se *xmlio.SerializationError
	if !errors.As(err, &se) || se.Field != "maximum-value" {
		t.Errorf("error = %v, want SerializationError on maximum-value", err)
	}
}

func TestZoneRoundTrip(t *testing.T) {
	doc := `<target-zone><name>Healthy band</name><range><minimum-value>70</minimum-value><maximum-value>80</maximum-value></range></target-zone>`
	var z Zone
	if err := z.ParseXML(mustElement(t, doc)); err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	out, err := writeValue(t, &z, "target-zone")
	if err != nil {
		t.Fatalf("WriteXML() error = %v", err)
	}
	if out != doc {
		t.Errorf("round trip = %s, want %s", out, doc)
	}
	if z.String() != "Healthy band (70 - 80)" {
		t.Errorf("String() = %q", z.String())
	}

	// A zone without its range cannot be written.
	z.Range = nil
	if _, err := writeValue(t, &z, "target-zone"); err == nil {
		t.Error("write without range succeeded")
	}
}

func TestPersonRoundTrip(t *testing.T) {
	doc := `<primary-provider><name>Dr Amira Shah</name><organization>Leeds General</organization><professional-training>MD</professional-training></primary-provider>`
	var p Person
	if err := p.ParseXML(mustElement(t, doc)); err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	if p.Name != "Dr Amira Shah" || p.ID != nil {
		t.Errorf("parsed = %+v", p)
	}
	out, err := writeValue(t, &p, "primary-provider")
	if err != nil {
		t.Fatalf("WriteXML() error = %v", err)
	}
	if out != doc {
		t.Errorf("round trip = %s, want %s", out, doc)
	}

	if _, err := NewPerson("  "); err == nil {
		t.Error("NewPerson(blank) succeeded")
	}
}

func TestOrganization(t *testing.T) {
	o, err := NewOrganization("City Lab")
	if err != nil {
		t.Fatalf("NewOrganization() error = %v", err)
	}
	site := "https://citylab.example"
	o.Website = &site

	out, err := writeValue(t, o, "ordered-by")
	if err != nil {
		t.Fatalf("WriteXML() error = %v", err)
	}
	want := `<ordered-by><name>City Lab</name><website>https://citylab.example</website></ordered-by>`
	if out != want {
		t.Errorf("output = %s, want %s", out, want)
	}

	var parsed Organization
	if err := parsed.ParseXML(mustElement(t, out)); err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	if parsed.Name != "City Lab" || parsed.Website == nil || *parsed.Website != site {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestMeasurementString(t *testing.T) {
	m := NewMeasurement(5.4)
	if m.String() != "5.4" {
		t.Errorf("bare String() = %q", m.String())
	}
	units, err := NewCodableValue("%")
	if err != nil {
		t.Fatalf("NewCodableValue() error = %v", err)
	}
	m.Units = units
	if m.String() != "5.4 %" {
		t.Errorf("with units String() = %q", m.String())
	}
	display := "five point four"
	m.Display = &display
	if m.String() != "five point four" {
		t.Errorf("with display String() = %q", m.String())
	}
}

func TestValuesOnNilElement(t *testing.T) {
	values := []Value{
		&CodedValue{}, &CodableValue{}, &DisplayValue{}, &WeightValue{},
		&Measurement{}, &Range{}, &Zone{}, &Person{}, &Organization{},
		&Address{}, &Phone{},
	}
	for _, v := range values {
		if err := v.ParseXML(nil); !errors.Is(err, xmlio.ErrNilElement) {
			t.Errorf("%T.ParseXML(nil) = %v, want ErrNilElement", v, err)
		}
	}
}
