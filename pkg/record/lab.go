package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// LabResultTypeID is the fixed type identifier for lab test result
// items.
var LabResultTypeID = uuid.MustParse("5800eab5-a8c2-482a-a4d6-f1db25ae08c3")

func init() {
	Register(Type{ID: LabResultTypeID, Name: "lab-result", New: func() ItemData { return new(LabResult) }})
}

// LabResult is a single lab test result: the test that was run and
// whatever outcome details the lab reported.
type LabResult struct {
	When      *time.Time    // When the sample was taken.
	TestName  *CodableValue // The test that was run (required).
	Value     *Measurement  // Measured outcome.
	Reference *Range        // Reference range for the outcome.
	Status    *CodableValue // Result status, e.g. "Final".
	OrderedBy *Organization // Facility that ordered the test.
	Note      *string       // Free-text remarks from the lab.
}

// NewLabResult returns a LabResult for the given test name.
func NewLabResult(testName string) (*LabResult, error) {
	var l LabResult
	if err := l.SetTestName(testName); err != nil {
		return nil, err
	}
	return &l, nil
}

// SetTestName sets the test name from display text. Blank values are
// rejected and leave the current name in place.
func (l *LabResult) SetTestName(text string) error {
	cv, err := NewCodableValue(text)
	if err != nil {
		return &ValidationError{Field: "test-name", Reason: "must not be blank"}
	}
	l.TestName = cv
	return nil
}

// TypeID returns the lab result item type identifier.
func (l *LabResult) TypeID() uuid.UUID { return LabResultTypeID }

// XMLName returns the root element name of a lab result fragment.
func (l *LabResult) XMLName() string { return "lab-result" }

// ParseXML reads a lab result item.
func (l *LabResult) ParseXML(el *xmlio.Element) error {
	root, err := el.Locate("lab-result")
	if err != nil {
		return err
	}
	var out LabResult
	out.When, err = xmlio.OptionalTime(root, "when", xmlio.TimeLayout)
	if err != nil {
		return err
	}
	out.TestName, err = xmlio.Optional(root, "test-name", parseCodableValue)
	if err != nil {
		return err
	}
	out.Value, err = xmlio.Optional(root, "value", parseMeasurement)
	if err != nil {
		return err
	}
	out.Reference, err = xmlio.Optional(root, "reference-range", parseRange)
	if err != nil {
		return err
	}
	out.Status, err = xmlio.Optional(root, "status", parseCodableValue)
	if err != nil {
		return err
	}
	out.OrderedBy, err = xmlio.Optional(root, "ordered-by", parseOrganization)
	if err != nil {
		return err
	}
	out.Note = xmlio.OptionalString(root, "note")
	*l = out
	return nil
}

// WriteXML writes the lab result fragment: when, test-name, value,
// reference-range, status, ordered-by, note.
func (l *LabResult) WriteXML(w *xmlio.Writer) error {
	if l.TestName == nil {
		return &xmlio.SerializationError{Field: "test-name"}
	}
	if err := xmlio.RequireText(l.TestName.Text, "text"); err != nil {
		return err
	}
	w.Start("lab-result")
	w.OptionalTime("when", l.When)
	if err := l.TestName.WriteXML(w, "test-name"); err != nil {
		return err
	}
	if l.Value != nil {
		if err := l.Value.WriteXML(w, "value"); err != nil {
			return err
		}
	}
	if l.Reference != nil {
		if err := l.Reference.WriteXML(w, "reference-range"); err != nil {
			return err
		}
	}
	if l.Status != nil {
		if err := l.Status.WriteXML(w, "status"); err != nil {
			return err
		}
	}
	if l.OrderedBy != nil {
		if err := l.OrderedBy.WriteXML(w, "ordered-by"); err != nil {
			return err
		}
	}
	w.OptionalText("note", l.Note)
	w.End()
	return w.Err()
}

func (l *LabResult) String() string {
	name := ""
	if l.TestName != nil {
		name = l.TestName.String()
	}
	if l.Value == nil || name == "" {
		return name
	}
	return fmt.Sprintf("%s: %s", name, l.Value.String())
}
