package record

import (
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// WeightTypeID is the fixed type identifier for weight measurement
// items.
var WeightTypeID = uuid.MustParse("3d34d87e-7fc1-4153-800f-f56592cb0d17")

func init() {
	Register(Type{ID: WeightTypeID, Name: "weight", New: func() ItemData { return new(Weight) }})
}

// Weight is a single weight measurement.
type Weight struct {
	When  time.Time    // When the weight was measured (required).
	Value *WeightValue // The weight itself (required).
}

// NewWeight returns a Weight of the given kilograms measured at the
// given time.
func NewWeight(when time.Time, kilograms float64) (*Weight, error) {
	if when.IsZero() {
		return nil, &ValidationError{Field: "when", Reason: "must be set"}
	}
	v, err := NewWeightValue(kilograms)
	if err != nil {
		return nil, err
	}
	return &Weight{When: when, Value: v}, nil
}

// TypeID returns the weight item type identifier.
func (wt *Weight) TypeID() uuid.UUID { return WeightTypeID }

// XMLName returns the root element name of a weight fragment.
func (wt *Weight) XMLName() string { return "weight" }

// ParseXML reads a weight item.
func (wt *Weight) ParseXML(el *xmlio.Element) error {
	root, err := el.Locate("weight")
	if err != nil {
		return err
	}
	var out Weight
	when, err := xmlio.OptionalTime(root, "when", xmlio.TimeLayout)
	if err != nil {
		return err
	}
	if when != nil {
		out.When = *when
	}
	out.Value, err = xmlio.Optional(root, "value", parseWeightValue)
	if err != nil {
		return err
	}
	*wt = out
	return nil
}

// WriteXML writes the weight fragment: when, then value.
func (wt *Weight) WriteXML(w *xmlio.Writer) error {
	if err := xmlio.RequireTime(wt.When, "when"); err != nil {
		return err
	}
	if wt.Value == nil {
		return &xmlio.SerializationError{Field: "value"}
	}
	if err := xmlio.RequireSet(wt.Value.Kilograms, "kg"); err != nil {
		return err
	}
	w.Start("weight")
	w.Time("when", wt.When)
	if err := wt.Value.WriteXML(w, "value"); err != nil {
		return err
	}
	w.End()
	return w.Err()
}

func (wt *Weight) String() string {
	if wt.Value == nil {
		return ""
	}
	return wt.Value.String()
}

func parseWeightValue(el *xmlio.Element) (WeightValue, error) {
	var v WeightValue
	err := v.ParseXML(el)
	return v, err
}
