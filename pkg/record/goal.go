package record

import (
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// GoalTypeID is the fixed type identifier for care plan goal items.
var GoalTypeID = uuid.MustParse("c1ed35b1-78b4-4a93-bb11-e8af9bc6e9a2")

func init() {
	Register(Type{ID: GoalTypeID, Name: "goal", New: func() ItemData { return new(Goal) }})
}

// Goal is a care plan goal: a named target, optionally with a zone to
// reach, a schedule, and a status.
type Goal struct {
	Name        string        // What the goal is (required, non-blank).
	Description *string       // Longer free-text description.
	TargetZone  *Zone         // Interval the tracked value should reach.
	StartDate   *time.Time    // When work on the goal begins.
	TargetDate  *time.Time    // When the goal should be met.
	Status      *CodableValue // Goal status, e.g. "Active".
}

// NewGoal returns a Goal with the given name.
func NewGoal(name string) (*Goal, error) {
	var g Goal
	if err := g.SetName(name); err != nil {
		return nil, err
	}
	return &g, nil
}

// SetName sets the goal name. Blank values are rejected and leave the
// current name in place.
func (g *Goal) SetName(v string) error {
	if err := validText("name", v); err != nil {
		return err
	}
	g.Name = v
	return nil
}

// TypeID returns the goal item type identifier.
func (g *Goal) TypeID() uuid.UUID { return GoalTypeID }

// XMLName returns the root element name of a goal fragment.
func (g *Goal) XMLName() string { return "goal" }

// ParseXML reads a goal item. Dates are calendar dates, not timestamps.
func (g *Goal) ParseXML(el *xmlio.Element) error {
	root, err := el.Locate("goal")
	if err != nil {
		return err
	}
	var out Goal
	if v := xmlio.OptionalString(root, "name"); v != nil {
		out.Name = *v
	}
	out.Description = xmlio.OptionalString(root, "description")
	out.TargetZone, err = xmlio.Optional(root, "target-zone", parseZone)
	if err != nil {
		return err
	}
	out.StartDate, err = xmlio.OptionalTime(root, "start-date", xmlio.DateLayout)
	if err != nil {
		return err
	}
	out.TargetDate, err = xmlio.OptionalTime(root, "target-date", xmlio.DateLayout)
	if err != nil {
		return err
	}
	out.Status, err = xmlio.Optional(root, "status", parseCodableValue)
	if err != nil {
		return err
	}
	*g = out
	return nil
}

// WriteXML writes the goal fragment: name, description, target-zone,
// start-date, target-date, status.
func (g *Goal) WriteXML(w *xmlio.Writer) error {
	if err := xmlio.RequireText(g.Name, "name"); err != nil {
		return err
	}
	if g.TargetZone != nil {
		if err := xmlio.RequireSet(g.TargetZone.Range, "range"); err != nil {
			return err
		}
	}
	w.Start("goal")
	w.Text("name", g.Name)
	w.OptionalText("description", g.Description)
	if g.TargetZone != nil {
		if err := g.TargetZone.WriteXML(w, "target-zone"); err != nil {
			return err
		}
	}
	w.OptionalDate("start-date", g.StartDate)
	w.OptionalDate("target-date", g.TargetDate)
	if g.Status != nil {
		if err := g.Status.WriteXML(w, "status"); err != nil {
			return err
		}
	}
	w.End()
	return w.Err()
}

func (g *Goal) String() string {
	return g.Name
}
