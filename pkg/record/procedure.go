package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// ProcedureTypeID is the fixed type identifier for procedure items.
var ProcedureTypeID = uuid.MustParse("df6d8c29-d5b1-49e0-8a26-10fe4c3b7a61")

func init() {
	Register(Type{ID: ProcedureTypeID, Name: "procedure", New: func() ItemData { return new(Procedure) }})
}

// Procedure records a medical procedure: what was performed, and
// optionally when, where on the body, and by whom.
type Procedure struct {
	When     *time.Time    // When the procedure was performed.
	Title    *CodableValue // What was performed (required).
	Location *CodableValue // Anatomic location.
	Provider *Person       // Primary provider.
}

// NewProcedure returns a Procedure titled with the given text.
func NewProcedure(title string) (*Procedure, error) {
	var p Procedure
	if err := p.SetTitle(title); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetTitle sets the procedure title from display text. Blank values are
// rejected and leave the current title in place.
func (p *Procedure) SetTitle(text string) error {
	cv, err := NewCodableValue(text)
	if err != nil {
		return &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	p.Title = cv
	return nil
}

// TypeID returns the procedure item type identifier.
func (p *Procedure) TypeID() uuid.UUID { return ProcedureTypeID }

// XMLName returns the root element name of a procedure fragment.
func (p *Procedure) XMLName() string { return "procedure" }

// ParseXML reads a procedure item.
func (p *Procedure) ParseXML(el *xmlio.Element) error {
	root, err := el.Locate("procedure")
	if err != nil {
		return err
	}
	var out Procedure
	out.When, err = xmlio.OptionalTime(root, "when", xmlio.TimeLayout)
	if err != nil {
		return err
	}
	out.Title, err = xmlio.Optional(root, "title", parseCodableValue)
	if err != nil {
		return err
	}
	out.Location, err = xmlio.Optional(root, "anatomic-location", parseCodableValue)
	if err != nil {
		return err
	}
	out.Provider, err = xmlio.Optional(root, "primary-provider", parsePerson)
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// WriteXML writes the procedure fragment: when, title,
// anatomic-location, primary-provider.
func (p *Procedure) WriteXML(w *xmlio.Writer) error {
	if p.Title == nil {
		return &xmlio.SerializationError{Field: "title"}
	}
	if err := xmlio.RequireText(p.Title.Text, "text"); err != nil {
		return err
	}
	w.Start("procedure")
	w.OptionalTime("when", p.When)
	if err := p.Title.WriteXML(w, "title"); err != nil {
		return err
	}
	if p.Location != nil {
		if err := p.Location.WriteXML(w, "anatomic-location"); err != nil {
			return err
		}
	}
	if p.Provider != nil {
		if err := p.Provider.WriteXML(w, "primary-provider"); err != nil {
			return err
		}
	}
	w.End()
	return w.Err()
}

func (p *Procedure) String() string {
	title := ""
	if p.Title != nil {
		title = p.Title.String()
	}
	if p.When == nil || title == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, p.When.Format(xmlio.DateLayout))
}
