package record

import (
	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// Person identifies a care provider: a display name plus whatever
// affiliation details the record carries.
type Person struct {
	Name                 string  // Display name (required, non-blank).
	Organization         *string // Employing organization.
	ProfessionalTraining *string // Credentials, e.g. "MD".
	ID                   *string // Identifier assigned by the record.
}

// NewPerson returns a Person with the given display name.
func NewPerson(name string) (*Person, error) {
	var p Person
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetName sets the display name. Blank values are rejected.
func (p *Person) SetName(v string) error {
	if err := validText("name", v); err != nil {
		return err
	}
	p.Name = v
	return nil
}

// ParseXML reads a person from el.
func (p *Person) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out Person
	if v := xmlio.OptionalString(el, "name"); v != nil {
		out.Name = *v
	}
	out.Organization = xmlio.OptionalString(el, "organization")
	out.ProfessionalTraining = xmlio.OptionalString(el, "professional-training")
	out.ID = xmlio.OptionalString(el, "id")
	*p = out
	return nil
}

// WriteXML writes the person under the given element name.
func (p *Person) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireText(p.Name, "name"); err != nil {
		return err
	}
	w.Start(name)
	w.Text("name", p.Name)
	w.OptionalText("organization", p.Organization)
	w.OptionalText("professional-training", p.ProfessionalTraining)
	w.OptionalText("id", p.ID)
	w.End()
	return w.Err()
}

func (p *Person) String() string {
	return p.Name
}

// Organization identifies a facility, such as the lab that ran a test.
type Organization struct {
	Name    string  // Facility name (required, non-blank).
	Website *string // Public website, when known.
}

// NewOrganization returns an Organization with the given name.
func NewOrganization(name string) (*Organization, error) {
	var o Organization
	if err := o.SetName(name); err != nil {
		return nil, err
	}
	return &o, nil
}

// SetName sets the facility name. Blank values are rejected.
func (o *Organization) SetName(v string) error {
	if err := validText("name", v); err != nil {
		return err
	}
	o.Name = v
	return nil
}

// ParseXML reads an organization from el.
func (o *Organization) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out Organization
	if v := xmlio.OptionalString(el, "name"); v != nil {
		out.Name = *v
	}
	out.Website = xmlio.OptionalString(el, "website")
	*o = out
	return nil
}

// WriteXML writes the organization under the given element name.
func (o *Organization) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireText(o.Name, "name"); err != nil {
		return err
	}
	w.Start(name)
	w.Text("name", o.Name)
	w.OptionalText("website", o.Website)
	w.End()
	return w.Err()
}

func (o *Organization) String() string {
	return o.Name
}

func parsePerson(el *xmlio.Element) (Person, error) {
	var v Person
	err := v.ParseXML(el)
	return v, err
}

func parseOrganization(el *xmlio.Element) (Organization, error) {
	var v Organization
	err := v.ParseXML(el)
	return v, err
}
