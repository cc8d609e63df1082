package record

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// ContactTypeID is the fixed type identifier for contact information
// items.
var ContactTypeID = uuid.MustParse("56a0f3bf-79a6-4a32-9df4-2d5b0e6a3c54")

func init() {
	Register(Type{ID: ContactTypeID, Name: "contact", New: func() ItemData { return new(Contact) }})
}

// Address is a postal address within a contact item.
type Address struct {
	Description *string  // Label, e.g. "Home".
	IsPrimary   *bool    // Whether this is the preferred address.
	Street      []string // Street lines (at least one required).
	City        string   // Required, non-blank.
	State       *string  // State or region.
	PostalCode  string   // Required, non-blank.
	Country     *string  // Country name.
}

// AddStreet appends a street line. Blank lines are rejected.
func (a *Address) AddStreet(line string) error {
	if err := validText("street", line); err != nil {
		return err
	}
	a.Street = append(a.Street, line)
	return nil
}

// SetCity sets the city. Blank values are rejected.
func (a *Address) SetCity(v string) error {
	if err := validText("city", v); err != nil {
		return err
	}
	a.City = v
	return nil
}

// SetPostalCode sets the postal code. Blank values are rejected.
func (a *Address) SetPostalCode(v string) error {
	if err := validText("postcode", v); err != nil {
		return err
	}
	a.PostalCode = v
	return nil
}

// ParseXML reads an address from el.
func (a *Address) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out Address
	out.Description = xmlio.OptionalString(el, "description")
	primary, err := xmlio.OptionalBool(el, "is-primary")
	if err != nil {
		return err
	}
	out.IsPrimary = primary
	for _, line := range el.Children("street") {
		out.Street = append(out.Street, line.Text())
	}
	if v := xmlio.OptionalString(el, "city"); v != nil {
		out.City = *v
	}
	out.State = xmlio.OptionalString(el, "state")
	if v := xmlio.OptionalString(el, "postcode"); v != nil {
		out.PostalCode = *v
	}
	out.Country = xmlio.OptionalString(el, "country")
	*a = out
	return nil
}

// WriteXML writes the address under the given element name. At least
// one street line, the city, and the postal code are mandatory.
func (a *Address) WriteXML(w *xmlio.Writer, name string) error {
	if len(a.Street) == 0 {
		return &xmlio.SerializationError{Field: "street"}
	}
	if err := xmlio.RequireText(a.City, "city"); err != nil {
		return err
	}
	if err := xmlio.RequireText(a.PostalCode, "postcode"); err != nil {
		return err
	}
	w.Start(name)
	w.OptionalText("description", a.Description)
	w.OptionalBool("is-primary", a.IsPrimary)
	for _, line := range a.Street {
		w.Text("street", line)
	}
	w.Text("city", a.City)
	w.OptionalText("state", a.State)
	w.Text("postcode", a.PostalCode)
	w.OptionalText("country", a.Country)
	w.End()
	return w.Err()
}

func (a *Address) String() string {
	parts := make([]string, 0, 2)
	if len(a.Street) > 0 {
		parts = append(parts, a.Street[0])
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	return strings.Join(parts, ", ")
}

// Phone is a telephone number within a contact item.
type Phone struct {
	Description *string // Label, e.g. "Mobile".
	IsPrimary   *bool   // Whether this is the preferred number.
	Number      string  // The number itself (required, non-blank).
}

// SetNumber sets the telephone number. Blank values are rejected.
func (p *Phone) SetNumber(v string) error {
	if err := validText("number", v); err != nil {
		return err
	}
	p.Number = v
	return nil
}

// ParseXML reads a phone from el.
func (p *Phone) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out Phone
	out.Description = xmlio.OptionalString(el, "description")
	primary, err := xmlio.OptionalBool(el, "is-primary")
	if err != nil {
		return err
	}
	out.IsPrimary = primary
	if v := xmlio.OptionalString(el, "number"); v != nil {
		out.Number = *v
	}
	*p = out
	return nil
}

// WriteXML writes the phone under the given element name.
func (p *Phone) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireText(p.Number, "number"); err != nil {
		return err
	}
	w.Start(name)
	w.OptionalText("description", p.Description)
	w.OptionalBool("is-primary", p.IsPrimary)
	w.Text("number", p.Number)
	w.End()
	return w.Err()
}

func (p *Phone) String() string {
	return p.Number
}

// Contact is the person's contact information: any number of postal
// addresses, telephone numbers, and email address strings. A contact
// with none of them is valid.
type Contact struct {
	Addresses []Address // Postal addresses.
	Phones    []Phone   // Telephone numbers.
	Emails    []string  // Email addresses (each non-blank).
}

// AddEmail appends an email address string. Blank values are rejected.
func (c *Contact) AddEmail(v string) error {
	if err := validText("email", v); err != nil {
		return err
	}
	c.Emails = append(c.Emails, v)
	return nil
}

// TypeID returns the contact item type identifier.
func (c *Contact) TypeID() uuid.UUID { return ContactTypeID }

// XMLName returns the root element name of a contact fragment.
func (c *Contact) XMLName() string { return "contact" }

// ParseXML reads a contact item.
func (c *Contact) ParseXML(el *xmlio.Element) error {
	root, err := el.Locate("contact")
	if err != nil {
		return err
	}
	var out Contact
	for _, node := range root.Children("address") {
		var a Address
		if err := a.ParseXML(node); err != nil {
			return err
		}
		out.Addresses = append(out.Addresses, a)
	}
	for _, node := range root.Children("phone") {
		var p Phone
		if err := p.ParseXML(node); err != nil {
			return err
		}
		out.Phones = append(out.Phones, p)
	}
	for _, node := range root.Children("email") {
		out.Emails = append(out.Emails, node.Text())
	}
	*c = out
	return nil
}

// WriteXML writes the contact fragment: addresses, phones, then emails.
func (c *Contact) WriteXML(w *xmlio.Writer) error {
	for i := range c.Addresses {
		a := &c.Addresses[i]
		if len(a.Street) == 0 {
			return &xmlio.SerializationError{Field: "street"}
		}
		if err := xmlio.RequireText(a.City, "city"); err != nil {
			return err
		}
		if err := xmlio.RequireText(a.PostalCode, "postcode"); err != nil {
			return err
		}
	}
	for i := range c.Phones {
		if err := xmlio.RequireText(c.Phones[i].Number, "number"); err != nil {
			return err
		}
	}
	for _, v := range c.Emails {
		if err := validText("email", v); err != nil {
			return err
		}
	}
	w.Start("contact")
	for i := range c.Addresses {
		if err := c.Addresses[i].WriteXML(w, "address"); err != nil {
			return err
		}
	}
	for i := range c.Phones {
		if err := c.Phones[i].WriteXML(w, "phone"); err != nil {
			return err
		}
	}
	for _, v := range c.Emails {
		w.Text("email", v)
	}
	w.End()
	return w.Err()
}

func (c *Contact) String() string {
	var parts []string
	if len(c.Emails) > 0 {
		parts = append(parts, c.Emails[0])
	}
	if len(c.Phones) > 0 {
		parts = append(parts, c.Phones[0].Number)
	}
	if len(c.Addresses) > 0 {
		parts = append(parts, c.Addresses[0].String())
	}
	return strings.Join(parts, "; ")
}
