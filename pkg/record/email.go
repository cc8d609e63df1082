package record

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// EmailTypeID is the fixed type identifier for email address items.
var EmailTypeID = uuid.MustParse("8ef44e10-9305-47ce-b315-a2d5e9c02f1a")

func init() {
	Register(Type{ID: EmailTypeID, Name: "email", New: func() ItemData { return new(Email) }})
}

// Email is an email address on file for the person, with an optional
// label and primary flag.
type Email struct {
	Description *string // Label, e.g. "Personal" or "Work".
	IsPrimary   *bool   // Whether this is the preferred address.
	Address     string  // The address itself (required, non-blank).
}

// NewEmail returns an Email for the given address.
func NewEmail(address string) (*Email, error) {
	var e Email
	if err := e.SetAddress(address); err != nil {
		return nil, err
	}
	return &e, nil
}

// SetAddress sets the email address. Blank values are rejected and
// leave the current address in place.
func (e *Email) SetAddress(v string) error {
	if err := validText("address", v); err != nil {
		return err
	}
	e.Address = v
	return nil
}

// TypeID returns the email item type identifier.
func (e *Email) TypeID() uuid.UUID { return EmailTypeID }

// XMLName returns the root element name of an email fragment.
func (e *Email) XMLName() string { return "email" }

// ParseXML reads an email item. Absent optional fields stay nil. An
// absent address stays empty; that gap surfaces only when a write is
// attempted.
func (e *Email) ParseXML(el *xmlio.Element) error {
	root, err := el.Locate("email")
	if err != nil {
		return err
	}
	var out Email
	out.Description = xmlio.OptionalString(root, "description")
	out.IsPrimary, err = xmlio.OptionalBool(root, "is-primary")
	if err != nil {
		return err
	}
	if v := xmlio.OptionalString(root, "address"); v != nil {
		out.Address = *v
	}
	*e = out
	return nil
}

// WriteXML writes the email fragment, always in the order description,
// is-primary, address.
func (e *Email) WriteXML(w *xmlio.Writer) error {
	if err := xmlio.RequireText(e.Address, "address"); err != nil {
		return err
	}
	w.Start("email")
	w.OptionalText("description", e.Description)
	w.OptionalBool("is-primary", e.IsPrimary)
	w.Text("address", e.Address)
	w.End()
	return w.Err()
}

func (e *Email) String() string {
	return e.Address
}
