package record

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// Key identifies a stored thing instance: the instance id plus the
// version stamp of the copy that was read. The stamp changes on every
// write.
type Key struct {
	ID           uuid.UUID
	VersionStamp uuid.UUID
}

// Thing wraps a typed payload with its instance identity. A thing that
// has never been stored has a nil Key.
type Thing struct {
	Key     *Key       // Instance identity, nil until stored.
	EffDate *time.Time // Effective date of the payload.
	Data    ItemData   // The typed payload (required when writing).
}

// NewThing wraps an item payload in a thing envelope.
func NewThing(data ItemData) *Thing {
	return &Thing{Data: data}
}

// TypeID returns the type identifier of the payload, or uuid.Nil when
// no payload is set.
func (t *Thing) TypeID() uuid.UUID {
	if t.Data == nil {
		return uuid.Nil
	}
	return t.Data.TypeID()
}

// ParseThing decodes a <thing> fragment: identity, type id, effective
// date, and the typed payload inside <data-xml>. A payload whose type
// id is not registered is preserved verbatim as RawData rather than
// rejected.
func ParseThing(data []byte) (*Thing, error) {
	el, err := xmlio.Parse(data)
	if err != nil {
		return nil, err
	}
	return ParseThingElement(el)
}

// ParseThingElement decodes a thing from an already parsed element.
func ParseThingElement(el *xmlio.Element) (*Thing, error) {
	root, err := el.Locate("thing")
	if err != nil {
		return nil, err
	}

	var t Thing
	if idEl := root.Child("thing-id"); idEl != nil {
		id, err := uuid.Parse(idEl.Text())
		if err != nil {
			return nil, &xmlio.ValueError{Element: "thing-id", Value: idEl.Text(), Err: err}
		}
		key := Key{ID: id}
		if vs, ok := idEl.Attr("version-stamp"); ok {
			stamp, err := uuid.Parse(vs)
			if err != nil {
				return nil, &xmlio.ValueError{Element: "version-stamp", Value: vs, Err: err}
			}
			key.VersionStamp = stamp
		}
		t.Key = &key
	}

	var typeID uuid.UUID
	var typeName string
	if typeEl := root.Child("type-id"); typeEl != nil {
		typeID, err = uuid.Parse(typeEl.Text())
		if err != nil {
			return nil, &xmlio.ValueError{Element: "type-id", Value: typeEl.Text(), Err: err}
		}
		typeName, _ = typeEl.Attr("name")
	}

	t.EffDate, err = xmlio.OptionalTime(root, "eff-date", xmlio.TimeLayout)
	if err != nil {
		return nil, err
	}

	dataEl, err := root.RequireChild("data-xml")
	if err != nil {
		return nil, err
	}
	if len(dataEl.Nodes) == 0 {
		return nil, &xmlio.StructureError{Element: "data-xml"}
	}
	payload := dataEl.Nodes[0]

	var item ItemData
	if typ, ok := TypeByID(typeID); ok {
		item = typ.New()
	} else if typeID == uuid.Nil {
		if typ, ok := TypeByName(payload.Name()); ok {
			item = typ.New()
		}
	}
	if item == nil {
		item = &RawData{Type: typeID, TypeName: typeName, Root: payload}
	} else if err := item.ParseXML(payload); err != nil {
		return nil, err
	}
	t.Data = item
	return &t, nil
}

// WriteXML writes the thing envelope: thing-id, type-id, eff-date,
// data-xml. The payload and its type id are mandatory; a key, when
// present, must carry an instance id.
func (t *Thing) WriteXML(w *xmlio.Writer) error {
	if t.Data == nil {
		return &xmlio.SerializationError{Field: "data-xml"}
	}
	typeID := t.Data.TypeID()
	if typeID == uuid.Nil {
		return &xmlio.SerializationError{Field: "type-id"}
	}
	if t.Key != nil && t.Key.ID == uuid.Nil {
		return &xmlio.SerializationError{Field: "thing-id"}
	}

	name := t.Data.XMLName()
	if typ, ok := TypeByID(typeID); ok {
		name = typ.Name
	}
	if rd, ok := t.Data.(*RawData); ok && rd.TypeName != "" {
		name = rd.TypeName
	}

	w.Start("thing")
	if t.Key != nil {
		var attrs []xml.Attr
		if t.Key.VersionStamp != uuid.Nil {
			attrs = append(attrs, xmlio.Attr("version-stamp", t.Key.VersionStamp.String()))
		}
		w.Start("thing-id", attrs...)
		w.CharData(t.Key.ID.String())
		w.End()
	}
	var typeAttrs []xml.Attr
	if name != "" {
		typeAttrs = append(typeAttrs, xmlio.Attr("name", name))
	}
	w.Start("type-id", typeAttrs...)
	w.CharData(typeID.String())
	w.End()
	w.OptionalTime("eff-date", t.EffDate)
	w.Start("data-xml")
	if err := t.Data.WriteXML(w); err != nil {
		return err
	}
	w.End()
	w.End()
	return w.Err()
}

// Marshal encodes the thing as a <thing> fragment. Nothing is returned
// on failure.
func (t *Thing) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	w := xmlio.NewWriter(&buf)
	if err := t.WriteXML(w); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String renders the payload for display.
func (t *Thing) String() string {
	if t.Data == nil {
		return ""
	}
	return t.Data.String()
}

// RawData preserves the payload of a thing whose type id is not
// registered. The subtree is kept verbatim, so the thing survives a
// parse/write round trip unchanged.
type RawData struct {
	Type     uuid.UUID      // Type id from the envelope.
	TypeName string         // name attribute from the envelope, if any.
	Root     *xmlio.Element // The payload fragment, verbatim.
}

// TypeID returns the type id carried by the envelope.
func (r *RawData) TypeID() uuid.UUID { return r.Type }

// XMLName returns the root element name of the preserved fragment.
func (r *RawData) XMLName() string { return r.Root.Name() }

// ParseXML stores the fragment verbatim.
func (r *RawData) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	r.Root = el
	return nil
}

// WriteXML re-emits the preserved fragment unchanged.
func (r *RawData) WriteXML(w *xmlio.Writer) error {
	if r.Root == nil {
		return &xmlio.SerializationError{Field: "data-xml"}
	}
	r.Root.Write(w)
	return w.Err()
}

func (r *RawData) String() string {
	name := r.TypeName
	if name == "" {
		name = r.Root.Name()
	}
	if name == "" {
		return "unrecognized item"
	}
	return fmt.Sprintf("unrecognized item (%s)", name)
}
