package record

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// ItemData is the contract shared by all typed item payloads. Each type
// owns a fixed type identifier and root element name, parses itself from
// a fragment (tolerating unknown elements), and writes itself back in
// its declared field order after checking mandatory fields.
type ItemData interface {
	// TypeID returns the fixed type identifier assigned by the service.
	TypeID() uuid.UUID

	// XMLName returns the root element name of the item's fragment.
	XMLName() string

	// ParseXML populates the item from el, which may be the fragment
	// root itself or an element wrapping it. On error the item is left
	// unchanged.
	ParseXML(el *xmlio.Element) error

	// WriteXML emits the item's fragment. It fails without writing when
	// a mandatory field is unset, naming the field.
	WriteXML(w *xmlio.Writer) error

	// String renders the item for display. It never fails; unset fields
	// yield a partial or empty string.
	String() string
}

// ParseItem decodes a bare item fragment, resolving the type from the
// fragment's root element name.
func ParseItem(data []byte) (ItemData, error) {
	el, err := xmlio.Parse(data)
	if err != nil {
		return nil, err
	}
	typ, ok := TypeByName(el.Name())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, el.Name())
	}
	item := typ.New()
	if err := item.ParseXML(el); err != nil {
		return nil, err
	}
	return item, nil
}

// MarshalItem encodes an item as a bare fragment. Nothing is returned
// on failure, so callers never see partial output.
func MarshalItem(item ItemData) ([]byte, error) {
	if item == nil {
		return nil, ErrNilItem
	}
	var buf bytes.Buffer
	w := xmlio.NewWriter(&buf)
	if err := item.WriteXML(w); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
