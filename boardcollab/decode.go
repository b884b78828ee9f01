package boardcollab

import (
	"fmt"

	"oss.terrastruct.com/boardlogic/boardgraph"
)

// DecodeDrawingElement recovers the *boardgraph.Element a
// KindDrawingElement message carries, or nil if the sender cleared
// their live-draw preview.
func DecodeDrawingElement(msg Message) (*boardgraph.Element, error) {
	if len(msg.DrawingElement) == 0 {
		return nil, nil
	}
	elements, err := boardgraph.DeserializeElements(msg.DrawingElement)
	if err != nil {
		return nil, fmt.Errorf("boardcollab: decode drawing element: %w", err)
	}
	if len(elements) != 1 {
		return nil, fmt.Errorf("boardcollab: expected exactly one drawing element, got %d", len(elements))
	}
	return elements[0], nil
}
