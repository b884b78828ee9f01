package boardgraph

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"oss.terrastruct.com/boardlogic/lib/geo"
)

// elementDoc is the persisted element shape (§6): Element plus its
// exchange-format connection fields. Kept as a separate type from
// Element so JSON field names stay stable independent of internal
// struct layout.
type elementDoc struct {
	ID             string         `json:"id"`
	Kind           Kind           `json:"kind"`
	Z              int            `json:"z"`
	Rotation       float64        `json:"rotation"`
	StrokeColor    string         `json:"strokeColor"`
	StrokeWidth    float64        `json:"strokeWidth"`
	Opacity        float64        `json:"opacity"`
	Hidden         bool           `json:"hidden"`
	Locked         bool           `json:"locked"`
	FrameID        string         `json:"frameId,omitempty"`
	GroupID        string         `json:"groupId,omitempty"`
	X              float64        `json:"x"`
	Y              float64        `json:"y"`
	W              float64        `json:"width"`
	H              float64        `json:"height"`
	Points         []point        `json:"points,omitempty"`
	FontSize       float64        `json:"fontSize,omitempty"`
	FontFamily     string         `json:"fontFamily,omitempty"`
	LineHeight     float64        `json:"lineHeight,omitempty"`
	LetterSpacing  float64        `json:"letterSpacing,omitempty"`
	TextAlign      TextAlign      `json:"textAlign,omitempty"`
	IsTextBox      bool           `json:"isTextBox,omitempty"`
	Text           string         `json:"text,omitempty"`
	ConnectorStyle ConnectorStyle `json:"connectorStyle,omitempty"`
	ElbowRoute     ElbowRoute     `json:"elbowRoute,omitempty"`
	StartConnection *Connection   `json:"startConnection,omitempty"`
	EndConnection   *Connection   `json:"endConnection,omitempty"`
	IsClosed        bool          `json:"isClosed,omitempty"`
	FillColor       string        `json:"fillColor,omitempty"`
	FillPattern     string        `json:"fillPattern,omitempty"`
	Timestamp       int64         `json:"timestamp,omitempty"`
	TileType        string        `json:"tileType,omitempty"`
}

type point struct{ X, Y float64 }

// SerializeElements encodes a slice of elements to JSON, the exchange
// format the Store port persists (§6).
func SerializeElements(elements []*Element) ([]byte, error) {
	docs := make([]elementDoc, len(elements))
	for i, e := range elements {
		docs[i] = toDoc(e)
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, xerrors.Errorf("serialize elements: %w", err)
	}
	return b, nil
}

// DeserializeElements decodes the JSON produced by SerializeElements.
func DeserializeElements(b []byte) ([]*Element, error) {
	var docs []elementDoc
	if err := json.Unmarshal(b, &docs); err != nil {
		return nil, xerrors.Errorf("deserialize elements: %w", err)
	}
	out := make([]*Element, len(docs))
	for i, d := range docs {
		out[i] = fromDoc(d)
	}
	return out, nil
}

func toDoc(e *Element) elementDoc {
	d := elementDoc{
		ID: e.ID, Kind: e.Kind, Z: e.Z, Rotation: e.Rotation,
		StrokeColor: e.StrokeColor, StrokeWidth: e.StrokeWidth, Opacity: e.Opacity,
		Hidden: e.Hidden, Locked: e.Locked, FrameID: e.FrameID, GroupID: e.GroupID,
		X: e.X, Y: e.Y, W: e.W, H: e.H,
		FontSize: e.FontSize, FontFamily: e.FontFamily, LineHeight: e.LineHeight,
		LetterSpacing: e.LetterSpacing, TextAlign: e.TextAlign, IsTextBox: e.IsTextBox, Text: e.Text,
		ConnectorStyle: e.ConnectorStyle, ElbowRoute: e.ElbowRoute,
		StartConnection: e.StartConnection, EndConnection: e.EndConnection,
		IsClosed: e.IsClosed, FillColor: e.FillColor, FillPattern: e.FillPattern,
		Timestamp: e.Timestamp, TileType: e.TileType,
	}
	for _, p := range e.Points {
		d.Points = append(d.Points, point{p.X, p.Y})
	}
	return d
}

func fromDoc(d elementDoc) *Element {
	e := &Element{
		ID: d.ID, Kind: d.Kind, Z: d.Z, Rotation: d.Rotation,
		StrokeColor: d.StrokeColor, StrokeWidth: d.StrokeWidth, Opacity: d.Opacity,
		Hidden: d.Hidden, Locked: d.Locked, FrameID: d.FrameID, GroupID: d.GroupID,
		X: d.X, Y: d.Y, W: d.W, H: d.H,
		FontSize: d.FontSize, FontFamily: d.FontFamily, LineHeight: d.LineHeight,
		LetterSpacing: d.LetterSpacing, TextAlign: d.TextAlign, IsTextBox: d.IsTextBox, Text: d.Text,
		ConnectorStyle: d.ConnectorStyle, ElbowRoute: d.ElbowRoute,
		StartConnection: d.StartConnection, EndConnection: d.EndConnection,
		IsClosed: d.IsClosed, FillColor: d.FillColor, FillPattern: d.FillPattern,
		Timestamp: d.Timestamp, TileType: d.TileType,
	}
	for _, p := range d.Points {
		e.Points = append(e.Points, geo.Point{X: p.X, Y: p.Y})
	}
	return e
}
