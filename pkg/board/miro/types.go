package miro

import "github.com/matzehuels/stickypack/pkg/pack"

type position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Origin string  `json:"origin,omitempty"`
}

type geometry struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

type stickyData struct {
	Content string `json:"content"`
	Shape   string `json:"shape,omitempty"`
}

type stickyStyle struct {
	FillColor string `json:"fillColor,omitempty"`
}

type stickyRequest struct {
	Data     stickyData  `json:"data"`
	Style    stickyStyle `json:"style"`
	Position position    `json:"position"`
	Geometry geometry    `json:"geometry"`
}

func newStickyRequest(spec pack.StickySpec) stickyRequest {
	w := spec.Width
	return stickyRequest{
		Data:     stickyData{Content: spec.Content, Shape: string(spec.Shape)},
		Style:    stickyStyle{FillColor: string(spec.FillColor)},
		Position: position{X: spec.X, Y: spec.Y, Origin: "center"},
		Geometry: geometry{Width: &w},
	}
}

// itemResponse is the subset of a board item the plugin reads.
type itemResponse struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Position *position `json:"position"`
	Geometry *geometry `json:"geometry"`
	Data     struct {
		Shape string `json:"shape"`
	} `json:"data"`
}

func (r itemResponse) toItem() pack.Item {
	it := pack.Item{ID: r.ID, Type: r.Type}
	if r.Position != nil {
		x, y := r.Position.X, r.Position.Y
		it.X, it.Y = &x, &y
	}
	if r.Geometry != nil {
		it.Width, it.Height = r.Geometry.Width, r.Geometry.Height
	}
	if s, err := pack.ParseShape(r.Data.Shape); err == nil {
		it.Shape = &s
	}
	return it
}

type tagRequest struct {
	Title string `json:"title"`
}

type tagResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type tagsResponse struct {
	Data   []tagResponse `json:"data"`
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
}
