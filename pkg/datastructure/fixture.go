package datastructure

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/lintang-b-s/ecorouting/pkg"
	"github.com/lintang-b-s/ecorouting/pkg/geo"
)

// GraphFixture json description of a small graph. Pillar geometry is a 3-D encoded polyline
// (lat, lon, elevation in meter, precision 1e5).
type GraphFixture struct {
	Vertices         []VertexFixture          `json:"vertices"`
	Edges            []EdgeFixture            `json:"edges"`
	TurnRestrictions []TurnRestrictionFixture `json:"turn_restrictions"`
	Orientation      bool                     `json:"orientation"`
}

type VertexFixture struct {
	Lat float64  `json:"lat"`
	Lon float64  `json:"lon"`
	Ele *float64 `json:"ele,omitempty"`
}

type EdgeFixture struct {
	From         Index   `json:"from"`
	To           Index   `json:"to"`
	Speed        float64 `json:"speed"`
	ReverseSpeed float64 `json:"reverse_speed"`
	RoadClass    string  `json:"road_class"`
	Pillars      string  `json:"pillars,omitempty"`
}

type TurnRestrictionFixture struct {
	Profile string `json:"profile"`
	InEdge  Index  `json:"in_edge"`
	ViaNode Index  `json:"via_node"`
	OutEdge Index  `json:"out_edge"`
}

func LoadGraphFixture(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadGraphFixture(f)
}

func ReadGraphFixture(r io.Reader) (*Graph, error) {
	var fixture GraphFixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("decode graph fixture: %w", err)
	}
	return fixture.Build()
}

func (f *GraphFixture) Build() (*Graph, error) {
	g := NewGraph()
	for _, v := range f.Vertices {
		ele := math.NaN()
		if v.Ele != nil {
			ele = *v.Ele
		}
		g.AddVertex(v.Lat, v.Lon, ele)
	}

	for i, e := range f.Edges {
		var pillars []geo.Point3D
		if e.Pillars != "" {
			var err error
			pillars, err = geo.DecodePoints3D(e.Pillars)
			if err != nil {
				return nil, fmt.Errorf("edge %d: %w", i, err)
			}
		}
		if _, err := g.AddEdge(e.From, e.To, e.Speed, e.ReverseSpeed, pkg.GetHighwayType(e.RoadClass), pillars); err != nil {
			return nil, err
		}
	}

	for _, tr := range f.TurnRestrictions {
		if int(tr.InEdge) >= g.NumberOfEdges() || int(tr.OutEdge) >= g.NumberOfEdges() ||
			int(tr.ViaNode) >= g.NumberOfVertices() {
			return nil, fmt.Errorf("turn restriction %d-%d-%d: out of range", tr.InEdge, tr.ViaNode, tr.OutEdge)
		}
		g.AddTurnRestriction(tr.Profile+pkg.TURN_RESTRICTION_SUFFIX, tr.InEdge, tr.ViaNode, tr.OutEdge)
	}

	if f.Orientation {
		g.EnableOrientation()
	}
	return g, nil
}
