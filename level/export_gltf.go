package level

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ExportGLTF writes the level's wall geometry as a binary glTF document:
// one quad per one-sided seg, stretched from its sector's floor to its
// ceiling. Map x/y become glTF x/z, heights become y.
func (l *Level) ExportGLTF(w io.Writer) error {
	var positions [][3]float32
	var indices []uint32

	for i := range l.Segs {
		seg := &l.Segs[i]
		if l.SegOppositeSector(seg) != nil {
			continue
		}
		sector := l.SegSector(seg)
		start := l.Vertex(seg.Start)
		end := l.Vertex(seg.End)
		floor := float32(sector.FloorHeight)
		ceiling := float32(sector.CeilingHeight)

		base := uint32(len(positions))
		positions = append(positions,
			[3]float32{start.X(), floor, start.Y()},
			[3]float32{end.X(), floor, end.Y()},
			[3]float32{end.X(), ceiling, end.Y()},
			[3]float32{start.X(), ceiling, start.Y()},
		)
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	doc := gltf.NewDocument()
	if len(positions) != 0 {
		posAccessor := modeler.WritePosition(doc, positions)
		idxAccessor := modeler.WriteIndices(doc, indices)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: l.Name,
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(idxAccessor),
				Attributes: map[string]uint32{
					gltf.POSITION: posAccessor,
				},
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: l.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}
