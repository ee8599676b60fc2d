package level

// Stats is a summary of a loaded level, served by the viewer as JSON or
// YAML and printed by wadinfo.
type Stats struct {
	Name       string `json:"name" yaml:"name"`
	Things     int    `json:"things" yaml:"things"`
	Vertices   int    `json:"vertices" yaml:"vertices"`
	Sectors    int    `json:"sectors" yaml:"sectors"`
	Sidedefs   int    `json:"sidedefs" yaml:"sidedefs"`
	Linedefs   int    `json:"linedefs" yaml:"linedefs"`
	Segs       int    `json:"segs" yaml:"segs"`
	Subsectors int    `json:"subsectors" yaml:"subsectors"`
	Nodes      int    `json:"nodes" yaml:"nodes"`
	BSPDepth   int    `json:"bsp_depth" yaml:"bsp_depth"`

	FloorMin   int16 `json:"floor_min" yaml:"floor_min"`
	CeilingMax int16 `json:"ceiling_max" yaml:"ceiling_max"`

	BBoxMin [2]float32 `json:"bbox_min" yaml:"bbox_min"`
	BBoxMax [2]float32 `json:"bbox_max" yaml:"bbox_max"`
}

func (l *Level) Stats() Stats {
	s := Stats{
		Name:       l.Name,
		Things:     len(l.Things),
		Vertices:   len(l.Vertices),
		Sectors:    len(l.Sectors),
		Sidedefs:   len(l.Sidedefs),
		Linedefs:   len(l.Linedefs),
		Segs:       len(l.Segs),
		Subsectors: len(l.Subsectors),
		Nodes:      len(l.Nodes),
		BSPDepth:   l.Depth(),
	}
	for i, sec := range l.Sectors {
		if i == 0 || sec.FloorHeight < s.FloorMin {
			s.FloorMin = sec.FloorHeight
		}
		if i == 0 || sec.CeilingHeight > s.CeilingMax {
			s.CeilingMax = sec.CeilingHeight
		}
	}
	for i, v := range l.Vertices {
		if i == 0 {
			s.BBoxMin = [2]float32{v.X(), v.Y()}
			s.BBoxMax = s.BBoxMin
			continue
		}
		if v.X() < s.BBoxMin[0] {
			s.BBoxMin[0] = v.X()
		}
		if v.Y() < s.BBoxMin[1] {
			s.BBoxMin[1] = v.Y()
		}
		if v.X() > s.BBoxMax[0] {
			s.BBoxMax[0] = v.X()
		}
		if v.Y() > s.BBoxMax[1] {
			s.BBoxMax[1] = v.Y()
		}
	}
	return s
}
