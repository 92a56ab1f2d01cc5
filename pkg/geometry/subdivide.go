package geometry

// subdivide splits every triangle into four by inserting edge midpoints:
//
//	      v1
//	      *
//	     / \
//	 m0 *---* m1
//	   / \ / \
//	  *---*---*
//	 v0   m2   v2
//
// Midpoint attributes are interpolated from the parent edge endpoints, with
// normals and tangents renormalized. A flat-shaded face keeps its flat normal
// because all three parents share it; the silhouette never changes.
func subdivide(m MeshData) MeshData {
	input := m
	out := MeshData{
		Vertices: make([]Vertex, 0, 2*len(input.Vertices)),
		Indices:  make([]uint32, 0, 4*len(input.Indices)),
	}

	numTris := len(input.Indices) / 3
	for i := 0; i < numTris; i++ {
		v0 := input.Vertices[input.Indices[i*3+0]]
		v1 := input.Vertices[input.Indices[i*3+1]]
		v2 := input.Vertices[input.Indices[i*3+2]]

		m0 := midpoint(v0, v1)
		m1 := midpoint(v1, v2)
		m2 := midpoint(v0, v2)

		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, v0, v1, v2, m0, m1, m2)

		// Relative order: 0=v0 1=v1 2=v2 3=m0 4=m1 5=m2.
		addTriangle(&out, base+0, base+3, base+5)
		addTriangle(&out, base+3, base+4, base+5)
		addTriangle(&out, base+5, base+4, base+2)
		addTriangle(&out, base+3, base+1, base+4)
	}

	return out
}

func midpoint(a, b Vertex) Vertex {
	return Vertex{
		Position: a.Position.Lerp(b.Position, 0.5),
		Normal:   a.Normal.Lerp(b.Normal, 0.5).Normalize(),
		Tangent:  a.Tangent.Lerp(b.Tangent, 0.5).Normalize(),
		TexCoord: a.TexCoord.Lerp(b.TexCoord, 0.5),
	}
}
