package scene

// Cube returns a closed cube of half extent half, centered on the origin, 12 triangles
func Cube(half float64) MeshDef {
	h := half
	return MeshDef{
		Vertices: [][3]float64{
			{-h, -h, -h},
			{-h, -h, h},
			{-h, h, -h},
			{-h, h, h},
			{h, -h, -h},
			{h, -h, h},
			{h, h, -h},
			{h, h, h},
		},
		Triangles: [][3]int{
			{0, 2, 3},
			{0, 3, 1},
			{0, 1, 5},
			{0, 5, 4},
			{0, 4, 6},
			{0, 6, 2},
			{7, 2, 6},
			{7, 6, 4},
			{7, 4, 5},
			{7, 5, 1},
			{7, 1, 3},
			{7, 3, 2},
		},
	}
}

// Quad returns a square of half extent half in the Y=0 plane, two triangles facing +Y
func Quad(half float64) MeshDef {
	h := half
	return MeshDef{
		Vertices: [][3]float64{
			{-h, 0, -h},
			{-h, 0, h},
			{h, 0, -h},
			{h, 0, h},
		},
		Triangles: [][3]int{
			{0, 3, 2},
			{0, 1, 3},
		},
	}
}

// Default is a unit cube tilted by 0.5 rad around X then Z, 10 m above a 20x20 floor
func Default() Definition {
	return Definition{
		Meshes: map[string]MeshDef{
			"cube":  Cube(1),
			"floor": Quad(10),
		},
		Bodies: []BodyDef{
			{
				Name:     "cube",
				Mesh:     "cube",
				Position: [3]float64{0, 10, 0},
				Rotation: [3]float64{0.5, 0, 0.5},
			},
			{
				Name:   "floor",
				Mesh:   "floor",
				Static: true,
			},
		},
	}
}
