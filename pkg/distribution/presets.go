package distribution

// CommonParts returns the default part distribution: frequently seen
// bricks weighted above plates, matching the stock bucket mix used for
// dataset generation.
func CommonParts() *Distribution {
	d := New()

	// Bricks.
	d.Add("3001", "Brick 2x4", 1.0)
	d.Add("3002", "Brick 2x3", 0.8)
	d.Add("3003", "Brick 2x2", 0.9)
	d.Add("3004", "Brick 1x2", 1.0)
	d.Add("3005", "Brick 1x1", 0.7)

	// Plates.
	d.Add("3021", "Plate 2x3", 0.6)
	d.Add("3022", "Plate 2x2", 0.7)
	d.Add("3023", "Plate 1x2", 0.8)
	d.Add("3024", "Plate 1x1", 0.5)

	return d
}

// CommonColors returns the default color distribution: primary colors
// weighted above neutrals. IDs are LDraw color codes.
func CommonColors() *Distribution {
	d := New()

	d.Add("4", "Red", 1.0)
	d.Add("1", "Blue", 1.0)
	d.Add("2", "Green", 0.8)
	d.Add("14", "Yellow", 0.9)

	d.Add("0", "Black", 0.7)
	d.Add("15", "White", 0.7)
	d.Add("72", "Dark Gray", 0.5)

	return d
}
