package grid

// BookGrid is the 3x4 grid from Russell and Norvig
func BookGrid(opts ...Option) *GridModel {
	return mustGrid([][]string{
		{" ", " ", " ", "1"},
		{" ", "#", " ", "-1"},
		{"S", " ", " ", " "},
	}, opts...)
}

func BridgeGrid(opts ...Option) *GridModel {
	return mustGrid([][]string{
		{"#", "-100", "-100", "-100", "-100", "-100", "#"},
		{"1", "S", " ", " ", " ", " ", "10"},
		{"#", "-100", "-100", "-100", "-100", "-100", "#"},
	}, opts...)
}

func CliffGrid(opts ...Option) *GridModel {
	return mustGrid([][]string{
		{" ", " ", " ", " ", " "},
		{"8", "S", " ", " ", "10"},
		{"-100", "-100", "-100", "-100", "-100"},
	}, opts...)
}

func mustGrid(layout [][]string, opts ...Option) *GridModel {
	g, err := NewGridModel(layout, opts...)
	if err != nil {
		panic(err)
	}
	return g
}
