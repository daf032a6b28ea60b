package life

import "sparse-life/pkg/core"

func cells(pairs ...[2]int) []core.Coord {
	out := make([]core.Coord, len(pairs))
	for i, p := range pairs {
		out[i] = core.Coord{Row: p[0], Col: p[1]}
	}
	return out
}

func init() {
	core.RegisterPattern(core.Pattern{
		Name:        "block",
		Description: "2x2 still life",
		Cells:       cells([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "beehive",
		Description: "six cell still life",
		Cells:       cells([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 3}, [2]int{2, 1}, [2]int{2, 2}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "loaf",
		Description: "seven cell still life",
		Cells: cells([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 3},
			[2]int{2, 1}, [2]int{2, 3}, [2]int{3, 2}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "blinker",
		Description: "period 2 oscillator",
		Cells:       cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "toad",
		Description: "period 2 oscillator",
		Cells:       cells([2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "beacon",
		Description: "period 2 oscillator made of two blocks",
		Cells: cells([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1},
			[2]int{2, 2}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 3}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "glider",
		Description: "moves one cell diagonally every four generations",
		Cells:       cells([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "r-pentomino",
		Description: "methuselah, settles after 1103 generations and emits gliders",
		Cells:       cells([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 1}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "diehard",
		Description: "vanishes after 130 generations",
		Cells: cells([2]int{0, 6}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 1},
			[2]int{2, 5}, [2]int{2, 6}, [2]int{2, 7}),
	})
	core.RegisterPattern(core.Pattern{
		Name:        "acorn",
		Description: "methuselah, settles after 5206 generations and emits gliders",
		Cells: cells([2]int{0, 1}, [2]int{1, 3}, [2]int{2, 0}, [2]int{2, 1},
			[2]int{2, 4}, [2]int{2, 5}, [2]int{2, 6}),
	})
}
