package utils

type colors struct {
	c map[string]int
}

var Colors = colors{
	c: map[string]int{
		"Steel blue": 0x2176ae,
		"Signal red": 0xd33f49,
	},
}

// Info returns the color code for informational messages
func (c colors) Info() int {
	return c.c["Steel blue"]
}

// Error returns the color code for error messages
func (c colors) Error() int {
	return c.c["Signal red"]
}
