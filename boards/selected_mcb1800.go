//go:build !board_ea4357

package boards

// Selected is the board the firmware is built for.
var Selected = MCB1800
