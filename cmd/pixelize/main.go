// pixelize - turn images into pixel art
//
// pixelize fits an image onto a tile grid, colours each tile from a handful
// of sample points, reduces the colours to a retro palette or a coarser bit
// depth, and draws a stitched grid over the result.
package main

import "github.com/jmylchreest/pixelize/internal/cli"

func main() {
	cli.Execute()
}
