package soundbank

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/milk9111/paintzone/sound"
)

// Describe writes c grouped by category, one sound per line.
func Describe(w io.Writer, c *sound.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cat := range c.Categories() {
		fmt.Fprintf(tw, "%s:\n", cat)
		for _, def := range c.Category(cat) {
			loop := ""
			if def.Loop {
				loop = "loop"
			}
			fmt.Fprintf(tw, "  %s\t%s\tvol %.2f\tpitch %.2f\t%s\t%s\n",
				def.Name, def.Clip.Duration().Round(10*time.Millisecond), def.Volume, def.Pitch, def.Bus, loop)
		}
	}
	if c.Len() == 0 {
		fmt.Fprintln(tw, "(no sounds)")
	}
	return tw.Flush()
}
