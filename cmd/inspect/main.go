package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"robot-viewer/internal/figure"
	"robot-viewer/internal/mathutil"
	"robot-viewer/internal/skeleton"
)

func main() {
	keys := flag.String("keys", "", "Rotate keys (x/X y/Y z/Z) applied to the root before printing")
	flag.Usage = func() {
		fmt.Println("usage: inspect [flags] [SKELETON.yaml]")
		flag.PrintDefaults()
	}
	flag.Parse()

	table, err := skeleton.Open(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fig, _, err := skeleton.Build(table)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, r := range *keys {
		axis, sign, ok := rotation(r)
		if !ok {
			fmt.Printf("Error: %q is not a rotate key\n", r)
			os.Exit(1)
		}
		fig.AdjustAngle(fig.Root(), axis, sign*0.1)
	}

	report(os.Stdout, fig)
}

func rotation(r rune) (figure.Axis, float32, bool) {
	switch r {
	case 'x', 'X':
		return figure.X, sign(r == 'x'), true
	case 'y', 'Y':
		return figure.Y, sign(r == 'y'), true
	case 'z', 'Z':
		return figure.Z, sign(r == 'z'), true
	}
	return 0, 0, false
}

func sign(pos bool) float32 {
	if pos {
		return 1
	}
	return -1
}

// report prints the segment tree, the selection order and where each
// joint ends up in figure space.
func report(w io.Writer, fig *figure.Figure) {
	fmt.Fprintf(w, "Segments: %d\n", fig.Len())
	fmt.Fprintln(w, "Tree:")
	var walk func(n figure.Node, depth int)
	walk = func(n figure.Node, depth int) {
		s := fig.Scale(n)
		fmt.Fprintf(w, "  %s%s  scale=(%.2f, %.2f, %.2f)\n", strings.Repeat("  ", depth), fig.Name(n), s[0], s[1], s[2])
		for _, c := range fig.Children(n) {
			walk(c, depth+1)
		}
	}
	walk(fig.Root(), 0)

	fmt.Fprintln(w, "Order:")
	for i, n := range fig.Order() {
		fmt.Fprintf(w, "  %2d %s\n", i, fig.Name(n))
	}

	fmt.Fprintln(w, "Joints:")
	for _, n := range fig.Order() {
		p := mathutil.Origin(fig.World(n))
		fmt.Fprintf(w, "  %-16s (%7.3f, %7.3f, %7.3f)\n", fig.Name(n), p[0], p[1], p[2])
	}
}
