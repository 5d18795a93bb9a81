package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/render/nodelink"
)

func ExampleToDOT() {
	root := cdg.NewNode(1, 0, cdg.True, "n > 0", nil, nil, nil, nil)
	root.AddTrue(cdg.NewNode(2, 1, cdg.True, "", nil, nil, nil, nil))
	cdg.UpdateCDG(root)

	dot := nodelink.ToDOT(root, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// n1 -> n2 [label="T"];
}
