package main

import (
	"fmt"
	"os"

	"github.com/technexus/blog-server/cmd/cli/root"

	// Command packages register themselves on the root command in init().
	_ "github.com/technexus/blog-server/cmd/cli/articles"
	_ "github.com/technexus/blog-server/cmd/cli/audit"
	_ "github.com/technexus/blog-server/cmd/cli/auth"
	_ "github.com/technexus/blog-server/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
