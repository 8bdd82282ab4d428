package main

import (
	"os"

	"github.com/spf13/cobra"

	"jsteg/internal/console"
)

const appName = "jsteg"

var out = console.New(false)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        appName + " - JSteg-style JPEG steganography embed and extract tool",
		SilenceUsage: true,
	}

	root.AddCommand(newEmbedCommand())
	root.AddCommand(newRetrieveCommand())

	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		out.Errorf("%v", err)
		os.Exit(1)
	}
}
