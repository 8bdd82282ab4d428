package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jsteg/pkg/filehandler"
	"jsteg/pkg/jpeg"
	"jsteg/pkg/jsteg"
)

func newRetrieveCommand() *cobra.Command {
	var metaData bool

	cmd := &cobra.Command{
		Use:     "retrieve STEGO_IMAGE",
		Aliases: []string{"extract"},
		Short:   "Recover the secret file embedded in STEGO_IMAGE",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stegoPath := args[0]

			stegoBytes, err := filehandler.ReadFile(stegoPath)
			if err != nil {
				return err
			}

			img, err := jpeg.Decode(stegoBytes)
			if err != nil {
				return err
			}

			if metaData {
				return dumpHeader(img.Header)
			}

			data, filename, err := jsteg.Extract(img)
			if err != nil {
				return err
			}

			if err := filehandler.WriteFileAtomic(filename, data); err != nil {
				return err
			}

			out.Successf("recovered %s (%d bytes) from %s", filename, len(data), stegoPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&metaData, "meta-data", false, "dump the stego image's parsed header as JSON instead of extracting")
	return cmd
}

func dumpHeader(h *jpeg.Header) error {
	b, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	fmt.Println(string(b))
	return nil
}
