package main

import (
	"github.com/spf13/cobra"

	"jsteg/pkg/filehandler"
	"jsteg/pkg/jpeg"
	"jsteg/pkg/jsteg"
)

func newEmbedCommand() *cobra.Command {
	var metaData bool

	cmd := &cobra.Command{
		Use:   "embed COVER_IMAGE SECRET_FILE STEGO_IMAGE",
		Short: "Hide SECRET_FILE inside COVER_IMAGE's AC coefficients, writing STEGO_IMAGE",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cover, secretPath, dest := args[0], args[1], args[2]

			coverBytes, err := filehandler.ReadFile(cover)
			if err != nil {
				return err
			}

			img, err := jpeg.Decode(coverBytes)
			if err != nil {
				return err
			}

			if metaData {
				return dumpHeader(img.Header)
			}

			secretBytes, err := filehandler.ReadFile(secretPath)
			if err != nil {
				return err
			}

			frame := jsteg.Frame(secretBytes, secretPath)
			out.Infof("cover capacity: %d bits, frame needs %d bits", jsteg.Capacity(img), len(frame)*8)

			if err := jsteg.Embed(img, frame); err != nil {
				return err
			}

			encoded, err := jpeg.Encode(img)
			if err != nil {
				return err
			}

			if err := filehandler.WriteFileAtomic(dest, encoded); err != nil {
				return err
			}

			out.Successf("embedded %s into %s", secretPath, dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&metaData, "meta-data", false, "dump the cover image's parsed header as JSON instead of embedding")
	return cmd
}
