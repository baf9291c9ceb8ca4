package main

import (
	"github.com/logicossoftware/go-hidepng"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*hidepng.ChunkType)(nil)

// options holds the flag values shared by the subcommands.
type options struct {
	file      string
	output    string
	chunkType hidepng.ChunkType
	message   string
	compress  compressionValue
	all       bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	o := &options{chunkType: hidepng.DefaultChunkType}

	root := &cobra.Command{
		Use:           "hidepng",
		Short:         "Hide messages inside PNG files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetLevel(log.InfoLevel)
			if o.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging.")

	root.AddCommand(
		newEncodeCmd(o),
		newDecodeCmd(o),
		newRemoveCmd(o),
		newPrintCmd(o),
	)
	return root
}

func addFileFlag(cmd *cobra.Command, o *options) {
	cmd.Flags().StringVarP(&o.file, "file-path", "f", "", "Input file path.")
	_ = cmd.MarkFlagRequired("file-path")
}

func addChunkTypeFlag(cmd *cobra.Command, o *options) {
	cmd.Flags().VarP(&o.chunkType, "chunk-type", "c", "Key to store message as.")
}

func addOutputFlag(cmd *cobra.Command, o *options) {
	cmd.Flags().StringVarP(&o.output, "output-file", "o", "", "Output file. Defaults to overwriting the input.")
}

// compressionValue adapts hidepng.Compression to pflag.Value.
type compressionValue hidepng.Compression

func (c *compressionValue) String() string { return hidepng.Compression(*c).String() }

func (c *compressionValue) Set(s string) error {
	v, err := hidepng.ParseCompression(s)
	if err != nil {
		return err
	}
	*c = compressionValue(v)
	return nil
}

func (c *compressionValue) Type() string { return "compression" }
