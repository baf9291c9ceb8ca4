package main

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/logicossoftware/go-hidepng"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newEncodeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Store a message in a new chunk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.ReadFile(o.file)
			if err != nil {
				return err
			}
			out, err := hidepng.Encode(in, o.chunkType, o.message,
				hidepng.WithCompression(hidepng.Compression(o.compress)))
			if err != nil {
				return err
			}
			dst := o.destination()
			if err := writeFileLike(dst, o.file, out); err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"file":        dst,
				"chunk_type":  o.chunkType.String(),
				"compression": o.compress.String(),
				"size":        len(out),
			}).Debug("Encoded message")
			return nil
		},
	}
	addFileFlag(cmd, o)
	addChunkTypeFlag(cmd, o)
	addOutputFlag(cmd, o)
	cmd.Flags().StringVarP(&o.message, "msg", "m", "", "Message to be stored.")
	_ = cmd.MarkFlagRequired("msg")
	cmd.Flags().Var(&o.compress, "compress", "Compress the message: none, zip, zstd, lz4 or br.")
	return cmd
}

func newDecodeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Print every message stored under a chunk type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.ReadFile(o.file)
			if err != nil {
				return err
			}
			msgs, err := hidepng.Decode(in, o.chunkType)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"file": o.file, "chunk_type": o.chunkType.String(), "count": len(msgs)}).Debug("Decoded messages")
			for _, m := range msgs {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
	addFileFlag(cmd, o)
	addChunkTypeFlag(cmd, o)
	return cmd
}

func newRemoveCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the first chunk of a type, or all of them with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.ReadFile(o.file)
			if err != nil {
				return err
			}
			remove := hidepng.Remove
			if o.all {
				remove = hidepng.RemoveAll
			}
			out, err := remove(in, o.chunkType)
			if err != nil {
				return err
			}
			dst := o.destination()
			if err := writeFileLike(dst, o.file, out); err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"file":       dst,
				"chunk_type": o.chunkType.String(),
				"removed":    humanize.Bytes(uint64(len(in) - len(out))),
			}).Debug("Removed chunk")
			return nil
		},
	}
	addFileFlag(cmd, o)
	addChunkTypeFlag(cmd, o)
	addOutputFlag(cmd, o)
	cmd.Flags().BoolVar(&o.all, "all", false, "Remove every chunk of the type instead of the first.")
	return cmd
}

func newPrintCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print",
		Short: "List the chunks of a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(o.file)
			if err != nil {
				return err
			}
			defer f.Close()
			p, err := hidepng.Read(f)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tTYPE\tFLAGS\tSIZE\tCRC")
			for i, c := range p.Chunks() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%08x\n", i, c.Type(), chunkFlags(c.Type()), humanize.Bytes(uint64(c.Length())), c.CRC())
			}
			return tw.Flush()
		},
	}
	addFileFlag(cmd, o)
	return cmd
}

func (o *options) destination() string {
	if o.output != "" {
		return o.output
	}
	return o.file
}

// chunkFlags renders the property bits of ct, e.g. "critical,public".
func chunkFlags(ct hidepng.ChunkType) string {
	var flags []string
	if ct.IsCritical() {
		flags = append(flags, "critical")
	} else {
		flags = append(flags, "ancillary")
	}
	if ct.IsPublic() {
		flags = append(flags, "public")
	} else {
		flags = append(flags, "private")
	}
	if ct.IsSafeToCopy() {
		flags = append(flags, "safe-to-copy")
	}
	return strings.Join(flags, ",")
}

// writeFileLike writes b to dst, reusing the permissions of src when it
// exists.
func writeFileLike(dst, src string, b []byte) error {
	perm := fs.FileMode(0o644)
	if fi, err := os.Stat(src); err == nil {
		perm = fi.Mode().Perm()
	}
	return os.WriteFile(dst, b, perm)
}
