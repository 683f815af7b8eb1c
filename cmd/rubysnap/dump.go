package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"rubysnap/internal/ast"
	"rubysnap/internal/serial"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Serialize a file and print the tree read back from the bytes",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	cmd.Flags().Bool("raw", false, "write the serialized bytes instead of the tree")
	cmd.Flags().String("snapshot", "", "inspect this stored snapshot instead of serializing FILE")
	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return fmt.Errorf("failed to get raw flag: %w", err)
	}
	snapshot, err := cmd.Flags().GetString("snapshot")
	if err != nil {
		return fmt.Errorf("failed to get snapshot flag: %w", err)
	}

	src, err := readInput(args[0])
	if err != nil {
		return err
	}
	eng := newEngine()

	var data []byte
	if snapshot != "" {
		if data, err = readInput(snapshot); err != nil {
			return err
		}
	} else if data, err = eng.Dump(src, filepath.ToSlash(args[0])); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if raw {
		_, err := out.Write(data)
		return err
	}

	hdr, err := serial.ReadHeader(data)
	if err != nil {
		return err
	}
	root, err := eng.Load(src, data)
	if err != nil {
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(out, "# fixture %s, format %s, %d bytes of source\n", hdr.Fixture, hdr.Version(), hdr.SourceLen)
	}
	fmt.Fprint(out, ast.Format(root))
	return nil
}
