package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// outputFilePermissions is the permission mode for files written by encode.
const outputFilePermissions = 0o644

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <component>...",
		Short: "Build an identifier list and write it as a stream",
		Long: `Build an identifier list from components, combined left to right under
the desktop root, and write its stream encoding (a little-endian 16-bit byte
count followed by the records and the terminator).

Output is hex when stdout is a terminal or --hex is given, raw bytes
otherwise.

` + componentHelp + `

Examples:
  idlist encode known:mycomputer drive:C file:./report.txt
  idlist encode --out docs.idl known:mydocuments`,
		RunE: runEncode,
	}

	cmd.Flags().Bool("hex", false, "write hex text instead of raw bytes")
	cmd.Flags().StringP("out", "o", "", "write to a file instead of stdout")

	return cmd
}

func runEncode(cmd *cobra.Command, args []string) error {
	cc := mustCLIContext(cmd.Context())

	asHex, _ := cmd.Flags().GetBool("hex")
	outPath, _ := cmd.Flags().GetString("out")

	l, err := buildList(args, cc.Registry)
	if err != nil {
		return err
	}

	data, err := encodeStream(l)
	if err != nil {
		return fmt.Errorf("encoding list: %w", err)
	}

	cc.Logger.Debug("encoded list", slog.Any("list", l))

	if asHex || (outPath == "" && isTerminal(cmd.OutOrStdout())) {
		data = []byte(hex.EncodeToString(data) + "\n")
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, data, outputFilePermissions); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		cc.Statusf("Wrote %d-byte list to %s\n", l.Size(), outPath)

		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
