package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pare",
	Short: "Compression for paired FASTQ sequencing reads",
	Long: `pare turns paired FASTQ reads into a compact self-describing artifact
and reconstructs the original reads from it with exact fidelity.

Inputs and outputs may be files or "-" for stdin/stdout. One read file
means interleaved pairs; two means parallel R1/R2 files.`,
	SilenceUsage: true,
}

// Execute runs the CLI, exiting non-zero with the error description on
// any failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// openOutput creates path, or hands back stdout for "-". Output is written
// in place, not staged: a failed run can leave a partial file behind.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
