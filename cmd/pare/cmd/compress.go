package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pareseq/pare"
	"github.com/pareseq/pare/fastq"
)

var (
	compressOutput    string
	compressModel     string
	compressReverseR2 bool
)

var compressCmd = &cobra.Command{
	Use:   "compress [flags] R1 [R2]",
	Short: "Compress FASTQ file(s) into a pare artifact",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCompress,
}

func init() {
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "-", "artifact path, or - for stdout")
	compressCmd.Flags().StringVarP(&compressModel, "model", "m", "single", "artifact layout: single or multi")
	compressCmd.Flags().BoolVar(&compressReverseR2, "reverse-r2", false, "reverse complement read 2 of each pair on the way in")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	model, err := pare.ParseModel(compressModel)
	if err != nil {
		return err
	}

	var src fastq.PairReader

	in1, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer in1.Close()

	if len(args) == 1 {
		src = fastq.NewInterleavedFile(fastq.NewReader(in1), compressReverseR2)
	} else {
		in2, err := openInput(args[1])
		if err != nil {
			return err
		}
		defer in2.Close()

		src = fastq.NewPairedFiles(fastq.NewReader(in1), fastq.NewReader(in2), compressReverseR2)
	}

	out, err := openOutput(compressOutput)
	if err != nil {
		return err
	}

	if err = pare.NewEncoder(out, model).Compress(src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
