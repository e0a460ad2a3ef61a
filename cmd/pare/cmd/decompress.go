package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pareseq/pare"
	"github.com/pareseq/pare/fastq"
)

var (
	decompressModel     string
	decompressReverseR2 bool
)

var decompressCmd = &cobra.Command{
	Use:   "decompress [flags] ARTIFACT [OUT1 [OUT2]]",
	Short: "Reconstruct FASTQ file(s) from a pare artifact",
	Args:  cobra.RangeArgs(1, 3),
	RunE:  runDecompress,
}

func init() {
	decompressCmd.Flags().StringVarP(&decompressModel, "model", "m", "", "artifact layout: single or multi (default: detect from the artifact)")
	decompressCmd.Flags().BoolVar(&decompressReverseR2, "reverse-r2", false, "reverse complement read 2 of each pair on the way out")
	rootCmd.AddCommand(decompressCmd)
}

func runDecompress(cmd *cobra.Command, args []string) error {
	in, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	outputs := args[1:]
	if len(outputs) == 0 {
		outputs = []string{"-"}
	}

	var sink fastq.PairWriter
	writers := make([]*fastq.Writer, 0, 2)
	files := make([]interface{ Close() error }, 0, 2)

	out1, err := openOutput(outputs[0])
	if err != nil {
		return err
	}
	files = append(files, out1)
	w1 := fastq.NewWriter(out1)
	writers = append(writers, w1)

	if len(outputs) == 1 {
		sink = fastq.NewInterleavedFileWriter(w1, decompressReverseR2)
	} else {
		out2, err := openOutput(outputs[1])
		if err != nil {
			out1.Close()
			return err
		}
		files = append(files, out2)
		w2 := fastq.NewWriter(out2)
		writers = append(writers, w2)

		sink = fastq.NewPairedFilesWriter(w1, w2, decompressReverseR2)
	}

	closeAll := func() error {
		var err error
		for _, w := range writers {
			if ferr := w.Flush(); err == nil {
				err = ferr
			}
		}
		for _, f := range files {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}

	var dec pare.Decoder
	if decompressModel == "" {
		if dec, err = pare.NewDecoder(in); err != nil {
			closeAll()
			return err
		}
	} else {
		model, err := pare.ParseModel(decompressModel)
		if err != nil {
			closeAll()
			return err
		}
		dec = pare.NewModelDecoder(in, model)
	}

	if err = dec.Decompress(sink); err != nil {
		closeAll()
		return err
	}
	return closeAll()
}
