/*
Package pare compresses paired FASTQ reads into a compact self-describing
artifact and reconstructs the original reads from it, byte for byte.

Titles, nucleotide sequences and quality scores have very different
statistical character, so the package offers two layouts:

The single-container model serializes records inline, each field terminated
by a reserved sentinel byte (quality runs are written raw, their lengths
implied by the paired sequence), and runs the whole stream through one xz
pass. Smallest fixed overhead; the encoding default.

The multi-stream model splits records into three homogeneous field-class
streams, compresses each with its own xz pass, and multiplexes them plus a
metadata document through a named-entry container. Better ratios on large
batches, since each stream is far more self-similar than the interleaved
record stream.

Decoding never requires knowing which model produced an artifact: the
dispatcher inspects the input and picks the matching decoder, and a decoder
handed the wrong layout fails with ErrMissingVersion or ErrWrongModel
rather than returning partial records.
*/
package pare
