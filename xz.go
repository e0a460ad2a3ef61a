package pare

import (
	"io"

	"github.com/ulikunitz/xz"
)

// Both models compress with LZMA2 at a fixed large dictionary; ratio is
// the whole point of the artifact, so the encoder always pays for the
// high-effort setting.
const xzDictCap = 1 << 26

func newXZWriter(w io.Writer) (*xz.Writer, error) {
	conf := xz.WriterConfig{DictCap: xzDictCap}
	return conf.NewWriter(w)
}

// xzHeaderMagic is the first six bytes of every xz stream, used by the
// dispatcher to tell a bare compressed stream from an archive container.
var xzHeaderMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
