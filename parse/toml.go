package parse

import (
	"io"
	"os"

	"github.com/dzjyyds666/tq/parse/toml"
)

// Decode reads a TOML document from r and resolves it into a table.
func Decode(r io.Reader) (*toml.Table, error) {
	return toml.Parse(r)
}

// DecodeFile decodes the TOML document at path.
func DecodeFile(path string) (*toml.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return toml.Parse(f)
}
