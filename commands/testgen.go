package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/blueshift-gg/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      proto.Message
}

// TestGenCmd writes the json and protobuf encodings of the examples, so
// that clients in other languages can test their codecs against them.
// The output directory is the first argument, testdata by default.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return errors.Wrap(err, "cannot create output dir")
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "json %s", ex.Filename)
		}
		if err := ioutil.WriteFile(filepath.Join(outdir, ex.Filename+".json"), js, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", ex.Filename)
		}

		pb, err := proto.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrapf(err, "protobuf %s", ex.Filename)
		}
		if err := ioutil.WriteFile(filepath.Join(outdir, ex.Filename+".bin"), pb, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", ex.Filename)
		}
	}
	return nil
}
