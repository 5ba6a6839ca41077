package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/blueshift-gg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestGenCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	meta := ledger.NewAccountMeta(ledger.NewAddress(make([]byte, ledger.AddressLength)), true, false)
	examples := []Example{{Filename: "meta", Obj: meta}}
	require.NoError(t, TestGenCmd(examples, []string{dir}))

	bin, err := ioutil.ReadFile(filepath.Join(dir, "meta.bin"))
	require.NoError(t, err)
	want, err := meta.Marshal()
	require.NoError(t, err)
	assert.Equal(t, want, bin)

	js, err := ioutil.ReadFile(filepath.Join(dir, "meta.json"))
	require.NoError(t, err)
	assert.Contains(t, string(js), `"is_signer": true`)
}
