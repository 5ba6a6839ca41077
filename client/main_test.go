package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/blueshift-gg/ledger/cmd/vaultd/app"
	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/x/system"
	"github.com/tendermint/tendermint/libs/log"
	nm "github.com/tendermint/tendermint/node"
	rpctest "github.com/tendermint/tendermint/rpc/test"
)

const richLamports = 100000000

var (
	node    *nm.Node
	richKey = crypto.PrivKeyEd25519FromSeed(bytes.Repeat([]byte{7}, 32))
)

// fundGenesis adds an app_state with one funded account to the tendermint
// genesis file.
func fundGenesis(path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	state, err := json.Marshal(map[string]interface{}{
		"accounts": []system.GenesisAccount{
			{Address: richKey.Address(), Lamports: richLamports},
		},
	})
	if err != nil {
		return err
	}
	doc["app_state"] = state
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, out, 0o600)
}

func TestMain(m *testing.M) {
	config := rpctest.GetConfig()
	config.Moniker = "VaultClientTest"
	// we must set these two to ensure that tags are indexed (IndexTags non-empty overrides IndexAllTags)
	config.TxIndex.IndexTags = ""
	config.TxIndex.IndexAllTags = true

	if err := fundGenesis(config.GenesisFile()); err != nil {
		fmt.Printf("Cannot write genesis: %s\n", err)
		os.Exit(1)
	}

	stack, err := app.Stack(nil)
	if err != nil {
		fmt.Printf("Cannot build stack: %s\n", err)
		os.Exit(1)
	}
	application, err := app.Application(stack, app.TxDecoder, "", false, log.NewNopLogger())
	if err != nil {
		fmt.Printf("Cannot build application: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting tendermint...")
	node = rpctest.StartTendermint(application)

	fmt.Println("Wait for first block...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	h, err := NewLocalClient(node).WaitForNextBlock(ctx)
	cancel()

	var code int
	if err == nil {
		fmt.Printf("Starting tests with block %d\n", h.Height)
		code = m.Run()
	} else {
		fmt.Printf("Failed to start tendermint: %s\n", err)
		code = 1
	}

	node.Stop()
	node.Wait()
	os.Exit(code)
}
