package vault

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x/system"
)

// DiscriminatorLength is the size of the prefix selecting the instruction.
const DiscriminatorLength = 8

// Names of the instructions.
const (
	InitializeName = "initialize"
	DepositName    = "deposit"
	WithdrawName   = "withdraw"
)

var (
	initializeDiscriminator = discriminator(InitializeName)
	depositDiscriminator    = discriminator(DepositName)
	withdrawDiscriminator   = discriminator(WithdrawName)
)

// discriminator is the prefix of the sha256 digest of "global:<name>".
func discriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:DiscriminatorLength]
}

// Instruction is one of Initialize, Deposit or Withdraw.
type Instruction interface {
	Name() string
	Encode() []byte
}

// Initialize takes no accounts and only logs the program id.
type Initialize struct{}

func (Initialize) Name() string { return InitializeName }

func (Initialize) Encode() []byte {
	return append([]byte(nil), initializeDiscriminator...)
}

// Deposit moves Amount lamports from the signer into its vault.
type Deposit struct {
	Amount uint64
}

func (Deposit) Name() string { return DepositName }

func (d Deposit) Encode() []byte {
	raw := make([]byte, DiscriminatorLength+8)
	copy(raw, depositDiscriminator)
	binary.LittleEndian.PutUint64(raw[DiscriminatorLength:], d.Amount)
	return raw
}

// Withdraw moves the whole vault balance back to the signer.
type Withdraw struct{}

func (Withdraw) Name() string { return WithdrawName }

func (Withdraw) Encode() []byte {
	return append([]byte(nil), withdrawDiscriminator...)
}

// Decode parses instruction data.
func Decode(raw []byte) (Instruction, error) {
	if len(raw) < DiscriminatorLength {
		return nil, errors.Wrap(errors.ErrInstructionFallbackNotFound, "missing discriminator")
	}
	disc, args := raw[:DiscriminatorLength], raw[DiscriminatorLength:]
	switch {
	case bytes.Equal(disc, initializeDiscriminator):
		if len(args) != 0 {
			return nil, errors.Wrap(errors.ErrInstructionDidNotDeserialize, "initialize takes no arguments")
		}
		return Initialize{}, nil
	case bytes.Equal(disc, depositDiscriminator):
		if len(args) != 8 {
			return nil, errors.Wrapf(errors.ErrInstructionDidNotDeserialize, "deposit takes 8 bytes, got %d", len(args))
		}
		return Deposit{Amount: binary.LittleEndian.Uint64(args)}, nil
	case bytes.Equal(disc, withdrawDiscriminator):
		if len(args) != 0 {
			return nil, errors.Wrap(errors.ErrInstructionDidNotDeserialize, "withdraw takes no arguments")
		}
		return Withdraw{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInstructionFallbackNotFound, "discriminator %x", disc)
	}
}

// NewInitialize builds the initialize instruction.
func NewInitialize() *ledger.Instruction {
	return &ledger.Instruction{
		Program: ProgramID,
		Data:    Initialize{}.Encode(),
	}
}

// NewDeposit builds a deposit of amount lamports from the signer into its
// vault.
func NewDeposit(signer ledger.Address, amount uint64) (*ledger.Instruction, error) {
	return newInstruction(signer, Deposit{Amount: amount})
}

// NewWithdraw builds the withdrawal of the whole vault of the signer.
func NewWithdraw(signer ledger.Address) (*ledger.Instruction, error) {
	return newInstruction(signer, Withdraw{})
}

func newInstruction(signer ledger.Address, ix Instruction) (*ledger.Instruction, error) {
	vault, _, err := DeriveVault(signer)
	if err != nil {
		return nil, err
	}
	return &ledger.Instruction{
		Program:  ProgramID,
		Accounts: Accounts(signer, vault),
		Data:     ix.Encode(),
	}, nil
}

// Accounts returns the account list of deposit and withdraw.
func Accounts(signer, vault ledger.Address) []*ledger.AccountMeta {
	return []*ledger.AccountMeta{
		ledger.NewAccountMeta(signer, true, true),
		ledger.NewAccountMeta(vault, false, true),
		ledger.NewAccountMeta(system.ProgramID, false, false),
	}
}
