package nftclaim

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// dropERC721ABI is the subset of the drop collection interface used by the claim strategies.
const dropERC721ABI = `[
	{"type":"function","name":"claim","stateMutability":"payable","outputs":[],"inputs":[
		{"name":"_receiver","type":"address"},
		{"name":"_quantity","type":"uint256"},
		{"name":"_currency","type":"address"},
		{"name":"_pricePerToken","type":"uint256"},
		{"name":"_allowlistProof","type":"tuple","components":[
			{"name":"proof","type":"bytes32[]"},
			{"name":"quantityLimitPerWallet","type":"uint256"},
			{"name":"pricePerToken","type":"uint256"},
			{"name":"currency","type":"address"}
		]},
		{"name":"_data","type":"bytes"}
	]},
	{"type":"function","name":"lazyMint","stateMutability":"nonpayable","outputs":[{"name":"batchId","type":"uint256"}],"inputs":[
		{"name":"_amount","type":"uint256"},
		{"name":"_baseURIForTokens","type":"string"},
		{"name":"_data","type":"bytes"}
	]},
	{"type":"function","name":"mintTo","stateMutability":"nonpayable","outputs":[{"name":"","type":"uint256"}],"inputs":[
		{"name":"_to","type":"address"},
		{"name":"_uri","type":"string"}
	]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"tokenId","type":"uint256","indexed":true}
	]}
]`

// NativeCurrency is the sentinel address of the chain's native token.
var NativeCurrency = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

var transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

type AllowlistProof struct {
	Proof                  [][32]byte
	QuantityLimitPerWallet *big.Int
	PricePerToken          *big.Int
	Currency               common.Address
}

// ContractCaller sends a transaction calling method and waits for it to be mined.
type ContractCaller interface {
	Transact(ctx context.Context, method string, args ...any) (*ethtypes.Receipt, error)
}

type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

type Contract struct {
	address common.Address
	backend Backend
	bound   *bind.BoundContract
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

func NewContract(address common.Address, backend Backend, key *ecdsa.PrivateKey, chainID *big.Int) (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(dropERC721ABI))
	if err != nil {
		return nil, err
	}

	return &Contract{
		address: address,
		backend: backend,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
		key:     key,
		chainID: chainID,
	}, nil
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) Transact(ctx context.Context, method string, args ...any) (*ethtypes.Receipt, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	tx, err := c.bound.Transact(opts, method, args...)
	if err != nil {
		return nil, err
	}

	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, err
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("execution reverted: %s of tx %s", method, tx.Hash().Hex())
	}

	return receipt, nil
}

// MintedTokenID returns the token id of the first Transfer log of receipt.
func MintedTokenID(receipt *ethtypes.Receipt) (string, bool) {
	if receipt == nil {
		return "", false
	}

	for _, log := range receipt.Logs {
		if len(log.Topics) == 4 && log.Topics[0] == transferTopic {
			return log.Topics[3].Big().String(), true
		}
	}

	return "", false
}
