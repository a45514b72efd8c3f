package session

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	lru "github.com/hashicorp/golang-lru/v2"

	evminspector "github.com/wippyai/evm-inspector"
	"github.com/wippyai/evm-inspector/errors"
)

// StaticCodeSource serves code from a fixed in-memory map. Addresses not
// in the map read as having no deployed code, which decodes as an unknown
// contract rather than failing.
type StaticCodeSource map[common.Address][]byte

func (s StaticCodeSource) CodeAt(_ context.Context, address common.Address) ([]byte, error) {
	return s[address], nil
}

// RPCCodeSource fetches deployed bytecode from an Ethereum node via
// eth_getCode.
type RPCCodeSource struct {
	client *ethclient.Client

	// Block pins fetches to a block number. nil means latest.
	Block *big.Int
}

// DialRPC connects to the node at url.
func DialRPC(ctx context.Context, url string) (*RPCCodeSource, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Load("dial "+url, err)
	}
	return &RPCCodeSource{client: client}, nil
}

// NewRPCCodeSource wraps an existing client.
func NewRPCCodeSource(client *ethclient.Client) *RPCCodeSource {
	return &RPCCodeSource{client: client}
}

func (s *RPCCodeSource) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	return s.client.CodeAt(ctx, address, s.Block)
}

// Close closes the underlying client.
func (s *RPCCodeSource) Close() {
	s.client.Close()
}

// CachedCodeSource memoizes another source. Fetch errors are not cached,
// so a flaky transport can recover on the next ask.
type CachedCodeSource struct {
	inner evminspector.CodeSource
	cache *lru.Cache[common.Address, []byte]
}

// NewCachedCodeSource wraps inner with an LRU cache of the given size.
func NewCachedCodeSource(inner evminspector.CodeSource, size int) (*CachedCodeSource, error) {
	cache, err := lru.New[common.Address, []byte](size)
	if err != nil {
		return nil, errors.Load("create code cache", err)
	}
	return &CachedCodeSource{inner: inner, cache: cache}, nil
}

func (s *CachedCodeSource) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	if code, ok := s.cache.Get(address); ok {
		return code, nil
	}
	code, err := s.inner.CodeAt(ctx, address)
	if err != nil {
		return nil, err
	}
	s.cache.Add(address, code)
	return code, nil
}

// Len reports how many addresses are cached.
func (s *CachedCodeSource) Len() int {
	return s.cache.Len()
}
