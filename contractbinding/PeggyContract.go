package contractbinding

import (
	"errors"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PeggyMetaData contains the subset of the Peggy contract ABI used by the relayer.
// The binding below follows abigen output, trimmed to the calls and the event the relayer reads.
var PeggyMetaData = &bind.MetaData{
	ABI: `[
{"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"_newValsetNonce","type":"uint256"},{"indexed":false,"internalType":"address[]","name":"_validators","type":"address[]"},{"indexed":false,"internalType":"uint256[]","name":"_powers","type":"uint256[]"}],"name":"ValsetUpdatedEvent","type":"event"},
{"inputs":[],"name":"state_lastValsetNonce","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"state_lastValsetCheckpoint","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"state_powerThreshold","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[],"name":"state_peggyId","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"_erc20Address","type":"address"}],"name":"lastBatchNonce","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address[]","name":"_newValidators","type":"address[]"},{"internalType":"uint256[]","name":"_newPowers","type":"uint256[]"},{"internalType":"uint256","name":"_newValsetNonce","type":"uint256"},{"internalType":"address[]","name":"_currentValidators","type":"address[]"},{"internalType":"uint256[]","name":"_currentPowers","type":"uint256[]"},{"internalType":"uint256","name":"_currentValsetNonce","type":"uint256"},{"internalType":"uint8[]","name":"_v","type":"uint8[]"},{"internalType":"bytes32[]","name":"_r","type":"bytes32[]"},{"internalType":"bytes32[]","name":"_s","type":"bytes32[]"}],"name":"updateValset","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"address[]","name":"_currentValidators","type":"address[]"},{"internalType":"uint256[]","name":"_currentPowers","type":"uint256[]"},{"internalType":"uint256","name":"_currentValsetNonce","type":"uint256"},{"internalType":"uint8[]","name":"_v","type":"uint8[]"},{"internalType":"bytes32[]","name":"_r","type":"bytes32[]"},{"internalType":"bytes32[]","name":"_s","type":"bytes32[]"},{"internalType":"uint256[]","name":"_amounts","type":"uint256[]"},{"internalType":"address[]","name":"_destinations","type":"address[]"},{"internalType":"uint256[]","name":"_fees","type":"uint256[]"},{"internalType":"uint256","name":"_batchNonce","type":"uint256"},{"internalType":"address","name":"_tokenContract","type":"address"}],"name":"submitBatch","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`,
}

// Peggy is a Go binding around the Peggy bridge contract.
type Peggy struct {
	PeggyCaller
	PeggyTransactor
	PeggyFilterer
}

type PeggyCaller struct {
	contract *bind.BoundContract
}

type PeggyTransactor struct {
	contract *bind.BoundContract
}

type PeggyFilterer struct {
	contract *bind.BoundContract
}

func NewPeggy(address common.Address, backend bind.ContractBackend) (*Peggy, error) {
	contract, err := bindPeggy(address, backend, backend, backend)
	if err != nil {
		return nil, err
	}

	return &Peggy{
		PeggyCaller:     PeggyCaller{contract: contract},
		PeggyTransactor: PeggyTransactor{contract: contract},
		PeggyFilterer:   PeggyFilterer{contract: contract},
	}, nil
}

func bindPeggy(
	address common.Address, caller bind.ContractCaller, transactor bind.ContractTransactor, filterer bind.ContractFilterer,
) (*bind.BoundContract, error) {
	parsed, err := PeggyMetaData.GetAbi()
	if err != nil {
		return nil, err
	}

	return bind.NewBoundContract(address, *parsed, caller, transactor, filterer), nil
}

func (_Peggy *PeggyCaller) callUint256(opts *bind.CallOpts, method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}

	if err := _Peggy.contract.Call(opts, &out, method, params...); err != nil {
		return new(big.Int), err
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (_Peggy *PeggyCaller) callBytes32(opts *bind.CallOpts, method string) ([32]byte, error) {
	var out []interface{}

	if err := _Peggy.contract.Call(opts, &out, method); err != nil {
		return [32]byte{}, err
	}

	return *abi.ConvertType(out[0], new([32]byte)).(*[32]byte), nil
}

// StateLastValsetNonce is a free data retrieval call binding the contract method state_lastValsetNonce.
func (_Peggy *PeggyCaller) StateLastValsetNonce(opts *bind.CallOpts) (*big.Int, error) {
	return _Peggy.callUint256(opts, "state_lastValsetNonce")
}

// LastBatchNonce is a free data retrieval call binding the contract method lastBatchNonce.
func (_Peggy *PeggyCaller) LastBatchNonce(opts *bind.CallOpts, erc20Address common.Address) (*big.Int, error) {
	return _Peggy.callUint256(opts, "lastBatchNonce", erc20Address)
}

func (_Peggy *PeggyCaller) StatePowerThreshold(opts *bind.CallOpts) (*big.Int, error) {
	return _Peggy.callUint256(opts, "state_powerThreshold")
}

func (_Peggy *PeggyCaller) StateLastValsetCheckpoint(opts *bind.CallOpts) ([32]byte, error) {
	return _Peggy.callBytes32(opts, "state_lastValsetCheckpoint")
}

func (_Peggy *PeggyCaller) StatePeggyId(opts *bind.CallOpts) ([32]byte, error) {
	return _Peggy.callBytes32(opts, "state_peggyId")
}

// RawTransact sends already packed call data to the contract.
func (_Peggy *PeggyTransactor) RawTransact(opts *bind.TransactOpts, calldata []byte) (*types.Transaction, error) {
	return _Peggy.contract.RawTransact(opts, calldata)
}

// PeggyValsetUpdatedEvent represents a ValsetUpdatedEvent event raised by the Peggy contract.
type PeggyValsetUpdatedEvent struct {
	NewValsetNonce *big.Int
	Validators     []common.Address
	Powers         []*big.Int
	Raw            types.Log
}

// PeggyValsetUpdatedEventIterator is returned from FilterValsetUpdatedEvent and is used to iterate over
// the raw logs and unpacked data for ValsetUpdatedEvent events raised by the Peggy contract.
type PeggyValsetUpdatedEventIterator struct {
	Event *PeggyValsetUpdatedEvent

	contract *bind.BoundContract
	event    string

	logs chan types.Log
	sub  ethereum.Subscription
	done bool
	fail error
}

func (it *PeggyValsetUpdatedEventIterator) Next() bool {
	if it.fail != nil {
		return false
	}

	if it.done {
		select {
		case log := <-it.logs:
			return it.unpack(log)
		default:
			return false
		}
	}

	select {
	case log := <-it.logs:
		return it.unpack(log)
	case err := <-it.sub.Err():
		it.done = true
		it.fail = err

		return it.Next()
	}
}

func (it *PeggyValsetUpdatedEventIterator) unpack(log types.Log) bool {
	it.Event = new(PeggyValsetUpdatedEvent)
	if err := it.contract.UnpackLog(it.Event, it.event, log); err != nil {
		it.fail = err

		return false
	}

	it.Event.Raw = log

	return true
}

func (it *PeggyValsetUpdatedEventIterator) Error() error {
	return it.fail
}

func (it *PeggyValsetUpdatedEventIterator) Close() error {
	it.sub.Unsubscribe()

	return nil
}

// FilterValsetUpdatedEvent is a free log retrieval operation binding the contract event ValsetUpdatedEvent.
func (_Peggy *PeggyFilterer) FilterValsetUpdatedEvent(
	opts *bind.FilterOpts, newValsetNonce []*big.Int,
) (*PeggyValsetUpdatedEventIterator, error) {
	var newValsetNonceRule []interface{}
	for _, item := range newValsetNonce {
		newValsetNonceRule = append(newValsetNonceRule, item)
	}

	logs, sub, err := _Peggy.contract.FilterLogs(opts, "ValsetUpdatedEvent", newValsetNonceRule)
	if err != nil {
		return nil, err
	}

	return &PeggyValsetUpdatedEventIterator{
		contract: _Peggy.contract, event: "ValsetUpdatedEvent", logs: logs, sub: sub,
	}, nil
}

var errNoPeggyMethod = errors.New("peggy abi method not found")

// PackPeggyCall packs a call to one of the Peggy contract write methods.
func PackPeggyCall(method string, args ...interface{}) ([]byte, error) {
	parsed, err := PeggyMetaData.GetAbi()
	if err != nil {
		return nil, err
	}

	if _, exists := parsed.Methods[method]; !exists {
		return nil, errNoPeggyMethod
	}

	return parsed.Pack(method, args...)
}
