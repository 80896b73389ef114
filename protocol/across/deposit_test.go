package across_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/consts"
	"github.com/mrdnfinance/x402-across/chains/evm/calls/events"
	"github.com/mrdnfinance/x402-across/protocol/across"
	mock_across "github.com/mrdnfinance/x402-across/protocol/across/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func depositLog(depositID int64) *types.Log {
	data, _ := consts.SpokePoolABI.Events["FundsDeposited"].Inputs.NonIndexed().Pack(
		common.BytesToHash(common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e").Bytes()),
		common.BytesToHash(common.HexToAddress("0x5fd84259d66Cd46123540766Be93DFE6D43130D7").Bytes()),
		big.NewInt(1000000),
		big.NewInt(995000),
		uint32(1700000000),
		uint32(1700001800),
		uint32(0),
		common.BytesToHash(common.HexToAddress("0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1").Bytes()),
		common.Hash{},
		[]byte{},
	)

	return &types.Log{
		Topics: []common.Hash{
			events.AcrossDepositSig.GetTopic(),
			common.BigToHash(big.NewInt(11155420)),
			common.BigToHash(big.NewInt(depositID)),
			common.BytesToHash(common.HexToAddress("0xe72163ccCD6e7E2d5aC27a23A9496c481080AcA1").Bytes()),
		},
		Data: data,
	}
}

type DepositFetcherTestSuite struct {
	suite.Suite

	mockClient *mock_across.MockEventFilterer
	fetcher    *across.AcrossDepositFetcher
}

func TestRunDepositFetcherTestSuite(t *testing.T) {
	suite.Run(t, new(DepositFetcherTestSuite))
}

func (s *DepositFetcherTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockClient = mock_across.NewMockEventFilterer(ctrl)
	s.fetcher = across.NewAcrossDepositFetcher(s.mockClient)
}

func (s *DepositFetcherTestSuite) Test_EventSignatureMatchesABI() {
	s.Equal(consts.SpokePoolABI.Events["FundsDeposited"].ID, events.AcrossDepositSig.GetTopic())
}

func (s *DepositFetcherTestSuite) Test_Deposit_ReceiptError() {
	s.mockClient.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, errors.New("not found"))

	_, err := s.fetcher.Deposit(context.Background(), common.Hash{})

	s.NotNil(err)
}

func (s *DepositFetcherTestSuite) Test_Deposit_NoDepositLog() {
	s.mockClient.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&types.Receipt{
		Logs: []*types.Log{{Topics: []common.Hash{common.HexToHash("0x1")}}},
	}, nil)

	_, err := s.fetcher.Deposit(context.Background(), common.Hash{})

	s.NotNil(err)
}

func (s *DepositFetcherTestSuite) Test_Deposit_ValidLog() {
	removed := depositLog(1)
	removed.Removed = true
	s.mockClient.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&types.Receipt{
		Logs: []*types.Log{removed, depositLog(42)},
	}, nil)

	d, err := s.fetcher.Deposit(context.Background(), common.Hash{})

	s.Nil(err)
	s.Equal(big.NewInt(42), d.DepositId)
	s.Equal(big.NewInt(11155420), d.DestinationChainId)
	s.Equal(big.NewInt(995000), d.OutputAmount)
	s.Equal(uint32(1700001800), d.FillDeadline)
}

type FillWatcherTestSuite struct {
	suite.Suite

	mockClient *mock_across.MockEventFilterer
	watcher    *across.FillWatcher
	spokePool  common.Address
}

func TestRunFillWatcherTestSuite(t *testing.T) {
	suite.Run(t, new(FillWatcherTestSuite))
}

func (s *FillWatcherTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockClient = mock_across.NewMockEventFilterer(ctrl)
	s.spokePool = common.HexToAddress("0x4e8E101924eDE233C13e2D8622DC8aED2872d505")
	s.watcher = across.NewFillWatcher(s.mockClient, s.spokePool, time.Millisecond)
}

func (s *FillWatcherTestSuite) Test_WaitForFill_Timeout() {
	s.mockClient.EXPECT().LatestBlock().Return(nil, errors.New("error")).AnyTimes()
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
	defer cancel()

	_, err := s.watcher.WaitForFill(ctx, 84532, big.NewInt(42))

	s.NotNil(err)
}

func (s *FillWatcherTestSuite) Test_WaitForFill_FoundAfterPolling() {
	fillHash := common.HexToHash("0xf111")
	s.mockClient.EXPECT().LatestBlock().Return(big.NewInt(1000), nil)
	s.mockClient.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
			s.Equal(big.NewInt(1000-across.FILL_LOOKBACK_BLOCKS), q.FromBlock)
			s.Equal([]common.Address{s.spokePool}, q.Addresses)
			s.Equal(events.AcrossFillSig.GetTopic(), q.Topics[0][0])
			s.Equal(common.BigToHash(big.NewInt(84532)), q.Topics[1][0])
			s.Equal(common.BigToHash(big.NewInt(42)), q.Topics[2][0])
			return []types.Log{}, nil
		})
	s.mockClient.EXPECT().LatestBlock().Return(big.NewInt(1000), nil)
	s.mockClient.EXPECT().LatestBlock().Return(big.NewInt(1002), nil)
	s.mockClient.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
			s.Equal(big.NewInt(1001), q.FromBlock)
			return []types.Log{{TxHash: fillHash}}, nil
		})

	hash, err := s.watcher.WaitForFill(context.Background(), 84532, big.NewInt(42))

	s.Nil(err)
	s.Equal(fillHash, hash)
}

func (s *FillWatcherTestSuite) Test_WaitForFill_CancelledDuringPoll() {
	watcher := across.NewFillWatcher(s.mockClient, s.spokePool, 3*time.Second)
	s.mockClient.EXPECT().LatestBlock().Return(big.NewInt(1000), nil).AnyTimes()
	s.mockClient.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{}, nil).AnyTimes()
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	_, err := watcher.WaitForFill(ctx, 84532, big.NewInt(1))

	s.ErrorIs(err, context.Canceled)
	s.Less(time.Since(start), time.Second)
}
