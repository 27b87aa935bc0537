package digest

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	types "github.com/avkozyreva/tg-splitbot/internal/model/bottypes"
)

type readerStub struct {
	chats     []int64
	snapshots map[int64]types.LedgerSnapshot
	failLoad  map[int64]bool
}

func (r *readerStub) LoadSnapshot(_ context.Context, chatID int64) (types.LedgerSnapshot, error) {
	if r.failLoad[chatID] {
		return types.LedgerSnapshot{}, errors.New("db error")
	}
	return r.snapshots[chatID], nil
}

func (r *readerStub) ListChats(_ context.Context) ([]int64, error) {
	return r.chats, nil
}

type posterStub struct {
	sent []types.ChatDigest
}

func (p *posterStub) PostJsonToURL(_ context.Context, _ string, _ string, payload *types.ChatDigest) error {
	p.sent = append(p.sent, *payload)
	return nil
}

func Test_HandleDigestRequest_ShouldBuildAndPostDigest(t *testing.T) {
	reader := &readerStub{
		snapshots: map[int64]types.LedgerSnapshot{
			123: {
				ChatID: 123,
				Expenses: []types.ExpenseRecord{
					{UserName: "alice", Amount: 100, Category: "food", Period: time.Now()},
				},
			},
		},
	}
	poster := &posterStub{}
	model := New(reader, poster, "http://localhost:7002/digest", "secret")

	err := model.HandleDigestRequest(context.Background(), "123", "digest")

	assert.NoError(t, err)
	assert.Len(t, poster.sent, 1)
	assert.Equal(t, int64(123), poster.sent[0].ChatID)
	assert.NotEmpty(t, poster.sent[0].Periods)
}

func Test_HandleDigestRequest_ShouldIgnoreBadKey(t *testing.T) {
	poster := &posterStub{}
	model := New(&readerStub{}, poster, "url", "secret")

	// Некорректные сообщения не считаются ошибкой и не останавливают консьюмер.
	assert.NoError(t, model.HandleDigestRequest(context.Background(), "", "digest"))
	assert.NoError(t, model.HandleDigestRequest(context.Background(), "abc", "digest"))
	assert.Empty(t, poster.sent)
}

func Test_RunDigestForAllChats_ShouldContinueAfterChatError(t *testing.T) {
	reader := &readerStub{
		chats: []int64{1, 2, 3},
		snapshots: map[int64]types.LedgerSnapshot{
			1: {ChatID: 1},
			3: {ChatID: 3},
		},
		failLoad: map[int64]bool{2: true},
	}
	poster := &posterStub{}
	model := New(reader, poster, "url", "secret")

	err := model.RunDigestForAllChats(context.Background())

	// Ошибка по одному чату возвращается, но не прерывает рассылку остальным.
	assert.Error(t, err)
	assert.Len(t, poster.sent, 2)
}
