package qiwi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTestPageFailed = errors.New("page failed")

type pageResult struct {
	page *PaymentHistoryData
	err  error
}

// stubFetcher serves pages in order and records the cursors it was given.
type stubFetcher struct {
	results []pageResult
	cursors []*PaginationCursor
}

func (f *stubFetcher) FetchHistoryPage(ctx context.Context, cursor *PaginationCursor) (*PaymentHistoryData, error) {
	f.cursors = append(f.cursors, cursor)

	if len(f.cursors) > len(f.results) {
		return nil, errTestPageFailed
	}

	result := f.results[len(f.cursors)-1]

	return result.page, result.err
}

func page(nextDate *string, nextID *uint64, ids ...uint64) pageResult {
	data := make([]PaymentHistoryEntry, 0, len(ids))
	for _, id := range ids {
		data = append(data, PaymentHistoryEntry{TxnID: id})
	}

	return pageResult{page: &PaymentHistoryData{Data: data, NextTxnDate: nextDate, NextTxnID: nextID}}
}

func ptr[T any](v T) *T {
	return &v
}

func ids(entries []PaymentHistoryEntry) []uint64 {
	out := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.TxnID)
	}

	return out
}

func TestPaymentHistoryIterator_SinglePage(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{page(nil, nil, 1, 2, 3)}}
	it := NewPaymentHistoryIterator(context.Background(), fetcher)

	entries, err := it.All()
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids(entries))
	assert.Equal(t, []*PaginationCursor{nil}, fetcher.cursors)
	assert.Equal(t, 1, it.Pages())
	assert.False(t, it.HasNext())
}

func TestPaymentHistoryIterator_ThreadsCursor(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{
		page(ptr("D1"), ptr(uint64(7)), 1, 2),
		page(ptr("D2"), ptr(uint64(3)), 3),
		page(nil, nil, 4),
	}}
	it := NewPaymentHistoryIterator(context.Background(), fetcher)

	entries, err := it.All()
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4}, ids(entries))
	assert.Equal(t, []*PaginationCursor{
		nil,
		{NextTxnDate: "D1", NextTxnID: 7},
		{NextTxnDate: "D2", NextTxnID: 3},
	}, fetcher.cursors)
}

func TestPaymentHistoryIterator_PartialCursorIsTerminal(t *testing.T) {
	t.Parallel()

	for _, first := range []pageResult{
		page(ptr("D1"), nil, 1),
		page(nil, ptr(uint64(7)), 1),
	} {
		fetcher := &stubFetcher{results: []pageResult{first, page(nil, nil, 2)}}

		entries, err := NewPaymentHistoryIterator(context.Background(), fetcher).All()
		require.NoError(t, err)
		assert.Equal(t, []uint64{1}, ids(entries))
		assert.Len(t, fetcher.cursors, 1)
	}
}

func TestPaymentHistoryIterator_ErrorEndsSequence(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{
		page(ptr("D1"), ptr(uint64(7)), 1, 2),
		{err: errTestPageFailed},
		page(nil, nil, 3),
	}}
	it := NewPaymentHistoryIterator(context.Background(), fetcher)

	entry, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), entry.TxnID)

	entry, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), entry.TxnID)

	assert.True(t, it.HasNext())

	_, err = it.Next()
	require.ErrorIs(t, err, errTestPageFailed)

	assert.False(t, it.HasNext())

	_, err = it.Next()
	require.ErrorIs(t, err, ErrNoMoreItems)
	assert.Len(t, fetcher.cursors, 2)
}

func TestPaymentHistoryIterator_AllReturnsPartialEntries(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{
		page(ptr("D1"), ptr(uint64(7)), 1, 2),
		{err: errTestPageFailed},
	}}

	entries, err := NewPaymentHistoryIterator(context.Background(), fetcher).All()
	require.ErrorIs(t, err, errTestPageFailed)
	assert.Equal(t, []uint64{1, 2}, ids(entries))
}

func TestPaymentHistoryIterator_SkipsEmptyPages(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{
		page(ptr("D1"), ptr(uint64(7))),
		page(ptr("D2"), ptr(uint64(6)), 5),
		page(nil, nil),
	}}
	it := NewPaymentHistoryIterator(context.Background(), fetcher)

	require.True(t, it.HasNext())
	assert.Equal(t, 2, it.Pages())

	entries, err := it.All()
	require.NoError(t, err)
	assert.Equal(t, []uint64{5}, ids(entries))
	assert.Equal(t, 3, it.Pages())
}

func TestPaymentHistoryIterator_EmptyHistory(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{page(nil, nil)}}
	it := NewPaymentHistoryIterator(context.Background(), fetcher)

	assert.False(t, it.HasNext())

	_, err := it.Next()
	require.ErrorIs(t, err, ErrNoMoreItems)
	assert.Len(t, fetcher.cursors, 1)
}

func TestPaymentHistoryIterator_NoRequestUntilPulled(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{page(ptr("D1"), ptr(uint64(7)), 1, 2)}}
	it := NewPaymentHistoryIterator(context.Background(), fetcher)
	assert.Empty(t, fetcher.cursors)

	_, err := it.Next()
	require.NoError(t, err)
	_, err = it.Next()
	require.NoError(t, err)
	assert.Len(t, fetcher.cursors, 1)
}

func TestPaymentHistoryIterator_NilPage(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{{}}}

	_, err := NewPaymentHistoryIterator(context.Background(), fetcher).All()
	require.ErrorIs(t, err, ErrUnsupportedPayload)
}

func TestPaymentHistoryIterator_ForEachStopsOnCallbackError(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{results: []pageResult{
		page(ptr("D1"), ptr(uint64(7)), 1, 2),
		page(nil, nil, 3),
	}}

	var seen []uint64

	err := NewPaymentHistoryIterator(context.Background(), fetcher).ForEach(func(entry PaymentHistoryEntry) error {
		seen = append(seen, entry.TxnID)

		return errTestPageFailed
	})
	require.ErrorIs(t, err, errTestPageFailed)
	assert.Equal(t, []uint64{1}, seen)
	assert.Len(t, fetcher.cursors, 1)
}
