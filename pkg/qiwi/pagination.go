package qiwi

import (
	"context"
	"errors"
	"fmt"
)

// HistoryPageSize is the fixed number of rows requested per history page.
const HistoryPageSize = 50

// PaginationCursor resumes the payment history listing. It is only
// meaningful to the listing that produced it and is sent back unmodified.
type PaginationCursor struct {
	NextTxnDate string
	NextTxnID   uint64
}

// HistoryPageFetcher fetches one page of the payment history. cursor is
// nil for the first page.
type HistoryPageFetcher interface {
	FetchHistoryPage(ctx context.Context, cursor *PaginationCursor) (*PaymentHistoryData, error)
}

type iteratorState int

const (
	stateStart iteratorState = iota
	stateFetching
	stateDone
)

// PaymentHistoryIterator walks the payment history across pages.
//
// Pages are fetched on demand, one at a time. Every entry of a fetched
// page is returned, in server order, before the next page is requested.
// A failed fetch is returned once by Next and ends the iteration; entries
// already returned stay valid. An iterator is not safe for concurrent use.
type PaymentHistoryIterator struct {
	ctx     context.Context
	fetcher HistoryPageFetcher
	state   iteratorState
	cursor  *PaginationCursor
	buffer  []PaymentHistoryEntry
	err     error
	pages   int
}

// NewPaymentHistoryIterator creates an iterator in its start state. No
// request is made until HasNext, Next, ForEach or All is called.
func NewPaymentHistoryIterator(ctx context.Context, fetcher HistoryPageFetcher) *PaymentHistoryIterator {
	return &PaymentHistoryIterator{
		ctx:     ctx,
		fetcher: fetcher,
		state:   stateStart,
	}
}

// HasNext reports whether Next will return an entry or a pending error.
// It may fetch the next page.
func (it *PaymentHistoryIterator) HasNext() bool {
	it.fill()

	return len(it.buffer) > 0 || it.err != nil
}

// Next returns the next entry. After the last entry it returns
// ErrNoMoreItems; after a failed page fetch it returns that error once and
// ErrNoMoreItems afterwards.
func (it *PaymentHistoryIterator) Next() (PaymentHistoryEntry, error) {
	it.fill()

	if len(it.buffer) > 0 {
		entry := it.buffer[0]
		it.buffer = it.buffer[1:]

		return entry, nil
	}

	if it.err != nil {
		err := it.err
		it.err = nil

		return PaymentHistoryEntry{}, err
	}

	return PaymentHistoryEntry{}, ErrNoMoreItems
}

// Pages returns the number of page requests issued so far.
func (it *PaymentHistoryIterator) Pages() int {
	return it.pages
}

// ForEach calls fn for every entry until the history ends, fn returns an
// error, or a page fetch fails.
func (it *PaymentHistoryIterator) ForEach(fn func(PaymentHistoryEntry) error) error {
	for {
		entry, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(entry)
		if err != nil {
			return err
		}
	}
}

// All collects the remaining entries. On failure it returns the entries
// collected before the error together with the error.
func (it *PaymentHistoryIterator) All() ([]PaymentHistoryEntry, error) {
	var entries []PaymentHistoryEntry

	err := it.ForEach(func(entry PaymentHistoryEntry) error {
		entries = append(entries, entry)

		return nil
	})

	return entries, err
}

// fill fetches pages until there is something to return or the history
// has ended. Empty pages with a cursor are skipped.
func (it *PaymentHistoryIterator) fill() {
	for len(it.buffer) == 0 && it.err == nil && it.state != stateDone {
		it.fetchPage()
	}
}

func (it *PaymentHistoryIterator) fetchPage() {
	if it.state == stateStart {
		it.state = stateFetching
		it.cursor = nil
	}

	// A cursor is used for a single request.
	cursor := it.cursor
	it.cursor = nil
	it.pages++

	page, err := it.fetcher.FetchHistoryPage(it.ctx, cursor)
	if err != nil {
		it.err = err
		it.state = stateDone

		return
	}

	if page == nil {
		it.err = fmt.Errorf("fetching history page %d: %w", it.pages, ErrUnsupportedPayload)
		it.state = stateDone

		return
	}

	it.buffer = page.Data

	next := page.Cursor()
	if next == nil {
		it.state = stateDone

		return
	}

	it.cursor = next
}
