package disclosures

import (
	"sync"

	"malobby-backend/lib/scrapers/masslobby"
)

// Collections are the nine per-entity outputs of a batch run.
type Collections struct {
	Reports            []masslobby.DisclosureReport
	Lobbyists          []masslobby.Lobbyist
	Clients            []masslobby.Client
	Compensations      []masslobby.Compensation
	Activities         []masslobby.Activity
	METExpenses        []masslobby.METExpense
	OperatingExpenses  []masslobby.OperatingExpense
	AdditionalExpenses []masslobby.AdditionalExpense
	Contributions      []masslobby.Contribution
}

// Aggregator merges per-document bundles into batch-wide collections.
// Extraction itself is stateless; this is the one place with shared
// mutable state, so appends are serialized behind a mutex.
type Aggregator struct {
	mu sync.Mutex
	c  Collections

	seenLobbyists map[string]bool
	seenClients   map[string]bool
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		seenLobbyists: map[string]bool{},
		seenClients:   map[string]bool{},
	}
}

func (a *Aggregator) Add(b masslobby.Bundle) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.c.Reports = append(a.c.Reports, b.Report)

	// one document yields one primary record; a repeated disclosure id
	// means a reprocessed file, first-seen wins
	if b.Lobbyist != nil && !a.seenLobbyists[b.Lobbyist.DisclosureID] {
		a.seenLobbyists[b.Lobbyist.DisclosureID] = true
		a.c.Lobbyists = append(a.c.Lobbyists, *b.Lobbyist)
	}
	if b.Client != nil && !a.seenClients[b.Client.DisclosureID] {
		a.seenClients[b.Client.DisclosureID] = true
		a.c.Clients = append(a.c.Clients, *b.Client)
	}

	a.c.Compensations = append(a.c.Compensations, b.Compensations...)
	a.c.Activities = append(a.c.Activities, b.Activities...)
	a.c.METExpenses = append(a.c.METExpenses, b.METExpenses...)
	a.c.OperatingExpenses = append(a.c.OperatingExpenses, b.OperatingExpenses...)
	a.c.AdditionalExpenses = append(a.c.AdditionalExpenses, b.AdditionalExpenses...)
	a.c.Contributions = append(a.c.Contributions, b.Contributions...)
}

func (a *Aggregator) Collections() Collections {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.c
}
