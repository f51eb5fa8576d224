package disclosures

import (
	"testing"

	"malobby-backend/lib/scrapers/masslobby"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAggregatorDedupesPrimaries(t *testing.T) {
	agg := NewAggregator()

	first := masslobby.Bundle{
		Report: masslobby.DisclosureReport{
			DisclosureID: "dup", ReportType: masslobby.ReportTypeLobbyist,
		},
		Lobbyist: &masslobby.Lobbyist{DisclosureID: "dup", FirstName: "First"},
	}
	second := masslobby.Bundle{
		Report: masslobby.DisclosureReport{
			DisclosureID: "dup", ReportType: masslobby.ReportTypeLobbyist,
		},
		Lobbyist: &masslobby.Lobbyist{DisclosureID: "dup", FirstName: "Second"},
	}

	agg.Add(first)
	agg.Add(second)

	c := agg.Collections()
	require.Len(t, c.Lobbyists, 1)
	require.Equal(t, "First", c.Lobbyists[0].FirstName)
}

func TestAggregatorConcatenatesDependents(t *testing.T) {
	agg := NewAggregator()

	agg.Add(masslobby.Bundle{
		Report: masslobby.DisclosureReport{DisclosureID: "a"},
		Activities: []masslobby.Activity{
			{DisclosureID: "a", BillOrAgency: "1"},
		},
		METExpenses: []masslobby.METExpense{
			{DisclosureID: "a", LobbyistName: "x"},
		},
	})
	agg.Add(masslobby.Bundle{
		Report: masslobby.DisclosureReport{DisclosureID: "b"},
		Activities: []masslobby.Activity{
			{DisclosureID: "b", BillOrAgency: "2"},
			{DisclosureID: "b", BillOrAgency: "3"},
		},
	})

	c := agg.Collections()
	require.Len(t, c.Reports, 2)
	require.Len(t, c.METExpenses, 1)

	want := []masslobby.Activity{
		{DisclosureID: "a", BillOrAgency: "1"},
		{DisclosureID: "b", BillOrAgency: "2"},
		{DisclosureID: "b", BillOrAgency: "3"},
	}
	if diff := cmp.Diff(want, c.Activities); diff != "" {
		t.Fatalf("activities mismatch (-want +got):\n%s", diff)
	}
}
