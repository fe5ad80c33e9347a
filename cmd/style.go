package main

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/token-ring/game"
	"github.com/luca-patrignani/token-ring/ledger"
)

func summaryData(out game.Outcome) pterm.TableData {
	eliminatedAt := make(map[int]int)
	for i, e := range out.Ledger.Events(ledger.EventEliminated) {
		eliminatedAt[e.Subject] = i + 1
	}
	data := pterm.TableData{{"Actor", "Identity", "Outcome", "Eliminated"}}
	for _, r := range out.Results {
		round := "-"
		if at, ok := eliminatedAt[r.Index]; ok {
			round = strconv.Itoa(at)
		}
		data = append(data, []string{strconv.Itoa(r.Index), r.Identity.Short(), completion(r.Completion), round})
	}
	return data
}

func completion(c game.Completion) string {
	switch c {
	case game.Won:
		return pterm.LightGreen(c.String())
	case game.Lost:
		return pterm.LightRed(c.String())
	default:
		return pterm.Gray(c.String())
	}
}

func printSummary(out game.Outcome) {
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(summaryData(out)).Render()
	tokens := len(out.Ledger.Events(ledger.EventToken))
	leaders := len(out.Ledger.Events(ledger.EventLeader))
	pterm.Info.Printfln("session %s: %d token draws, %d leader elections, %d ledger blocks",
		out.Session, tokens, leaders, len(out.Ledger.Blocks()))
}
