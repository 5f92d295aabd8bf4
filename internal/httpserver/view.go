// internal/httpserver/view.go
//
// JSON shape of a round as clients see it. The hidden word never leaves the
// server while a round is live: clients get its vowel mask, letter count and
// vowel count. Related words are withheld for the same reason.

package httpserver

import (
	"github.com/amithcabraal/qw-chain-20/internal/game"
	"github.com/amithcabraal/qw-chain-20/internal/words"
)

// linkView is one chain word.
type linkView struct {
	Word        string   `json:"word"`
	Definitions []string `json:"definitions"`
}

type roundView struct {
	GameID           string     `json:"gameId"`
	Mode             string     `json:"mode"`
	Round            uint64     `json:"round"`
	Status           string     `json:"status"`
	StartWord        string     `json:"startWord,omitempty"`
	Chain            []linkView `json:"chain"`
	Mask             string     `json:"mask,omitempty"`
	Letters          int        `json:"letters,omitempty"`
	Vowels           int        `json:"vowels,omitempty"`
	Remaining        int        `json:"remaining"`
	Score            int        `json:"score"`
	Pending          bool       `json:"pending"`
	MissedWord       string     `json:"missedWord,omitempty"`
	MissedDefinition string     `json:"missedWordDefinition,omitempty"`
	Reason           string     `json:"reason,omitempty"`
}

func newRoundView(id, mode string, snap game.Snapshot) roundView {
	v := roundView{
		GameID:           id,
		Mode:             mode,
		Round:            snap.Round,
		Status:           string(snap.Status),
		StartWord:        snap.StartWord,
		Chain:            make([]linkView, len(snap.Chain)),
		Remaining:        snap.Remaining,
		Score:            snap.Score,
		Pending:          snap.Pending,
		MissedWord:       snap.MissedWord,
		MissedDefinition: snap.MissedDefinition,
		Reason:           string(snap.Reason),
	}
	for i, e := range snap.Chain {
		defs := e.Definitions
		if defs == nil {
			defs = []string{}
		}
		v.Chain[i] = linkView{Word: e.Word, Definitions: defs}
	}
	if snap.Status == game.StatusPlaying && snap.Target != "" {
		v.Mask = words.Mask(snap.Target)
		v.Letters = len(snap.Target)
		v.Vowels = words.VowelCount(snap.Target)
	}
	return v
}
