package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/gamedex/internal/igdb"
	"github.com/desertthunder/gamedex/internal/shared"
)

var _ list.Item = candidateItem{}

// candidateItem wraps [igdb.RemotePlatform] to implement [list.Item].
type candidateItem struct {
	platform igdb.RemotePlatform
}

func (i candidateItem) FilterValue() string { return i.platform.Name }
func (i candidateItem) Title() string       { return i.platform.Name }
func (i candidateItem) Description() string {
	desc := fmt.Sprintf("id %d", i.platform.ID)
	if i.platform.Abbreviation != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.platform.Abbreviation)
	}
	if i.platform.Generation > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatGeneration(i.platform.Generation))
	}
	return desc
}
