package render

import (
	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/engine"
)

// Command is a discrete player request that is not part of per-tick intent.
type Command int

// Commands shared by every front end.
const (
	CommandNone Command = iota
	CommandQuit
	CommandConfirm   // start, next wave, leave shop or retry depending on state
	CommandOpenShop  // between waves only
	CommandCloseShop // back to the wave banner
	CommandBuy       // Action.UpgradeID names the item
	CommandRetry     // game over only
)

// Action is a Command with its argument.
type Action struct {
	Command   Command
	UpgradeID string
}

// BuySlot returns the purchase action for the 1-based shop slot, or a no-op
// when the slot is out of range.
func BuySlot(slot int) Action {
	if slot < 1 || slot > len(economy.Catalog) {
		return Action{}
	}
	return Action{Command: CommandBuy, UpgradeID: economy.Catalog[slot-1].ID}
}

// Dispatch applies a to g. It reports false when the action asks to quit.
// Requests the current state does not allow are ignored by the Game.
func Dispatch(g *engine.Game, a Action) bool {
	switch a.Command {
	case CommandQuit:
		return false
	case CommandConfirm:
		switch g.State() {
		case engine.StateMenu:
			g.StartRun()
		case engine.StateBetweenWaves:
			g.StartNextWave()
		case engine.StateShopping:
			g.CloseShop()
		case engine.StateGameOver:
			g.RetryRun()
		}
	case CommandOpenShop:
		g.OpenShop()
	case CommandCloseShop:
		g.CloseShop()
	case CommandBuy:
		g.Purchase(a.UpgradeID)
	case CommandRetry:
		if g.State() == engine.StateGameOver {
			g.RetryRun()
		}
	}
	return true
}
