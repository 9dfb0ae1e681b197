package render

import (
	"fmt"

	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/engine"
)

// StatusLine is the one-line HUD summary shared by the front ends.
func StatusLine(st engine.Status) string {
	return fmt.Sprintf("Wave %d  Enemies %d  Score %d  Credits %d  Best %d",
		st.Wave, st.EnemiesRemaining, int(st.Score), int(st.Credits), int(st.BestScore))
}

// OverlayLines returns the centred panel for the current state, title first.
// Playing has no panel.
func OverlayLines(st engine.Status, banner *engine.Banner, offers []economy.Offer) []string {
	switch st.State {
	case engine.StateMenu:
		return []string{"CRYSTAL RAIDERS", "Press Enter to start"}
	case engine.StateGameOver:
		return []string{
			"GAME OVER",
			fmt.Sprintf("Score %d  Wave %d  Best %d", int(st.FinalScore), st.FinalWave, int(st.BestScore)),
			"Press R to retry",
		}
	case engine.StateShopping:
		lines := []string{fmt.Sprintf("SHOP  Credits %d", int(st.Credits))}
		for i, o := range offers {
			mark := " "
			if o.Affordable {
				mark = "*"
			}
			lines = append(lines, fmt.Sprintf("%s%d %-18s %4d  %s", mark, i+1, o.Title, int(o.Cost), o.Description))
		}
		return lines
	case engine.StateBetweenWaves:
		if banner != nil {
			return []string{banner.Title, banner.Subtitle}
		}
	}
	return nil
}

// HelpLine lists the keys that do something in state.
func HelpLine(state engine.State) string {
	switch state {
	case engine.StatePlaying:
		return "WASD/arrows move  Space/click fire  Q quit"
	case engine.StateBetweenWaves:
		return "Enter next wave  B shop  Q quit"
	case engine.StateShopping:
		return "1-7 buy  Esc close shop  Q quit"
	case engine.StateGameOver:
		return "R retry  Q quit"
	default:
		return "Enter start  Q quit"
	}
}
