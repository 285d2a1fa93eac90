package outwriter

import (
	"os"

	"github.com/huangsam/spacecap/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for country names in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Reg + Region + Overall + Tier + Trend with borders/padding
	baseWidth := 70
	if cfg.Detail {
		baseWidth += 7 * 9 // One score column per category
	}

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
