package hxregion

// SwapMode defines how a shown child is placed relative to the region's
// element. The names follow the matching hx-swap values.
type SwapMode string

const (
	// SwapInner replaces the element's contents with the child (innerHTML).
	// This is the default swap mode.
	SwapInner SwapMode = "innerHTML"

	// SwapOuter replaces the element itself with the child (outerHTML).
	// The element is put back when the region is emptied, so the region
	// can be shown into again.
	SwapOuter SwapMode = "outerHTML"
)

// parseSwapMode reads a swap mode from a definition option value.
func parseSwapMode(v any) (SwapMode, bool) {
	switch m := v.(type) {
	case SwapMode:
		return m, m == SwapInner || m == SwapOuter
	case string:
		return parseSwapMode(SwapMode(m))
	case bool:
		// replaceElement: true
		if m {
			return SwapOuter, true
		}
		return SwapInner, true
	}
	return "", false
}
