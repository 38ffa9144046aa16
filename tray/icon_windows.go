//go:build windows

package tray

import "battray/icon"

// Windows LoadImage wants ICO, everyone else takes the PNG as-is.
func platformIcon(pngData []byte) []byte {
	ico, err := icon.EncodeICO(pngData)
	if err != nil {
		return pngData
	}
	return ico
}
