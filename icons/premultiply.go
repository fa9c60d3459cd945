// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: icons/premultiply.go
// Summary: Straight to premultiplied alpha conversion.

package icons

// premultiply converts straight RGBA pixels in place. Each channel becomes
// round(x*a/255) using the exact integer form, so color never exceeds alpha.
func premultiply(pix []uint8) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint16(pix[i+3])
		for c := 0; c < 3; c++ {
			t := uint16(pix[i+c])*a + 127
			pix[i+c] = uint8((t + (t >> 8) + 1) >> 8)
		}
	}
}
