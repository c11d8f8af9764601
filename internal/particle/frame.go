package particle

import (
	"fmt"
	"math"
)

// FrameIndex maps normalized time to an animation frame: floor(nt * frames).
//
// nt is expected in [0, 1]; nt == 1.0 yields frames itself, which is why the
// texture set holds one more image than the number of animated frames.
func FrameIndex(nt float64, frames int) int {
	idx := int(math.Floor(nt * float64(frames)))
	if idx < 0 {
		return 0
	}
	return idx
}

// TextureName 返回 prefix 加三位补零的帧号，例如 "CoinsGold007"
func TextureName(prefix string, frame int) string {
	return fmt.Sprintf("%s%03d", prefix, frame%1000)
}

// FrameTextureName combines FrameIndex and TextureName.
func FrameTextureName(prefix string, nt float64, frames int) string {
	return TextureName(prefix, FrameIndex(nt, frames))
}
