package particle

import "testing"

func TestFrameTextureName(t *testing.T) {
	tests := []struct {
		nt   float64
		want string
	}{
		{0, "CoinsGold000"},
		{0.1, "CoinsGold000"},
		{0.124999, "CoinsGold000"},
		{0.125, "CoinsGold001"},
		{0.5, "CoinsGold004"},
		{0.875, "CoinsGold007"},
		{0.999999, "CoinsGold007"},
		// 只有 nt 恰好为 1.0 时才会出现第 9 张贴图
		{1.0, "CoinsGold008"},
	}

	for _, tt := range tests {
		if got := FrameTextureName("CoinsGold", tt.nt, 8); got != tt.want {
			t.Errorf("FrameTextureName(%v): got %q, want %q", tt.nt, got, tt.want)
		}
	}
}

func TestFrameIndex_NegativeClampsToZero(t *testing.T) {
	if got := FrameIndex(-0.2, 8); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestTextureName_ZeroPadding(t *testing.T) {
	if got := TextureName("CoinsGold", 3); got != "CoinsGold003" {
		t.Errorf("got %q", got)
	}
	if got := TextureName("Coin", 42); got != "Coin042" {
		t.Errorf("got %q", got)
	}
}
