package game

import "testing"

func TestBuildCoinManifest(t *testing.T) {
	group := BuildCoinManifest("CoinsGold", "gfx/CoinsGold", 9)

	if len(group.Images) != 9 {
		t.Fatalf("images: got %d, want 9", len(group.Images))
	}

	tests := []struct {
		index    int
		wantID   string
		wantPath string
	}{
		{0, "CoinsGold000", "gfx/CoinsGold/000.png"},
		{7, "CoinsGold007", "gfx/CoinsGold/007.png"},
		{8, "CoinsGold008", "gfx/CoinsGold/008.png"},
	}
	for _, tt := range tests {
		img := group.Images[tt.index]
		if img.ID != tt.wantID || img.Path != tt.wantPath {
			t.Errorf("image %d: got (%s, %s), want (%s, %s)", tt.index, img.ID, img.Path, tt.wantID, tt.wantPath)
		}
	}
}

func TestBuildFullPath(t *testing.T) {
	tests := []struct {
		base, rel, want string
	}{
		{"assets", "gfx/CoinsGold/000.png", "assets/gfx/CoinsGold/000.png"},
		{"", "gfx/a.png", "gfx/a.png"},
		{"assets", "/gfx/a.png", "assets/gfx/a.png"},
	}
	for _, tt := range tests {
		if got := buildFullPath(tt.base, tt.rel); got != tt.want {
			t.Errorf("buildFullPath(%q, %q): got %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}
}
