package game

import (
	"fmt"
	"path"
)

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of images loaded together.
//
// Example from resources.yaml:
//
//	CoinsGold:
//	  images:
//	    - id: CoinsGold000
//	      path: gfx/CoinsGold/000.png
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
}

// ImageResource represents a single image resource definition.
//
// Fields:
//   - ID: texture name used for lookups (e.g., "CoinsGold003")
//   - Path: Relative path from base_path to the image file (".png" is assumed when omitted)
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// CoinGroupName 金币贴图资源组名
const CoinGroupName = "CoinsGold"

// BuildCoinManifest 按命名约定生成贴图资源组：
// prefix + 三位帧号 -> dir/三位帧号.png，帧号 0 ~ count-1
//
// 例如 BuildCoinManifest("CoinsGold", "gfx/CoinsGold", 9) 生成
// CoinsGold000 -> gfx/CoinsGold/000.png ... CoinsGold008 -> gfx/CoinsGold/008.png
func BuildCoinManifest(prefix, dir string, count int) ResourceGroup {
	group := ResourceGroup{Images: make([]ImageResource, 0, count)}
	for i := 0; i < count; i++ {
		num := fmt.Sprintf("%03d", i)
		group.Images = append(group.Images, ImageResource{
			ID:   prefix + num,
			Path: path.Join(dir, num+".png"),
		})
	}
	return group
}

// buildFullPath constructs the full file path for a resource.
// It combines the base path with the resource's relative path.
//
// Parameters:
//   - basePath: The base path from ResourceConfig (e.g., "assets")
//   - relativePath: The resource's relative path (e.g., "gfx/CoinsGold/000.png")
//
// Returns:
//   - The full file path (e.g., "assets/gfx/CoinsGold/000.png")
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	// Simple path joining - handles the case where relative path might start with /
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
