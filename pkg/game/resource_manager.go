package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"path"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/decker502/coinburst/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	// ErrResourceConfigNotLoaded LoadResourceConfig 尚未调用
	ErrResourceConfigNotLoaded = errors.New("resource config not loaded")
	// ErrGroupNotFound 资源组不存在
	ErrGroupNotFound = errors.New("resource group not found")
)

// maxConcurrentDecodes 并发解码图片的上限
const maxConcurrentDecodes = 4

// ResourceManager is responsible for loading textures and looking them up by
// name.
//
// Images are resolved through a YAML manifest (resource ID -> file path) and
// read from an fs.FS, usually the embedded assets. Loaded textures are keyed
// by resource ID, not by file path, so that effects can ask for
// "CoinsGold003" without knowing where the file lives.
//
// Thread Safety Note:
// LoadResourceGroupAsync decodes on worker goroutines and publishes the whole
// group under a lock once every image has decoded; GetTexture may be called
// from the game loop at any time.
//
// Usage:
//
//	rm := NewResourceManager(assets.FS(), log)
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    return err
//	}
//	done := rm.LoadResourceGroupAsync(ctx, "CoinsGold")
//	// ... poll done from Update
type ResourceManager struct {
	fsys fs.FS
	log  *zap.SugaredLogger

	// newImage converts decoded images to GPU textures; replaced in tests
	newImage func(image.Image) *ebiten.Image

	mu       sync.RWMutex
	textures map[string]*ebiten.Image // texture name -> Image

	// YAML resource configuration
	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup

	loading atomic.Int32
	loaded  atomic.Int32
	total   atomic.Int32
}

// NewResourceManager creates a ResourceManager reading from fsys.
func NewResourceManager(fsys fs.FS, log *zap.SugaredLogger) *ResourceManager {
	return &ResourceManager{
		fsys:        fsys,
		log:         logging.OrNop(log),
		newImage:    ebiten.NewImageFromImage,
		textures:    make(map[string]*ebiten.Image),
		resourceMap: make(map[string]string),
	}
}

// LoadResourceConfig loads and parses the YAML resource manifest at
// configPath (relative to the manager's filesystem).
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := fs.ReadFile(rm.fsys, configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.SetResourceConfig(&config)
	rm.log.Debugw("resource config loaded", "path", configPath, "groups", len(config.Groups))
	return nil
}

// SetResourceConfig installs a manifest built in code (see BuildCoinManifest).
func (rm *ResourceManager) SetResourceConfig(config *ResourceConfig) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.config = config
	rm.buildResourceMap()
}

// AddGroup 添加（或替换）资源组；没有配置时以 basePath 创建一个
func (rm *ResourceManager) AddGroup(basePath, name string, group ResourceGroup) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.config == nil {
		rm.config = &ResourceConfig{Version: "1.0", BasePath: basePath}
	}
	if rm.config.Groups == nil {
		rm.config.Groups = make(map[string]ResourceGroup)
	}
	rm.config.Groups[name] = group
	rm.buildResourceMap()
}

// Group 返回资源组定义
func (rm *ResourceManager) Group(name string) (ResourceGroup, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.groupLocked(name)
}

func (rm *ResourceManager) groupLocked(name string) (ResourceGroup, error) {
	if rm.config == nil {
		return ResourceGroup{}, ErrResourceConfigNotLoaded
	}
	group, ok := rm.config.Groups[name]
	if !ok {
		return ResourceGroup{}, fmt.Errorf("%w: %s", ErrGroupNotFound, name)
	}
	return group, nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
//	CoinsGold000 -> assets/gfx/CoinsGold/000.png
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	if rm.config == nil {
		return
	}
	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if path.Ext(fullPath) == "" {
				fullPath += ".png" // Default to PNG for images
			}
			rm.resourceMap[img.ID] = fullPath
		}
	}
}

// ResolvePath 返回资源 ID 对应的文件路径
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	p, ok := rm.resourceMap[resourceID]
	return p, ok
}

// LoadResourceGroup loads every image of a group and blocks until done.
func (rm *ResourceManager) LoadResourceGroup(ctx context.Context, groupName string) error {
	return <-rm.LoadResourceGroupAsync(ctx, groupName)
}

// LoadResourceGroupAsync starts loading a group in the background and returns
// a channel that receives exactly one value: nil on success or the first
// error. Images are decoded concurrently; textures become visible to
// GetTexture only after the whole group decoded successfully.
func (rm *ResourceManager) LoadResourceGroupAsync(ctx context.Context, groupName string) <-chan error {
	done := make(chan error, 1)

	rm.mu.RLock()
	group, err := rm.groupLocked(groupName)
	paths := make([]string, len(group.Images))
	for i, img := range group.Images {
		p, ok := rm.resourceMap[img.ID]
		if !ok && err == nil {
			err = fmt.Errorf("resource ID not found: %s", img.ID)
		}
		paths[i] = p
	}
	rm.mu.RUnlock()

	if err != nil {
		done <- fmt.Errorf("load group %s: %w", groupName, err)
		close(done)
		return done
	}

	rm.loading.Add(1)
	rm.total.Add(int32(len(group.Images)))
	rm.log.Infow("loading resource group", "group", groupName, "images", len(group.Images))

	go func() {
		defer close(done)
		defer rm.loading.Add(-1)
		err := rm.loadImages(ctx, group.Images, paths)
		if err != nil {
			rm.log.Errorw("resource group failed", "group", groupName, "error", err)
			done <- fmt.Errorf("load group %s: %w", groupName, err)
			return
		}
		rm.log.Infow("resource group loaded", "group", groupName)
		done <- nil
	}()
	return done
}

func (rm *ResourceManager) loadImages(ctx context.Context, images []ImageResource, paths []string) error {
	decoded := make([]image.Image, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDecodes)
	for i := range images {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := rm.decodeImage(paths[i])
			if err != nil {
				return fmt.Errorf("image %s: %w", images[i].ID, err)
			}
			decoded[i] = img
			rm.loaded.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	textures := make(map[string]*ebiten.Image, len(images))
	for i, img := range images {
		textures[img.ID] = rm.newImage(decoded[i])
	}

	rm.mu.Lock()
	for name, tex := range textures {
		rm.textures[name] = tex
	}
	rm.mu.Unlock()
	return nil
}

func (rm *ResourceManager) decodeImage(filePath string) (image.Image, error) {
	file, err := rm.fsys.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", filePath, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filePath, err)
	}
	return img, nil
}

// GetTexture returns the texture registered under name; ok is false when no
// such texture has been loaded.
func (rm *ResourceManager) GetTexture(name string) (*ebiten.Image, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	img, ok := rm.textures[name]
	return img, ok
}

// TextureNames 已加载贴图名（排序）
func (rm *ResourceManager) TextureNames() []string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	names := make([]string, 0, len(rm.textures))
	for name := range rm.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Progress 返回已解码图片数和已请求的图片总数（用于加载界面）
func (rm *ResourceManager) Progress() (loaded, total int) {
	return int(rm.loaded.Load()), int(rm.total.Load())
}

// Loading 是否有资源组正在加载
func (rm *ResourceManager) Loading() bool {
	return rm.loading.Load() > 0
}
