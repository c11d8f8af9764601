package game

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// NameRegistry is a texture lookup that only tracks which names exist.
//
// The terminal front end and headless tools have no GPU textures; they still
// need the same "known name / missing name" answers as ResourceManager so
// that the particle system behaves identically.
type NameRegistry struct {
	names map[string]struct{}
}

// NewNameRegistry 用给定名字创建注册表
func NewNameRegistry(names ...string) *NameRegistry {
	r := &NameRegistry{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		r.Register(name)
	}
	return r
}

// NameRegistryFromGroup 注册资源组中的全部资源 ID
func NameRegistryFromGroup(group ResourceGroup) *NameRegistry {
	r := NewNameRegistry()
	for _, img := range group.Images {
		r.Register(img.ID)
	}
	return r
}

// Register 注册名字
func (r *NameRegistry) Register(name string) {
	r.names[name] = struct{}{}
}

// Has 名字是否已注册
func (r *NameRegistry) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// GetTexture returns a nil image with ok reporting whether name is known.
func (r *NameRegistry) GetTexture(name string) (*ebiten.Image, bool) {
	return nil, r.Has(name)
}

// Names 已注册名字（排序）
func (r *NameRegistry) Names() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
