// Package embedded 提供资源文件系统的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量声明在项目根目录（embed.go），由 main 传入 New()。
// 开发时也可以用 FromDir() 直接读取磁盘上的 assets/ 目录。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AssetsPrefix 所有资源路径必须以此开头
const AssetsPrefix = "assets/"

// Assets 资源文件系统
type Assets struct {
	fsys   fs.FS
	source string
}

// New 包装一个包含 assets/ 目录的文件系统（通常是 embed.FS）
func New(fsys fs.FS) *Assets {
	return &Assets{fsys: fsys, source: "embedded"}
}

// FromDir 使用磁盘目录 root（其下包含 assets/）作为资源来源
func FromDir(root string) (*Assets, error) {
	info, err := os.Stat(filepath.Join(root, "assets"))
	if err != nil {
		return nil, fmt.Errorf("asset root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset root %s: assets is not a directory", root)
	}
	return &Assets{fsys: os.DirFS(root), source: root}, nil
}

// FS 返回底层文件系统，路径以 "assets/" 开头
func (a *Assets) FS() fs.FS {
	return a.fsys
}

// Source 资源来源描述（"embedded" 或磁盘路径），用于日志
func (a *Assets) Source() string {
	return a.source
}

// normalize 标准化路径分隔符为正斜杠并移除 "./" 前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, AssetsPrefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with '%s')", path, AssetsPrefix)
	}
	return path, nil
}

// Open 打开资源文件
func (a *Assets) Open(path string) (fs.File, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return a.fsys.Open(path)
}

// ReadFile 读取资源文件内容
func (a *Assets) ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(a.fsys, path)
}

// Exists 检查文件是否存在
func (a *Assets) Exists(path string) bool {
	file, err := a.Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配资源文件
func (a *Assets) Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(a.fsys, pattern)
}

// Sub 返回指定目录的子文件系统
func (a *Assets) Sub(dir string) (fs.FS, error) {
	dir, err := normalize(dir)
	if err != nil {
		return nil, err
	}
	return fs.Sub(a.fsys, strings.TrimSuffix(dir, "/"))
}
