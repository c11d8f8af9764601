//go:build !mobile

// stub.go - 桌面构建时的占位文件
//
// 移动端入口（mobile.go、embed.go）只在 -tags mobile 时编译，
// 普通的 go build ./... 只看到这里的 Dummy。
package mobile

// Dummy 保证包在非移动端构建时也有导出符号
func Dummy() {}
