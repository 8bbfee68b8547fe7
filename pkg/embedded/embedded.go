// Package embedded 提供内置数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的数据文件。
//
// 未初始化时，或路径不以 "data/" 开头时，回退到磁盘读取，
// 便于命令行工具和测试直接指定外部配置文件。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// Reset 清除初始化状态（测试使用）
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// isEmbeddedPath 判断路径是否应从嵌入文件系统读取
func isEmbeddedPath(path string) bool {
	return initialized && strings.HasPrefix(path, "data/")
}

// ReadFile 读取文件内容
// "data/" 前缀且已初始化时从嵌入文件系统读取，否则从磁盘读取
func ReadFile(path string) ([]byte, error) {
	normalized := normalize(path)
	if isEmbeddedPath(normalized) {
		data, err := fs.ReadFile(dataFS, normalized)
		if err == nil {
			return data, nil
		}
		// 嵌入文件缺失时尝试磁盘（开发期新增的配置文件）
		if diskData, diskErr := os.ReadFile(path); diskErr == nil {
			return diskData, nil
		}
		return nil, fmt.Errorf("embedded file %s: %w", normalized, err)
	}
	return os.ReadFile(path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	normalized := normalize(path)
	if isEmbeddedPath(normalized) {
		if _, err := fs.Stat(dataFS, normalized); err == nil {
			return true
		}
	}
	_, err := os.Stat(path)
	return err == nil
}

// Glob 匹配嵌入文件系统中的文件
// 未初始化时匹配磁盘文件
func Glob(pattern string) ([]string, error) {
	normalized := normalize(pattern)
	if isEmbeddedPath(normalized) {
		return fs.Glob(dataFS, normalized)
	}
	return filepath.Glob(pattern)
}
